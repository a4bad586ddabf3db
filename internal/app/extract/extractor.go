package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"
)

// Extractor turns a free-text message into a typed intent plus an entity
// bag via one completion call. It never fails a turn: transport errors
// and malformed model output both degrade to the unknown intent.
type Extractor struct {
	LLM ports.Completer
}

// Result carries what extraction produced, including whether the model
// output had to be discarded (for metrics, not for control flow).
type Result struct {
	Intent   dialog.Intent
	Entities dialog.Entities
	Degraded bool
}

type payload struct {
	Operation string         `json:"operation"`
	Kind      string         `json:"kind"`
	Fields    map[string]any `json:"fields"`
}

func (e Extractor) Extract(ctx context.Context, message string, history []ports.TurnRecord) Result {
	raw, err := e.LLM.Complete(ctx, buildPrompt(message, history))
	if err != nil {
		return degraded()
	}
	p, ok := parsePayload(raw)
	if !ok {
		return degraded()
	}

	op, opOK := dialog.ParseOperation(strings.TrimSpace(strings.ToLower(p.Operation)))
	kind, kindOK := dialog.ParseEntityKind(strings.TrimSpace(strings.ToLower(p.Kind)))
	if !opOK || !kindOK {
		return degraded()
	}
	intent := dialog.Intent{Operation: op, Kind: kind}

	return Result{Intent: intent, Entities: collectFields(kind, p.Fields)}
}

func degraded() Result {
	return Result{Intent: dialog.UnknownIntent(), Degraded: true}
}

// parsePayload tries a strict unmarshal first and falls back to the first
// balanced JSON object embedded in surrounding prose. Anything else fails
// closed.
func parsePayload(raw string) (payload, bool) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err == nil && p.Operation != "" {
		return p, true
	}
	block, ok := firstJSONObject(raw)
	if !ok {
		return payload{}, false
	}
	if err := json.Unmarshal([]byte(block), &p); err != nil || p.Operation == "" {
		return payload{}, false
	}
	return p, true
}

func firstJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// collectFields keeps catalog fields in catalog order, then any extras the
// model invented in sorted order. Values are stringified; nested shapes
// are dropped.
func collectFields(kind dialog.EntityKind, fields map[string]any) dialog.Entities {
	var out dialog.Entities
	if len(fields) == 0 {
		return out
	}
	seen := map[string]bool{}
	for _, name := range dialog.KnownFields(kind) {
		if v, ok := fields[name]; ok {
			if s, ok := stringify(v); ok {
				out.Set(name, s)
			}
			seen[name] = true
		}
	}
	extras := make([]string, 0, len(fields))
	for name := range fields {
		if !seen[name] {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		if s, ok := stringify(fields[name]); ok {
			out.Set(name, s)
		}
	}
	return out
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return fmt.Sprintf("%t", t), true
	default:
		return "", false
	}
}
