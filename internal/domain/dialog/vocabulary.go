package dialog

import "strings"

type Reply int

const (
	ReplyAmbiguous Reply = iota
	ReplyAffirmative
	ReplyNegative
)

// Vocabulary is the closed set of replies the confirmation gate accepts.
// Deployments localize it; matching is exact after Normalize, never fuzzy.
type Vocabulary struct {
	Affirmative []string
	Negative    []string
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Affirmative: []string{"sí", "si", "s", "yes", "y", "ok", "dale", "confirmo", "confirmar", "adelante"},
		Negative:    []string{"no", "n", "cancel", "cancelar", "cancelado", "nope", "negativo"},
	}
}

func (v Vocabulary) Classify(message string) Reply {
	m := Normalize(message)
	for _, w := range v.Affirmative {
		if m == Normalize(w) {
			return ReplyAffirmative
		}
	}
	for _, w := range v.Negative {
		if m == Normalize(w) {
			return ReplyNegative
		}
	}
	return ReplyAmbiguous
}

var accentFold = map[rune]rune{
	'á': 'a', 'é': 'e', 'í': 'i', 'ó': 'o', 'ú': 'u', 'ü': 'u', 'ñ': 'n',
}

// Normalize lowercases, trims, and strips Spanish diacritics so "SÍ" and
// "si" land on the same vocabulary entry.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		b.WriteRune(r)
	}
	return b.String()
}
