package resolve

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ventia/internal/domain/dialog"
)

// Resolver maps an extracted intent to one of the supported operations,
// validates the entity bag against that operation's field requirements and
// decides whether the confirmation gate must hold it.
type Resolver struct{}

// Outcome is either an action ready for the gate/executor or an
// error-status result asking the user to fill in what is missing.
// Exactly one of the two fields is set.
type Outcome struct {
	Action *dialog.ResolvedAction
	Result *dialog.TurnResult
}

type operationSpec struct {
	required    []string
	optional    []string
	anyOf       []string
	confirm     bool
	description string
}

type opKey struct {
	op   dialog.Operation
	kind dialog.EntityKind
}

var operations = map[opKey]operationSpec{
	{dialog.OpCreate, dialog.KindCustomer}: {
		required:    []string{"name"},
		optional:    []string{"email", "phone", "address"},
		confirm:     true,
		description: "create customer",
	},
	{dialog.OpList, dialog.KindCustomer}:   {description: "list customers"},
	{dialog.OpSearch, dialog.KindCustomer}: {anyOf: []string{"name", "email"}, description: "search customers"},
	{dialog.OpUpdate, dialog.KindCustomer}: {
		required:    []string{"id"},
		anyOf:       []string{"name", "email", "phone", "address"},
		confirm:     true,
		description: "update customer",
	},
	{dialog.OpDelete, dialog.KindCustomer}: {required: []string{"id"}, confirm: true, description: "delete customer"},

	{dialog.OpCreate, dialog.KindProduct}: {
		required:    []string{"name", "price"},
		optional:    []string{"description", "stock"},
		confirm:     true,
		description: "create product",
	},
	{dialog.OpList, dialog.KindProduct}:   {description: "list products"},
	{dialog.OpSearch, dialog.KindProduct}: {anyOf: []string{"name"}, description: "search products"},
	{dialog.OpUpdate, dialog.KindProduct}: {
		required:    []string{"id"},
		anyOf:       []string{"name", "description", "price", "stock"},
		confirm:     true,
		description: "update product",
	},
	{dialog.OpDelete, dialog.KindProduct}: {required: []string{"id"}, confirm: true, description: "delete product"},

	{dialog.OpCreate, dialog.KindSale}: {
		required:    []string{"customer_id", "product_id", "quantity"},
		confirm:     true,
		description: "process sale",
	},
	{dialog.OpList, dialog.KindSale}: {description: "list sales"},

	{dialog.OpCreate, dialog.KindInvoice}: {
		required:    []string{"sale_id"},
		confirm:     true,
		description: "generate invoice",
	},
	{dialog.OpList, dialog.KindInvoice}: {description: "list invoices"},
}

var integerFields = map[string]bool{
	"id":          true,
	"customer_id": true,
	"product_id":  true,
	"sale_id":     true,
	"quantity":    true,
	"stock":       true,
}

var numericFields = map[string]bool{
	"price": true,
}

// Resolve never returns a Go error: anything unresolvable becomes either a
// general_chat action or an error-status TurnResult.
func (Resolver) Resolve(intent dialog.Intent, entities dialog.Entities) Outcome {
	if intent.Operation == dialog.OpGeneralChat || intent.Operation == dialog.OpUnknown {
		return chatOutcome(intent)
	}
	spec, ok := operations[opKey{intent.Operation, intent.Kind}]
	if !ok {
		return chatOutcome(intent)
	}

	params, problems := validate(spec, entities)
	if len(problems) > 0 {
		result := dialog.ErrorResult(fmt.Sprintf(
			"I cannot %s yet: %s. Please provide the missing information.",
			spec.description, strings.Join(problems, "; ")))
		return Outcome{Result: &result}
	}

	return Outcome{Action: &dialog.ResolvedAction{
		Intent:               intent,
		Params:               params,
		RequiresConfirmation: spec.confirm,
		Summary:              summarize(spec.description, params),
	}}
}

func chatOutcome(intent dialog.Intent) Outcome {
	op := dialog.OpGeneralChat
	if intent.Operation == dialog.OpUnknown {
		op = dialog.OpUnknown
	}
	return Outcome{Action: &dialog.ResolvedAction{
		Intent: dialog.Intent{Operation: op, Kind: dialog.KindNone},
		Params: map[string]string{},
	}}
}

func validate(spec operationSpec, entities dialog.Entities) (map[string]string, []string) {
	params := map[string]string{}
	var problems []string

	allowed := map[string]bool{}
	for _, f := range spec.required {
		allowed[f] = true
	}
	for _, f := range spec.optional {
		allowed[f] = true
	}
	for _, f := range spec.anyOf {
		allowed[f] = true
	}

	for _, f := range entities.Fields() {
		if !allowed[f.Name] || strings.TrimSpace(f.Value) == "" {
			continue
		}
		params[f.Name] = strings.TrimSpace(f.Value)
	}

	for _, f := range spec.required {
		if _, ok := params[f]; !ok {
			problems = append(problems, "missing "+f)
		}
	}
	if len(spec.anyOf) > 0 {
		found := false
		for _, f := range spec.anyOf {
			if _, ok := params[f]; ok {
				found = true
				break
			}
		}
		if !found {
			problems = append(problems, "need at least one of "+strings.Join(spec.anyOf, ", "))
		}
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := params[name]
		switch {
		case integerFields[name]:
			if n, err := strconv.ParseInt(v, 10, 64); err != nil || n < 0 {
				problems = append(problems, "invalid "+name)
			}
		case numericFields[name]:
			if n, err := strconv.ParseFloat(v, 64); err != nil || n < 0 {
				problems = append(problems, "invalid "+name)
			}
		}
	}
	return params, problems
}

func summarize(description string, params map[string]string) string {
	if len(params) == 0 {
		return description
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+params[name])
	}
	return description + " (" + strings.Join(parts, ", ") + ")"
}
