package dialog

type Operation string

const (
	OpCreate      Operation = "create"
	OpList        Operation = "list"
	OpSearch      Operation = "search"
	OpUpdate      Operation = "update"
	OpDelete      Operation = "delete"
	OpGeneralChat Operation = "general_chat"
	OpUnknown     Operation = "unknown"
)

type EntityKind string

const (
	KindCustomer EntityKind = "customer"
	KindProduct  EntityKind = "product"
	KindSale     EntityKind = "sale"
	KindInvoice  EntityKind = "invoice"
	KindNone     EntityKind = "none"
)

type Intent struct {
	Operation Operation  `json:"operation"`
	Kind      EntityKind `json:"kind"`
}

func UnknownIntent() Intent {
	return Intent{Operation: OpUnknown, Kind: KindNone}
}

func ParseOperation(s string) (Operation, bool) {
	switch Operation(s) {
	case OpCreate, OpList, OpSearch, OpUpdate, OpDelete, OpGeneralChat, OpUnknown:
		return Operation(s), true
	}
	return OpUnknown, false
}

func ParseEntityKind(s string) (EntityKind, bool) {
	switch EntityKind(s) {
	case KindCustomer, KindProduct, KindSale, KindInvoice, KindNone:
		return EntityKind(s), true
	}
	return KindNone, false
}

// Field is a single extracted field/value pair.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Entities keeps extracted fields in first-seen order so prompts and
// confirmation summaries render deterministically.
type Entities struct {
	fields []Field
}

func (e *Entities) Set(name, value string) {
	for i := range e.fields {
		if e.fields[i].Name == name {
			e.fields[i].Value = value
			return
		}
	}
	e.fields = append(e.fields, Field{Name: name, Value: value})
}

func (e Entities) Get(name string) (string, bool) {
	for _, f := range e.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func (e Entities) Len() int {
	return len(e.fields)
}

func (e Entities) Fields() []Field {
	out := make([]Field, len(e.fields))
	copy(out, e.fields)
	return out
}

// ResolvedAction is a validated operation, ready to execute or to hold
// behind the confirmation gate.
type ResolvedAction struct {
	Intent               Intent            `json:"intent"`
	Params               map[string]string `json:"params"`
	RequiresConfirmation bool              `json:"requires_confirmation"`
	Summary              string            `json:"summary"`
}

type Status string

const (
	StatusSuccess              Status = "success"
	StatusError                Status = "error"
	StatusConfirmationRequired Status = "confirmation_required"
	StatusChat                 Status = "chat"
)

// TurnResult is the sole artifact a turn produces; the HTTP adapter
// serializes it as-is.
type TurnResult struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ErrorResult(message string) TurnResult {
	return TurnResult{Status: StatusError, Message: message}
}

func ChatResult(message string) TurnResult {
	return TurnResult{Status: StatusChat, Message: message}
}
