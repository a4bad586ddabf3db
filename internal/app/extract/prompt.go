package extract

import (
	"strings"

	"ventia/internal/app/ports"
	"ventia/internal/domain/dialog"
)

const maxContextTurns = 6

func buildPrompt(message string, context []ports.TurnRecord) string {
	var b strings.Builder
	b.WriteString("You are the intent classifier of a business assistant that manages ")
	b.WriteString("customers, products, sales and invoices.\n")
	b.WriteString("Classify the user message and extract structured fields.\n\n")

	b.WriteString("Allowed operations: create, list, search, update, delete, general_chat.\n")
	b.WriteString("Allowed kinds: customer, product, sale, invoice, none.\n")
	b.WriteString("Known fields per kind:\n")
	for _, kind := range []dialog.EntityKind{dialog.KindCustomer, dialog.KindProduct, dialog.KindSale, dialog.KindInvoice} {
		b.WriteString("  ")
		b.WriteString(string(kind))
		b.WriteString(": ")
		b.WriteString(strings.Join(dialog.KnownFields(kind), ", "))
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with a single JSON object and nothing else, exactly this shape:\n")
	b.WriteString(`{"operation": "...", "kind": "...", "fields": {"name": "value"}}` + "\n")
	b.WriteString("Use operation general_chat with kind none for greetings, questions about ")
	b.WriteString("yourself, or anything that is not a record operation.\n")
	b.WriteString("The user may write in Spanish or English; field values stay verbatim.\n")

	if n := len(context); n > 0 {
		if n > maxContextTurns {
			context = context[n-maxContextTurns:]
		}
		b.WriteString("\nRecent conversation:\n")
		for _, turn := range context {
			b.WriteString(string(turn.Role))
			b.WriteString(": ")
			b.WriteString(turn.Message)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nUser message: ")
	b.WriteString(message)
	b.WriteString("\n")
	return b.String()
}
