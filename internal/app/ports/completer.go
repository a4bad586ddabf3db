package ports

import "context"

// Completer is the language-model capability: one prompt in, one text
// completion out. No retry or timeout policy lives behind this interface;
// callers bound the context themselves.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
