package mock

import (
	"context"
	"sync"
)

// Completer replays scripted completions in order and records the prompts
// it saw. Once the script runs out it keeps returning the last entry.
type Completer struct {
	mu      sync.Mutex
	script  []Reply
	Prompts []string
}

type Reply struct {
	Text string
	Err  error
}

func NewCompleter(script ...Reply) *Completer {
	return &Completer{script: script}
}

func Text(replies ...string) *Completer {
	script := make([]Reply, len(replies))
	for i, r := range replies {
		script[i] = Reply{Text: r}
	}
	return &Completer{script: script}
}

func (c *Completer) Complete(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Prompts = append(c.Prompts, prompt)
	if len(c.script) == 0 {
		return "", nil
	}
	idx := len(c.Prompts) - 1
	if idx >= len(c.script) {
		idx = len(c.script) - 1
	}
	r := c.script[idx]
	return r.Text, r.Err
}
