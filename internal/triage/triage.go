package triage

import (
	"context"
	"log"
	"strings"

	"github.com/Kavirubc/gh-triage/internal/agent"
)

// Triager asks an agent to classify issues
type Triager struct {
	backend agent.Backend
	opts    agent.SessionOptions
}

// NewTriager creates a triager. Sessions are always opened without
// compaction or tools, whatever opts says.
func NewTriager(backend agent.Backend, opts agent.SessionOptions) *Triager {
	opts.Compaction = false
	opts.Tools = nil
	return &Triager{
		backend: backend,
		opts:    opts,
	}
}

// Ask runs a single prompt in a fresh session and returns the full reply.
// The session is closed on every path.
func (t *Triager) Ask(ctx context.Context, prompt string) (string, error) {
	session, err := t.backend.NewSession(ctx, t.opts)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("Warning: failed to close agent session %s: %v", session.ID(), err)
		}
	}()

	var response strings.Builder
	unsubscribe := session.Subscribe(func(ev agent.Event) {
		if ev.Type == agent.EventTextDelta {
			response.WriteString(ev.Delta)
		}
	})
	defer unsubscribe()

	if err := session.Prompt(ctx, prompt); err != nil {
		return "", err
	}

	return response.String(), nil
}
