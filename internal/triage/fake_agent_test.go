package triage

import (
	"context"

	"github.com/Kavirubc/gh-triage/internal/agent"
)

// fakeBackend replies with canned fragments and records how it was used
type fakeBackend struct {
	fragments []string
	newErr    error
	promptErr error
	opts      agent.SessionOptions
	prompts   []string
	sessions  int
	closed    int
	newCalls  int
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) NewSession(ctx context.Context, opts agent.SessionOptions) (agent.Session, error) {
	b.newCalls++
	if b.newErr != nil {
		return nil, b.newErr
	}
	b.opts = opts
	b.sessions++
	return &fakeSession{backend: b}, nil
}

type fakeSession struct {
	backend *fakeBackend
	subs    []func(agent.Event)
}

func (s *fakeSession) ID() string { return "fake-session" }

func (s *fakeSession) Subscribe(fn func(agent.Event)) func() {
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() { s.subs[idx] = nil }
}

func (s *fakeSession) Prompt(ctx context.Context, prompt string) error {
	s.backend.prompts = append(s.backend.prompts, prompt)
	for _, f := range s.backend.fragments {
		s.emit(agent.Event{Type: agent.EventTextDelta, Delta: f})
	}
	if s.backend.promptErr != nil {
		return s.backend.promptErr
	}
	s.emit(agent.Event{Type: agent.EventMessageEnd})
	return nil
}

func (s *fakeSession) emit(ev agent.Event) {
	for _, fn := range s.subs {
		if fn != nil {
			fn(ev)
		}
	}
}

func (s *fakeSession) Close() error {
	s.backend.closed++
	return nil
}
