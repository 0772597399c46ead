package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrSessionClosed is returned when a session is used after Close
	ErrSessionClosed = errors.New("agent session is closed")
	// ErrPromptInFlight is returned when Prompt is called while another prompt is running
	ErrPromptInFlight = errors.New("agent session already has a prompt in flight")
	// ErrUnsupportedOption is returned for session options a backend cannot honor
	ErrUnsupportedOption = errors.New("unsupported session option")
)

// EventType identifies a session event
type EventType string

const (
	EventTextDelta  EventType = "text_delta"
	EventMessageEnd EventType = "message_end"
)

// Event is delivered to subscribers while a prompt is being answered
type Event struct {
	Type  EventType
	Delta string
}

// Role of a conversation message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the session conversation
type Message struct {
	Role    Role
	Content string
}

// SessionOptions configures a new session.
// Compaction and Tools exist so callers can state what they need; no backend
// compacts history or runs tools, so enabling either is rejected.
type SessionOptions struct {
	System      string
	Model       string
	MaxTokens   int
	Temperature float64
	Compaction  bool
	Tools       []string
}

func (o SessionOptions) validate() error {
	if o.Compaction {
		return fmt.Errorf("%w: context compaction", ErrUnsupportedOption)
	}
	if len(o.Tools) > 0 {
		return fmt.Errorf("%w: tools %v", ErrUnsupportedOption, o.Tools)
	}
	return nil
}

// Session is a stateful conversation with an agent backend.
//
// Prompt blocks until the full reply has been produced. Text fragments are
// delivered to subscribers synchronously, in order, on the prompting
// goroutine, followed by one EventMessageEnd. Close must be called once the
// session is no longer needed; it is safe to call more than once.
type Session interface {
	ID() string
	Subscribe(fn func(Event)) (unsubscribe func())
	Prompt(ctx context.Context, prompt string) error
	Close() error
}

// Backend creates sessions against one agent provider
type Backend interface {
	Name() string
	NewSession(ctx context.Context, opts SessionOptions) (Session, error)
}

// streamRequest is what a backend needs to produce one reply
type streamRequest struct {
	System      string
	Model       string
	MaxTokens   int
	Temperature float64
	Messages    []Message
}

// streamer produces a reply for the conversation, calling onDelta for every text fragment
type streamer interface {
	stream(ctx context.Context, req streamRequest, onDelta func(string)) error
}

type subscriber struct {
	id int
	fn func(Event)
}

// session implements Session on top of a backend streamer
type session struct {
	id      string
	opts    SessionOptions
	backend streamer
	closer  func() error

	mu        sync.Mutex
	subs      []subscriber
	nextSub   int
	history   []Message
	closed    bool
	prompting bool
}

func newSession(backend streamer, opts SessionOptions, closer func() error) *session {
	return &session{
		id:      uuid.NewString(),
		opts:    opts,
		backend: backend,
		closer:  closer,
	}
}

func (s *session) ID() string {
	return s.id
}

// Subscribe registers fn for all future events. Subscribing to a closed
// session is a no-op.
func (s *session) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || fn == nil {
		return func() {}
	}

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *session) Prompt(ctx context.Context, prompt string) error {
	req, err := s.begin(prompt)
	if err != nil {
		return err
	}

	var reply []byte
	err = s.backend.stream(ctx, req, func(delta string) {
		if delta == "" {
			return
		}
		reply = append(reply, delta...)
		s.emit(Event{Type: EventTextDelta, Delta: delta})
	})

	s.finish(string(reply), err)
	if err != nil {
		return err
	}

	s.emit(Event{Type: EventMessageEnd})
	return nil
}

// History returns a copy of the conversation so far
func (s *session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}

func (s *session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.subs = nil
	s.mu.Unlock()

	if s.closer != nil {
		return s.closer()
	}
	return nil
}

func (s *session) begin(prompt string) (streamRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return streamRequest{}, ErrSessionClosed
	}
	if s.prompting {
		return streamRequest{}, ErrPromptInFlight
	}
	s.prompting = true
	s.history = append(s.history, Message{Role: RoleUser, Content: prompt})

	return streamRequest{
		System:      s.opts.System,
		Model:       s.opts.Model,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
		Messages:    append([]Message(nil), s.history...),
	}, nil
}

// finish records the reply. A failed prompt is dropped from history so the
// conversation stays a strict user/assistant alternation.
func (s *session) finish(reply string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompting = false
	if err != nil {
		s.history = s.history[:len(s.history)-1]
		return
	}
	s.history = append(s.history, Message{Role: RoleAssistant, Content: reply})
}

func (s *session) emit(ev Event) {
	s.mu.Lock()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}
