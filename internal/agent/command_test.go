package agent

import (
	"context"
	"strings"
	"testing"
)

func TestCommandBackend_EchoesStdin(t *testing.T) {
	backend, err := NewCommandBackend([]string{"cat"})
	if err != nil {
		t.Skipf("cat not available: %v", err)
	}

	sess, err := backend.NewSession(context.Background(), SessionOptions{})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer sess.Close()

	var sb strings.Builder
	sess.Subscribe(func(ev Event) { sb.WriteString(ev.Delta) })

	prompt := `{"classification": "bug"}`
	if err := sess.Prompt(context.Background(), prompt); err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	if sb.String() != prompt {
		t.Errorf("response = %q, want %q", sb.String(), prompt)
	}
}

func TestCommandBackend_NonZeroExit(t *testing.T) {
	backend, err := NewCommandBackend([]string{"sh", "-c", "echo rate limited >&2; exit 3"})
	if err != nil {
		t.Skipf("sh not available: %v", err)
	}

	sess, err := backend.NewSession(context.Background(), SessionOptions{})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer sess.Close()

	err = sess.Prompt(context.Background(), "x")
	if err == nil {
		t.Fatal("Prompt() error = nil, want exit error")
	}
	if !strings.Contains(err.Error(), "code 3") || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error = %q, want exit code and stderr", err.Error())
	}
}

func TestNewCommandBackend_Invalid(t *testing.T) {
	if _, err := NewCommandBackend(nil); err == nil {
		t.Error("NewCommandBackend(nil) error = nil, want error")
	}
	if _, err := NewCommandBackend([]string{"gh-triage-no-such-agent"}); err == nil {
		t.Error("NewCommandBackend(missing) error = nil, want error")
	}
}

func TestRenderTranscript(t *testing.T) {
	single := streamRequest{Messages: []Message{{Role: RoleUser, Content: "just this"}}}
	if got := renderTranscript(single); got != "just this" {
		t.Errorf("renderTranscript(single) = %q, want prompt unchanged", got)
	}

	multi := streamRequest{
		System: "sys",
		Messages: []Message{
			{Role: RoleUser, Content: "q1"},
			{Role: RoleAssistant, Content: "a1"},
			{Role: RoleUser, Content: "q2"},
		},
	}
	want := "[system]\nsys\n\n[user]\nq1\n\n[assistant]\na1\n\n[user]\nq2"
	if got := renderTranscript(multi); got != want {
		t.Errorf("renderTranscript(multi) = %q, want %q", got, want)
	}
}

func TestLimitedBuffer(t *testing.T) {
	b := &limitedBuffer{max: 4}
	n, err := b.Write([]byte("abcdef"))
	if err != nil || n != 6 {
		t.Fatalf("Write() = %d, %v; want 6, nil", n, err)
	}
	b.Write([]byte("gh"))
	if b.String() != "abcd" {
		t.Errorf("String() = %q, want %q", b.String(), "abcd")
	}
}
