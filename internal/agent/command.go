package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	commandChunkSize = 4096
	maxStderrBytes   = 8 * 1024
)

// CommandBackend runs an external agent CLI (for example `claude --print -`)
// once per prompt. The conversation is written to stdin and stdout is
// streamed back as text fragments.
type CommandBackend struct {
	argv []string
}

// NewCommandBackend creates a backend for the given command line
func NewCommandBackend(argv []string) (*CommandBackend, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("agent command is required")
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("agent command %q not found in PATH: %w", argv[0], err)
	}
	return &CommandBackend{argv: append([]string(nil), argv...)}, nil
}

// Name returns the backend identifier
func (b *CommandBackend) Name() string {
	return "command"
}

// NewSession opens a conversation
func (b *CommandBackend) NewSession(ctx context.Context, opts SessionOptions) (Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return newSession(b, opts, nil), nil
}

func (b *CommandBackend) stream(ctx context.Context, req streamRequest, onDelta func(string)) error {
	cmd := exec.CommandContext(ctx, b.argv[0], b.argv[1:]...)
	cmd.Stdin = strings.NewReader(renderTranscript(req))

	stderr := &limitedBuffer{max: maxStderrBytes}
	cmd.Stderr = stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open agent stdout: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start agent command: %w", err)
	}

	buf := make([]byte, commandChunkSize)
	var readErr error
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			onDelta(string(buf[:n]))
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				readErr = err
			}
			break
		}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("agent command exited with code %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return fmt.Errorf("agent command failed: %w", err)
	}
	if readErr != nil {
		return fmt.Errorf("failed to read agent output: %w", readErr)
	}

	return nil
}

// renderTranscript flattens the conversation for a stateless CLI.
// A single user turn is passed through unchanged.
func renderTranscript(req streamRequest) string {
	if req.System == "" && len(req.Messages) == 1 {
		return req.Messages[0].Content
	}

	var sb strings.Builder
	if req.System != "" {
		sb.WriteString("[system]\n")
		sb.WriteString(req.System)
		sb.WriteString("\n\n")
	}
	for i, m := range req.Messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("[" + string(m.Role) + "]\n")
		sb.WriteString(m.Content)
	}
	return sb.String()
}

// limitedBuffer keeps the first max bytes written to it
type limitedBuffer struct {
	buf bytes.Buffer
	max int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	return b.buf.String()
}
