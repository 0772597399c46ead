package triage

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const reportHeader = "--- Triage Result ---"

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// Output is one key=value pair handed to later workflow steps
type Output struct {
	Name  string
	Value string
}

// Outputs returns the workflow outputs for a result in their fixed order
func Outputs(r *Result) []Output {
	return []Output{
		{Name: "classification", Value: string(r.Classification)},
		{Name: "confidence", Value: string(r.Confidence)},
		{Name: "reason", Value: r.Reason},
		{Name: "action", Value: string(r.SuggestedAction)},
	}
}

// PrintReport writes the human readable summary. The header is styled only
// when w is a terminal.
func PrintReport(w io.Writer, r *Result) error {
	header := reportHeader
	if isTerminal(w) {
		header = headerStyle.Render(reportHeader)
	}

	_, err := fmt.Fprintf(w, "\n%s\nClassification: %s\nConfidence: %s\nReason: %s\nAction: %s\n",
		header, r.Classification, r.Confidence, r.Reason, r.SuggestedAction)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// AppendOutputs appends the result outputs to the file at path, creating it
// if needed. Existing content is never rewritten.
func AppendOutputs(path string, r *Result) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}

	if err := WriteOutputs(f, r); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

// WriteOutputs writes one line per output. Multi-line values use the
// name<<DELIMITER form understood by GitHub Actions.
func WriteOutputs(w io.Writer, r *Result) error {
	var sb strings.Builder
	for _, o := range Outputs(r) {
		if !strings.ContainsAny(o.Value, "\r\n") {
			fmt.Fprintf(&sb, "%s=%s\n", o.Name, o.Value)
			continue
		}
		delim := "ghadelim_" + uuid.NewString()
		fmt.Fprintf(&sb, "%s<<%s\n%s\n%s\n", o.Name, delim, o.Value, delim)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}
	return nil
}
