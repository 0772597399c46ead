package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/Kavirubc/gh-triage/internal/triage"
	"github.com/Kavirubc/gh-triage/pkg/models"
)

const cannedResponse = `Sure. {"classification":"bug","confidence":"high","reason":"Regression with stack trace.","suggestedAction":"keep"}`

type stubAgent struct {
	response string
	err      error
	prompts  []string
}

func (a *stubAgent) Ask(ctx context.Context, prompt string) (string, error) {
	a.prompts = append(a.prompts, prompt)
	return a.response, a.err
}

type stubExecutor struct {
	actions []triage.Action
	err     error
	dryRun  bool
}

func (e *stubExecutor) Execute(ctx context.Context, issue *models.Issue, actions []triage.Action) error {
	e.actions = actions
	return e.err
}

func (e *stubExecutor) DryRun() bool { return e.dryRun }

func newIssue() *models.Issue {
	return &models.Issue{
		Org:    "octo",
		Repo:   "app",
		Number: 42,
		Title:  "App crashes on startup",
		Body:   "Stack trace: NullPointerException at line 42. Worked fine in v1.2, broke in v1.3.",
	}
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	outputFile := filepath.Join(dir, "github_output")
	outcomeFile := filepath.Join(dir, "result.json")

	agent := &stubAgent{response: cannedResponse}
	executor := &stubExecutor{}
	env := config.Env{OutputFile: outputFile, ExtraInstructions: "Be strict."}

	var stdout bytes.Buffer
	runner := NewRunner(config.Default(), env, &stdout, NewBuilder(agent, executor, outcomeFile).Build())

	result, err := runner.Run(context.Background(), newIssue())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.TriageResult.Classification != triage.ClassificationBug {
		t.Errorf("classification = %s, want bug", result.TriageResult.Classification)
	}
	if len(agent.prompts) != 1 || !strings.Contains(agent.prompts[0], "## Additional Instructions\nBe strict.") {
		t.Errorf("prompt missing extra instructions: %q", agent.prompts)
	}
	if !strings.Contains(stdout.String(), "--- Triage Result ---\nClassification: bug\n") {
		t.Errorf("stdout = %q, want report", stdout.String())
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "classification=bug\nconfidence=high\n") {
		t.Errorf("output file = %q", data)
	}

	if _, err := triage.ReadOutcome(outcomeFile); err != nil {
		t.Errorf("ReadOutcome() error = %v", err)
	}
	if len(executor.actions) != 1 || executor.actions[0].Label != "bug" {
		t.Errorf("executed actions = %+v, want bug label", executor.actions)
	}
	if result.ActionsExecuted != 1 {
		t.Errorf("ActionsExecuted = %d, want 1", result.ActionsExecuted)
	}
}

func TestRunner_DryRunAppliesNothing(t *testing.T) {
	executor := &stubExecutor{dryRun: true}
	runner := NewRunner(config.Default(), config.Env{}, &bytes.Buffer{}, NewBuilder(&stubAgent{response: cannedResponse}, executor, "").Build())

	result, err := runner.Run(context.Background(), newIssue())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(executor.actions) != 1 {
		t.Errorf("actions passed to executor = %+v, want the planned label", executor.actions)
	}
	if result.ActionsExecuted != 0 {
		t.Errorf("ActionsExecuted = %d, want 0 in dry run", result.ActionsExecuted)
	}
}

func TestRunner_MissingTitle(t *testing.T) {
	agent := &stubAgent{response: cannedResponse}
	runner := NewRunner(config.Default(), config.Env{}, &bytes.Buffer{}, NewBuilder(agent, nil, "").Build())

	_, err := runner.Run(context.Background(), &models.Issue{Body: "no title"})
	if !errors.Is(err, config.ErrMissingTitle) {
		t.Fatalf("Run() error = %v, want ErrMissingTitle", err)
	}
	if err.Error() != config.ErrMissingTitle.Error() {
		t.Errorf("error = %q, want unwrapped message", err.Error())
	}
	if len(agent.prompts) != 0 {
		t.Error("agent was called for an issue without a title")
	}
}

func TestRunner_SkipsClosedIssue(t *testing.T) {
	agent := &stubAgent{response: cannedResponse}
	var stdout bytes.Buffer
	runner := NewRunner(config.Default(), config.Env{}, &stdout, NewBuilder(agent, nil, "").Build())

	issue := newIssue()
	issue.State = "closed"

	result, err := runner.Run(context.Background(), issue)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Skipped || result.SkipReason != "issue is closed" {
		t.Errorf("result = %+v, want skipped", result)
	}
	if len(agent.prompts) != 0 || stdout.Len() != 0 {
		t.Error("closed issue was triaged")
	}
}

func TestRunner_StepFailures(t *testing.T) {
	tests := []struct {
		name     string
		agent    *stubAgent
		wantStep string
		wantErr  error
	}{
		{"agent error", &stubAgent{err: errors.New("rate limited")}, "step agent failed", nil},
		{"no json", &stubAgent{response: "not sure"}, "step extract failed", triage.ErrNoJSON},
		{"invalid value", &stubAgent{response: `{"classification":"spam","confidence":"high","reason":"r","suggestedAction":"keep"}`}, "step extract failed", triage.ErrInvalidClassification},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			outputFile := filepath.Join(dir, "out")
			var stdout bytes.Buffer
			runner := NewRunner(config.Default(), config.Env{OutputFile: outputFile}, &stdout, NewBuilder(tt.agent, nil, "").Build())

			_, err := runner.Run(context.Background(), newIssue())
			if err == nil || !strings.Contains(err.Error(), tt.wantStep) {
				t.Fatalf("Run() error = %v, want %q", err, tt.wantStep)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if stdout.Len() != 0 {
				t.Errorf("stdout = %q, want nothing reported", stdout.String())
			}
			if _, err := os.Stat(outputFile); !os.IsNotExist(err) {
				t.Error("output file written for a failed run")
			}
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	names := func(b *Builder) string {
		var out []string
		for _, s := range b.Build() {
			out = append(out, s.Name())
		}
		return strings.Join(out, ",")
	}

	if got := names(NewBuilder(&stubAgent{}, nil, "")); got != "gatekeeper,prompt,agent,extract,planner,report" {
		t.Errorf("Build() = %s", got)
	}
	if got := names(NewBuilder(&stubAgent{}, &stubExecutor{}, "")); !strings.HasSuffix(got, ",report,action_executor") {
		t.Errorf("Build() with executor = %s", got)
	}
}
