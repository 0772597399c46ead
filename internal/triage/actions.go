package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/Kavirubc/gh-triage/pkg/models"
)

// CommentMarker tags comments that have no kind-specific marker
const CommentMarker = "<!-- gh-triage -->"

// MarkerFor returns the comment marker for a suggested action
func MarkerFor(action SuggestedAction) string {
	return fmt.Sprintf("<!-- gh-triage:%s -->", action)
}

// ActionType represents the type of action
type ActionType string

const (
	ActionAddLabel ActionType = "add_label"
	ActionComment  ActionType = "comment"
	ActionClose    ActionType = "close"
)

// Action represents an action to take on the issue
type Action struct {
	Type        ActionType `json:"type"`
	Label       string     `json:"label,omitempty"`
	Comment     string     `json:"comment,omitempty"`
	StateReason string     `json:"state_reason,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Marker      string     `json:"marker,omitempty"`
}

// Outcome is the complete triage record for one issue
type Outcome struct {
	Issue   *models.Issue `json:"issue,omitempty"`
	Result  *Result       `json:"result"`
	Actions []Action      `json:"actions"`
}

// PlanActions turns a result into the actions a workflow should take
func PlanActions(r *Result, cfg *config.TriageConfig) []Action {
	actions := []Action{}

	if label := cfg.LabelFor(string(r.Classification)); label != "" {
		actions = append(actions, Action{
			Type:   ActionAddLabel,
			Label:  label,
			Reason: fmt.Sprintf("classified as %s (%s confidence)", r.Classification, r.Confidence),
		})
	}

	switch r.SuggestedAction {
	case SuggestNeedsInfo:
		if cfg.NeedsInfoLabel != "" {
			actions = append(actions, Action{
				Type:   ActionAddLabel,
				Label:  cfg.NeedsInfoLabel,
				Reason: "issue needs more information",
			})
		}
		actions = append(actions, Action{
			Type:    ActionComment,
			Comment: renderComment(cfg.NeedsInfoComment, r.Reason, MarkerFor(SuggestNeedsInfo)),
			Reason:  "request additional information",
			Marker:  MarkerFor(SuggestNeedsInfo),
		})

	case SuggestClose:
		actions = append(actions,
			Action{
				Type:    ActionComment,
				Comment: renderComment(cfg.CloseComment, r.Reason, MarkerFor(SuggestClose)),
				Reason:  "explain closing",
				Marker:  MarkerFor(SuggestClose),
			},
			Action{
				Type:        ActionClose,
				StateReason: cfg.CloseReason,
				Reason:      r.Reason,
			},
		)
	}

	return actions
}

// renderComment fills the first %s of tmpl with the reason and adds the marker
func renderComment(tmpl, reason, marker string) string {
	body := strings.Replace(tmpl, "%s", reason, 1)
	return body + "\n\n" + marker
}

// IssueClient is the subset of the GitHub API the executor needs
type IssueClient interface {
	AddLabels(ctx context.Context, org, repo string, number int, labels []string) error
	PostComment(ctx context.Context, org, repo string, number int, body string) error
	CloseIssue(ctx context.Context, org, repo string, number int, reason string) error
	HasCommentContaining(ctx context.Context, org, repo string, number int, text string) (bool, error)
}

// Executor executes triage actions
type Executor struct {
	client IssueClient
	dryRun bool
}

// NewExecutor creates a new action executor
func NewExecutor(client IssueClient, dryRun bool) *Executor {
	return &Executor{
		client: client,
		dryRun: dryRun,
	}
}

// DryRun reports whether the executor only logs actions
func (e *Executor) DryRun() bool {
	return e.dryRun
}

// Execute performs all actions in order. A failing action does not stop
// the rest; the number of failures is reported at the end.
func (e *Executor) Execute(ctx context.Context, issue *models.Issue, actions []Action) error {
	if !issue.Addressable() {
		return fmt.Errorf("cannot apply actions: issue has no repository or number")
	}

	failed := 0
	for _, action := range actions {
		if err := e.executeAction(ctx, issue, action); err != nil {
			log.Printf("Error executing action %s on %s: %v", action.Type, issue.Ref(), err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("failed to execute %d of %d actions", failed, len(actions))
	}
	return nil
}

// executeAction performs a single action
func (e *Executor) executeAction(ctx context.Context, issue *models.Issue, action Action) error {
	log.Printf("Executing action: %s (reason: %s)", action.Type, action.Reason)

	if e.dryRun {
		log.Printf("[DRY RUN] Would execute: %s", describeAction(action))
		return nil
	}

	switch action.Type {
	case ActionAddLabel:
		return e.client.AddLabels(ctx, issue.Org, issue.Repo, issue.Number, []string{action.Label})

	case ActionComment:
		marker := action.Marker
		if marker == "" {
			marker = CommentMarker
		}
		posted, err := e.client.HasCommentContaining(ctx, issue.Org, issue.Repo, issue.Number, marker)
		if err != nil {
			return err
		}
		if posted {
			log.Printf("Skipping comment on %s: %s already posted", issue.Ref(), marker)
			return nil
		}
		return e.client.PostComment(ctx, issue.Org, issue.Repo, issue.Number, action.Comment)

	case ActionClose:
		return e.client.CloseIssue(ctx, issue.Org, issue.Repo, issue.Number, action.StateReason)

	default:
		return fmt.Errorf("unknown action type: %s", action.Type)
	}
}

func describeAction(action Action) string {
	switch action.Type {
	case ActionAddLabel:
		return fmt.Sprintf("add label %q", action.Label)
	case ActionClose:
		return fmt.Sprintf("close as %s", action.StateReason)
	default:
		return string(action.Type)
	}
}

// HasAction checks if actions contain a specific action type
func HasAction(actions []Action, actionType ActionType) bool {
	for _, a := range actions {
		if a.Type == actionType {
			return true
		}
	}
	return false
}

// WriteOutcome writes the triage outcome to a JSON file. The result must
// be valid so that ReadOutcome can load it back.
func WriteOutcome(outcome *Outcome, path string) error {
	if outcome.Result == nil {
		return fmt.Errorf("failed to write outcome: %w: result", ErrMissingField)
	}
	if err := outcome.Result.Validate(); err != nil {
		return fmt.Errorf("failed to write outcome: %w", err)
	}

	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write outcome: %w", err)
	}

	return nil
}

// ReadOutcome reads a triage outcome from a JSON file
func ReadOutcome(path string) (*Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read outcome: %w", err)
	}

	var outcome Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcome: %w", err)
	}
	if outcome.Result == nil {
		return nil, fmt.Errorf("failed to read outcome: %w: result", ErrMissingField)
	}

	return &outcome, nil
}
