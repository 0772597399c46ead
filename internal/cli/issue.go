package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/Kavirubc/gh-triage/internal/github"
	"github.com/Kavirubc/gh-triage/pkg/models"
)

// issueSource says where the issue under triage comes from
type issueSource struct {
	eventPath string
	repo      string
	number    int
}

// issueFetcher is what resolveIssue needs from the GitHub API
type issueFetcher interface {
	GetIssue(ctx context.Context, org, repo string, number int) (*models.Issue, error)
}

// newIssueFetcher is replaced in tests
var newIssueFetcher = func() (issueFetcher, error) {
	return github.NewClient()
}

// resolveIssue finds the issue to triage. ISSUE_TITLE/ISSUE_BODY win; the
// event file ($GITHUB_EVENT_PATH or --event-path) then only supplies the
// repository and number. Without a title the issue comes from an explicit
// --event-path or --repo/--number; otherwise the result has an empty title
// and callers treat that as missing input.
func resolveIssue(ctx context.Context, env config.Env, src issueSource) (*models.Issue, error) {
	if env.IssueTitle != "" {
		issue := &models.Issue{Title: env.IssueTitle, Body: env.IssueBody}
		attachEventRef(issue, firstNonEmpty(src.eventPath, env.EventPath))
		if err := applyRef(issue, src); err != nil {
			return nil, err
		}
		return issue, nil
	}

	if src.eventPath != "" {
		event, err := github.ParseEventFile(src.eventPath)
		if err != nil {
			return nil, err
		}
		if !event.IsIssueEvent() {
			return nil, fmt.Errorf("event file %s has no issue payload", src.eventPath)
		}
		issue := event.ToIssue()
		if err := applyRef(issue, src); err != nil {
			return nil, err
		}
		return issue, nil
	}

	if src.repo != "" && src.number > 0 {
		org, repo, err := github.ParseRepo(src.repo)
		if err != nil {
			return nil, err
		}
		client, err := newIssueFetcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub client: %w", err)
		}
		return client.GetIssue(ctx, org, repo, src.number)
	}

	return &models.Issue{}, nil
}

// attachEventRef copies the repository, number and URL of the event's issue.
// State is left alone: an env-supplied issue is always triaged.
func attachEventRef(issue *models.Issue, eventPath string) {
	if eventPath == "" {
		return
	}
	event, err := github.ParseEventFile(eventPath)
	if err != nil {
		log.Printf("Warning: ignoring event file: %v", err)
		return
	}
	if !event.IsIssueEvent() {
		return
	}
	ref := event.ToIssue()
	issue.Org, issue.Repo, issue.Number, issue.URL = ref.Org, ref.Repo, ref.Number, ref.URL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// applyRef points the issue at --repo/--number when both are given
func applyRef(issue *models.Issue, src issueSource) error {
	if src.repo == "" || src.number <= 0 {
		return nil
	}
	org, repo, err := github.ParseRepo(src.repo)
	if err != nil {
		return err
	}
	issue.Org, issue.Repo, issue.Number = org, repo, src.number
	return nil
}
