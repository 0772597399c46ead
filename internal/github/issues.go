package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Kavirubc/gh-triage/pkg/models"
)

// GetIssue fetches a single issue
func (c *Client) GetIssue(ctx context.Context, org, repo string, number int) (*models.Issue, error) {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d", org, repo, number)

	var ai Issue
	if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &ai); err != nil {
		return nil, fmt.Errorf("failed to get issue: %w", err)
	}
	if ai.IsPullRequest() {
		return nil, fmt.Errorf("%s/%s#%d is a pull request, not an issue", org, repo, number)
	}

	return ai.ToModel(org, repo), nil
}
