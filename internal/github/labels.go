package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AddLabels adds labels to an issue
func (c *Client) AddLabels(ctx context.Context, org, repo string, number int, labels []string) error {
	if len(labels) == 0 {
		return nil
	}

	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/labels", org, repo, number)

	payload := map[string][]string{"labels": labels}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := c.rest.DoWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody), nil); err != nil {
		return fmt.Errorf("failed to add labels: %w", err)
	}

	return nil
}

// CloseIssue closes an issue with an optional state reason
// ("completed" or "not_planned")
func (c *Client) CloseIssue(ctx context.Context, org, repo string, number int, reason string) error {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d", org, repo, number)

	payload := map[string]string{"state": "closed"}
	if reason != "" {
		payload["state_reason"] = reason
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := c.rest.DoWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(jsonBody), nil); err != nil {
		return fmt.Errorf("failed to close issue: %w", err)
	}

	return nil
}
