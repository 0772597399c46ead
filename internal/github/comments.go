package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// commentsPerPage is the largest page size the REST API allows
const commentsPerPage = 100

// ListComments fetches every comment on an issue, following pages until a
// short one comes back
func (c *Client) ListComments(ctx context.Context, org, repo string, number int) ([]Comment, error) {
	var all []Comment
	for page := 1; ; page++ {
		endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/comments?per_page=%d&page=%d", org, repo, number, commentsPerPage, page)

		var comments []Comment
		if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &comments); err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}
		all = append(all, comments...)

		if len(comments) < commentsPerPage {
			return all, nil
		}
	}
}

// PostComment adds a comment to an issue
func (c *Client) PostComment(ctx context.Context, org, repo string, number int, body string) error {
	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/comments", org, repo, number)

	payload := map[string]string{"body": body}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if err := c.rest.DoWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody), nil); err != nil {
		return fmt.Errorf("failed to post comment: %w", err)
	}

	return nil
}

// HasCommentContaining reports whether any comment on the issue contains text
func (c *Client) HasCommentContaining(ctx context.Context, org, repo string, number int, text string) (bool, error) {
	comments, err := c.ListComments(ctx, org, repo, number)
	if err != nil {
		return false, err
	}

	for _, comment := range comments {
		if strings.Contains(comment.Body, text) {
			return true, nil
		}
	}

	return false, nil
}
