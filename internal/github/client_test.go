package github

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/cli/go-gh/v2/pkg/api"
)

// rewriteTransport sends every request to the test server
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, func() []recordedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			if err := json.Unmarshal(data, &rec.Body); err != nil {
				t.Errorf("request body is not JSON: %s", data)
			}
		}
		mu.Lock()
		requests = append(requests, rec)
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	target, _ := url.Parse(srv.URL)
	client, err := NewClientWithOptions(api.ClientOptions{
		Host:      "github.com",
		AuthToken: "test-token",
		Transport: rewriteTransport{target: target},
	})
	if err != nil {
		t.Fatalf("NewClientWithOptions() error = %v", err)
	}

	return client, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestClient_GetIssue(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"number":   42,
			"title":    "App crashes on startup",
			"body":     "Stack trace attached",
			"state":    "open",
			"html_url": "https://github.com/octo/app/issues/42",
			"user":     map[string]string{"login": "alice"},
			"labels":   []map[string]string{{"name": "bug"}},
		})
	})

	issue, err := client.GetIssue(context.Background(), "octo", "app", 42)
	if err != nil {
		t.Fatalf("GetIssue() error = %v", err)
	}

	if requests()[0].Path != "/repos/octo/app/issues/42" {
		t.Errorf("path = %q, want /repos/octo/app/issues/42", requests()[0].Path)
	}
	if issue.Title != "App crashes on startup" || issue.Author != "alice" || issue.Ref() != "octo/app#42" {
		t.Errorf("issue = %+v, want converted model", issue)
	}
	if len(issue.Labels) != 1 || issue.Labels[0] != "bug" {
		t.Errorf("labels = %v, want [bug]", issue.Labels)
	}
}

func TestClient_GetIssue_PullRequest(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"number":       3,
			"title":        "Fix typo",
			"pull_request": map[string]string{"url": "https://api.github.com/repos/octo/app/pulls/3"},
		})
	})

	if _, err := client.GetIssue(context.Background(), "octo", "app", 3); err == nil {
		t.Error("GetIssue() error = nil, want pull request rejected")
	}
}

func TestClient_GetIssue_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	})

	if _, err := client.GetIssue(context.Background(), "octo", "app", 9); err == nil {
		t.Error("GetIssue() error = nil, want 404 error")
	}
}

func TestClient_WriteOperations(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	ctx := context.Background()

	if err := client.AddLabels(ctx, "octo", "app", 1, []string{"bug", "needs-info"}); err != nil {
		t.Fatalf("AddLabels() error = %v", err)
	}
	if err := client.AddLabels(ctx, "octo", "app", 1, nil); err != nil {
		t.Fatalf("AddLabels(nil) error = %v", err)
	}
	if err := client.PostComment(ctx, "octo", "app", 1, "hello"); err != nil {
		t.Fatalf("PostComment() error = %v", err)
	}
	if err := client.CloseIssue(ctx, "octo", "app", 1, "not_planned"); err != nil {
		t.Fatalf("CloseIssue() error = %v", err)
	}

	got := requests()
	if len(got) != 3 {
		t.Fatalf("requests = %d, want 3 (empty label list sends nothing)", len(got))
	}

	if got[0].Method != http.MethodPost || got[0].Path != "/repos/octo/app/issues/1/labels" {
		t.Errorf("labels request = %s %s", got[0].Method, got[0].Path)
	}
	if labels, _ := got[0].Body["labels"].([]any); len(labels) != 2 {
		t.Errorf("labels body = %v, want two labels", got[0].Body)
	}
	if got[1].Path != "/repos/octo/app/issues/1/comments" || got[1].Body["body"] != "hello" {
		t.Errorf("comment request = %+v", got[1])
	}
	if got[2].Method != http.MethodPatch || got[2].Body["state"] != "closed" || got[2].Body["state_reason"] != "not_planned" {
		t.Errorf("close request = %+v", got[2])
	}
}

func TestClient_HasCommentContaining(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "body": "first!"},
			{"id": 2, "body": "Thanks!\n\n<!-- gh-triage -->"},
		})
	})
	ctx := context.Background()

	found, err := client.HasCommentContaining(ctx, "octo", "app", 1, "<!-- gh-triage -->")
	if err != nil {
		t.Fatalf("HasCommentContaining() error = %v", err)
	}
	if !found {
		t.Error("HasCommentContaining() = false, want true")
	}

	found, err = client.HasCommentContaining(ctx, "octo", "app", 1, "<!-- other -->")
	if err != nil || found {
		t.Errorf("HasCommentContaining(other) = %v, %v; want false, nil", found, err)
	}
}

func TestClient_ListCommentsFollowsPages(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("per_page") != "100" {
			t.Errorf("per_page = %q, want 100", r.URL.Query().Get("per_page"))
		}
		switch r.URL.Query().Get("page") {
		case "1":
			page := make([]map[string]any, 100)
			for i := range page {
				page[i] = map[string]any{"id": i + 1, "body": "+1"}
			}
			writeJSON(w, http.StatusOK, page)
		case "2":
			writeJSON(w, http.StatusOK, []map[string]any{
				{"id": 101, "body": "Closing.\n\n<!-- gh-triage:close -->"},
			})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
			writeJSON(w, http.StatusOK, []map[string]any{})
		}
	})

	comments, err := client.ListComments(context.Background(), "octo", "app", 1)
	if err != nil {
		t.Fatalf("ListComments() error = %v", err)
	}
	if len(comments) != 101 || comments[100].ID != 101 {
		t.Errorf("comments = %d, want 101 across two pages", len(comments))
	}
	if n := len(requests()); n != 2 {
		t.Errorf("requests = %d, want 2", n)
	}

	found, err := client.HasCommentContaining(context.Background(), "octo", "app", 1, "<!-- gh-triage:close -->")
	if err != nil || !found {
		t.Errorf("HasCommentContaining() = %v, %v; want true, nil", found, err)
	}
}

func TestParseRepo(t *testing.T) {
	tests := []struct {
		in        string
		wantOrg   string
		wantRepo  string
		wantError bool
	}{
		{"octo/app", "octo", "app", false},
		{"octo", "", "", true},
		{"octo/app/extra", "", "", true},
		{"/app", "", "", true},
	}

	for _, tt := range tests {
		org, repo, err := ParseRepo(tt.in)
		if (err != nil) != tt.wantError {
			t.Errorf("ParseRepo(%q) error = %v, wantError %v", tt.in, err, tt.wantError)
			continue
		}
		if org != tt.wantOrg || repo != tt.wantRepo {
			t.Errorf("ParseRepo(%q) = %q, %q", tt.in, org, repo)
		}
	}
}

func TestParseIssueRef(t *testing.T) {
	org, repo, number, err := ParseIssueRef("octo/app#12")
	if err != nil || org != "octo" || repo != "app" || number != 12 {
		t.Errorf("ParseIssueRef() = %q, %q, %d, %v", org, repo, number, err)
	}

	for _, bad := range []string{"octo/app", "octo/app#x", "octo/app#0", "app#3"} {
		if _, _, _, err := ParseIssueRef(bad); err == nil {
			t.Errorf("ParseIssueRef(%q) error = nil, want error", bad)
		}
	}
}
