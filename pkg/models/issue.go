package models

import (
	"fmt"
	"time"
)

// Issue represents a GitHub issue with its metadata
type Issue struct {
	Org       string    `json:"org,omitempty"`
	Repo      string    `json:"repo,omitempty"`
	Number    int       `json:"number,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state,omitempty"` // "open" or "closed"
	Labels    []string  `json:"labels,omitempty"`
	Author    string    `json:"author,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// FullRepo returns the full repository name (org/repo)
func (i *Issue) FullRepo() string {
	return fmt.Sprintf("%s/%s", i.Org, i.Repo)
}

// Ref returns a short reference like org/repo#123.
// Issues that only carry a title and body (env input) have no reference.
func (i *Issue) Ref() string {
	if !i.Addressable() {
		return ""
	}
	return fmt.Sprintf("%s#%d", i.FullRepo(), i.Number)
}

// Addressable reports whether the issue can be targeted through the GitHub API
func (i *Issue) Addressable() bool {
	return i.Org != "" && i.Repo != "" && i.Number > 0
}
