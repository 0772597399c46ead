// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-16

package steps

import (
	"strings"

	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/Kavirubc/gh-triage/internal/pipeline/core"
)

// InputGatekeeper stops the pipeline before any agent work when the issue
// cannot be triaged.
type InputGatekeeper struct{}

// NewInputGatekeeper creates a new gatekeeper step
func NewInputGatekeeper() *InputGatekeeper {
	return &InputGatekeeper{}
}

func (s *InputGatekeeper) Name() string {
	return "gatekeeper"
}

func (s *InputGatekeeper) Run(ctx *core.Context) error {
	if ctx.Issue == nil || ctx.Issue.Title == "" {
		return config.ErrMissingTitle
	}

	// Issues closed before the workflow ran are left alone
	if strings.EqualFold(ctx.Issue.State, "closed") {
		ctx.Result.Skipped = true
		ctx.SkipReason = "issue is closed"
		return core.ErrSkipPipeline
	}

	return nil
}
