// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-16

package steps

import (
	"github.com/Kavirubc/gh-triage/internal/pipeline/core"
	"github.com/Kavirubc/gh-triage/internal/triage"
)

// ActionPlanner turns the triage result into labels, comments and closes.
type ActionPlanner struct{}

// NewActionPlanner creates a new planning step
func NewActionPlanner() *ActionPlanner {
	return &ActionPlanner{}
}

func (s *ActionPlanner) Name() string {
	return "planner"
}

func (s *ActionPlanner) Run(ctx *core.Context) error {
	if ctx.TriageResult == nil {
		return nil
	}

	ctx.Actions = triage.PlanActions(ctx.TriageResult, &ctx.Config.Triage)
	ctx.Result.Actions = ctx.Actions
	return nil
}
