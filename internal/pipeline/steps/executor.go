// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-16

package steps

import (
	"context"
	"log"

	"github.com/Kavirubc/gh-triage/internal/pipeline/core"
	"github.com/Kavirubc/gh-triage/internal/triage"
	"github.com/Kavirubc/gh-triage/pkg/models"
)

// Executor applies planned actions to an issue
type Executor interface {
	Execute(ctx context.Context, issue *models.Issue, actions []triage.Action) error
	DryRun() bool
}

// ActionExecutor applies the planned actions through the GitHub API.
type ActionExecutor struct {
	executor Executor
}

// NewActionExecutor creates a new executor step
func NewActionExecutor(executor Executor) *ActionExecutor {
	return &ActionExecutor{executor: executor}
}

func (s *ActionExecutor) Name() string {
	return "action_executor"
}

func (s *ActionExecutor) Run(ctx *core.Context) error {
	if len(ctx.Actions) == 0 {
		log.Println("No actions planned, skipping side effects")
		return nil
	}

	if err := s.executor.Execute(ctx.Ctx, ctx.Issue, ctx.Actions); err != nil {
		return err
	}

	if s.executor.DryRun() {
		log.Printf("[DRY RUN] %d actions planned for %s, none applied", len(ctx.Actions), ctx.Issue.Ref())
		return nil
	}

	ctx.Result.ActionsExecuted = len(ctx.Actions)
	return nil
}
