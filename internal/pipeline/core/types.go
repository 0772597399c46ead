// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-16

package core

import (
	"context"
	"errors"
	"io"

	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/Kavirubc/gh-triage/internal/triage"
	"github.com/Kavirubc/gh-triage/pkg/models"
)

// ErrSkipPipeline indicates that the rest of the pipeline should be skipped purely for logic reasons
// (e.g. the issue is a pull request). It is not an error condition.
var ErrSkipPipeline = errors.New("skip pipeline")

// RunResult contains the complete result of one triage run
type RunResult struct {
	Issue           *models.Issue   `json:"issue,omitempty"`
	Skipped         bool            `json:"skipped,omitempty"`
	SkipReason      string          `json:"skip_reason,omitempty"`
	TriageResult    *triage.Result  `json:"triage_result,omitempty"`
	Actions         []triage.Action `json:"actions,omitempty"`
	ActionsExecuted int             `json:"actions_executed,omitempty"`
}

// Context carries state through the pipeline steps.
// It follows "Effective Go" by using direct field access for simplicity within the package.
type Context struct {
	// Base Inputs
	Ctx    context.Context
	Issue  *models.Issue
	Config *config.Config
	Env    config.Env

	// Stdout receives the human readable report
	Stdout io.Writer

	// Mutable State
	// Result accumulates the final output structure
	Result *RunResult

	// Prompt holds the text sent to the agent
	Prompt string

	// Response holds the agent's accumulated reply
	Response string

	// TriageResult holds the decoded classification
	TriageResult *triage.Result

	// Actions holds the planned follow-up actions
	Actions []triage.Action

	// SkipReason is set when ErrSkipPipeline is returned to explain why
	SkipReason string
}

// Step defines a single unit of work in the pipeline.
type Step interface {
	// Name returns the unique identifier for this step (used in logs)
	Name() string
	// Run executes the step logic.
	// Returning ErrSkipPipeline gracefully stops execution.
	// Returning any other error halts execution and is treated as a failure.
	Run(ctx *Context) error
}
