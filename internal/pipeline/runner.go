// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-16

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/Kavirubc/gh-triage/internal/pipeline/core"
	"github.com/Kavirubc/gh-triage/pkg/models"
)

// Runner drives one issue through the configured steps
type Runner struct {
	cfg    *config.Config
	env    config.Env
	stdout io.Writer

	// pipeline is the sequence of steps to execute
	pipeline []core.Step
}

// NewRunner creates a new runner
func NewRunner(cfg *config.Config, env config.Env, stdout io.Writer, pipeline []core.Step) *Runner {
	return &Runner{
		cfg:      cfg,
		env:      env,
		stdout:   stdout,
		pipeline: pipeline,
	}
}

// Run processes a single issue through the pipeline. Steps run strictly in
// order; the first failing step ends the run.
func (r *Runner) Run(ctx context.Context, issue *models.Issue) (*core.RunResult, error) {
	pCtx := &core.Context{
		Ctx:    ctx,
		Issue:  issue,
		Config: r.cfg,
		Env:    r.env,
		Stdout: r.stdout,
		Result: &core.RunResult{Issue: issue},
	}

	for _, step := range r.pipeline {
		if err := step.Run(pCtx); err != nil {
			if errors.Is(err, core.ErrSkipPipeline) {
				pCtx.Result.SkipReason = pCtx.SkipReason
				log.Printf("Skipping remaining steps after %s: %s", step.Name(), pCtx.SkipReason)
				break
			}
			if errors.Is(err, config.ErrMissingTitle) {
				return nil, err
			}
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
	}

	return pCtx.Result, nil
}
