// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-16

package steps

import (
	"fmt"

	"github.com/Kavirubc/gh-triage/internal/pipeline/core"
	"github.com/Kavirubc/gh-triage/internal/triage"
)

// Reporter prints the summary, appends workflow outputs and optionally
// writes the JSON outcome file.
type Reporter struct {
	outcomePath string
}

// NewReporter creates a new report step. outcomePath may be empty.
func NewReporter(outcomePath string) *Reporter {
	return &Reporter{outcomePath: outcomePath}
}

func (s *Reporter) Name() string {
	return "report"
}

func (s *Reporter) Run(ctx *core.Context) error {
	if ctx.TriageResult == nil {
		return fmt.Errorf("no triage result to report")
	}

	if err := triage.PrintReport(ctx.Stdout, ctx.TriageResult); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if ctx.Env.OutputFile != "" {
		if err := triage.AppendOutputs(ctx.Env.OutputFile, ctx.TriageResult); err != nil {
			return err
		}
	}

	if s.outcomePath != "" {
		outcome := &triage.Outcome{
			Issue:   ctx.Issue,
			Result:  ctx.TriageResult,
			Actions: ctx.Actions,
		}
		if err := triage.WriteOutcome(outcome, s.outcomePath); err != nil {
			return err
		}
	}

	return nil
}
