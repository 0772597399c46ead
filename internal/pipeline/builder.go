// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-16

package pipeline

import (
	"github.com/Kavirubc/gh-triage/internal/pipeline/core"
	"github.com/Kavirubc/gh-triage/internal/pipeline/steps"
)

// Builder constructs a pipeline of steps.
type Builder struct {
	agent       steps.Asker
	executor    steps.Executor
	outcomePath string
}

// NewBuilder creates a new pipeline builder. executor is nil unless planned
// actions should be applied; outcomePath may be empty.
func NewBuilder(agent steps.Asker, executor steps.Executor, outcomePath string) *Builder {
	return &Builder{
		agent:       agent,
		executor:    executor,
		outcomePath: outcomePath,
	}
}

// Build creates the triage pipeline:
// gatekeeper, prompt, agent, extract, planner, report and optionally action_executor.
func (b *Builder) Build() []core.Step {
	pipe := []core.Step{
		steps.NewInputGatekeeper(),
		steps.NewPromptBuilder(),
		steps.NewAgentInvoker(b.agent),
		steps.NewResultExtractor(),
		steps.NewActionPlanner(),
		steps.NewReporter(b.outcomePath),
	}
	if b.executor != nil {
		pipe = append(pipe, steps.NewActionExecutor(b.executor))
	}
	return pipe
}
