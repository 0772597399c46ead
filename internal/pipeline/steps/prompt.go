// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-16

package steps

import (
	"github.com/Kavirubc/gh-triage/internal/pipeline/core"
	"github.com/Kavirubc/gh-triage/internal/triage"
)

// PromptBuilder renders the prompt from the issue and the operator overrides.
type PromptBuilder struct{}

// NewPromptBuilder creates a new prompt step
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

func (s *PromptBuilder) Name() string {
	return "prompt"
}

func (s *PromptBuilder) Run(ctx *core.Context) error {
	ctx.Prompt = triage.BuildPrompt(triage.PromptInput{
		Title:             ctx.Issue.Title,
		Body:              ctx.Issue.Body,
		ExtraInstructions: ctx.Env.ExtraInstructions,
		CustomPrompt:      ctx.Env.CustomPrompt,
	})
	return nil
}
