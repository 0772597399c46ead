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
)

// Asker sends one prompt to an agent and returns the full reply
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// AgentInvoker sends the prompt to the agent and keeps the accumulated reply.
type AgentInvoker struct {
	agent Asker
}

// NewAgentInvoker creates a new agent step
func NewAgentInvoker(agent Asker) *AgentInvoker {
	return &AgentInvoker{agent: agent}
}

func (s *AgentInvoker) Name() string {
	return "agent"
}

func (s *AgentInvoker) Run(ctx *core.Context) error {
	response, err := s.agent.Ask(ctx.Ctx, ctx.Prompt)
	if err != nil {
		return err
	}
	ctx.Response = response
	return nil
}

// ResultExtractor decodes the triage result out of the agent's reply.
type ResultExtractor struct{}

// NewResultExtractor creates a new extraction step
func NewResultExtractor() *ResultExtractor {
	return &ResultExtractor{}
}

func (s *ResultExtractor) Name() string {
	return "extract"
}

func (s *ResultExtractor) Run(ctx *core.Context) error {
	result, err := triage.Extract(ctx.Response)
	if err != nil {
		return err
	}

	if ref := ctx.Issue.Ref(); ref != "" {
		log.Printf("Triaged %s as %s (%s confidence)", ref, result.Classification, result.Confidence)
	}

	ctx.TriageResult = result
	ctx.Result.TriageResult = result
	return nil
}
