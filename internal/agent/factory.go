package agent

import (
	"context"
	"fmt"

	"github.com/Kavirubc/gh-triage/internal/config"
)

// NewBackend creates the backend selected by the agent config
func NewBackend(ctx context.Context, cfg *config.AgentConfig) (Backend, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.Provider {
	case config.ProviderAnthropic:
		backend, err = asBackend(NewAnthropicBackend(cfg.APIKey, cfg.Model, cfg.BaseURL))
	case config.ProviderOpenAI:
		backend, err = asBackend(NewOpenAIBackend(cfg.APIKey, cfg.Model, cfg.BaseURL))
	case config.ProviderGemini:
		backend, err = asBackend(NewGeminiBackend(ctx, cfg.APIKey, cfg.Model))
	case config.ProviderCommand:
		backend, err = asBackend(NewCommandBackend(cfg.Command))
	default:
		return nil, fmt.Errorf("unknown agent provider: %s", cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s backend: %w", cfg.Provider, err)
	}
	return backend, nil
}

// asBackend keeps a failed constructor from producing a non-nil interface
func asBackend[B Backend](b B, err error) (Backend, error) {
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Options returns the session options for the agent config
func Options(cfg *config.AgentConfig) SessionOptions {
	return SessionOptions{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}
}
