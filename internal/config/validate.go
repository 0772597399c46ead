package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validClassifications = []string{"support", "bug", "feature", "unclear"}

// Validate checks the configuration for errors
func Validate(cfg *Config) []error {
	var errs []error

	switch cfg.Agent.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		if cfg.Agent.APIKey == "" || strings.HasPrefix(cfg.Agent.APIKey, "${") {
			errs = append(errs, ValidationError{"agent.api_key", fmt.Sprintf("required for provider '%s'", cfg.Agent.Provider)})
		}
	case ProviderCommand:
		if len(cfg.Agent.Command) == 0 {
			errs = append(errs, ValidationError{"agent.command", "required for provider 'command'"})
		}
	case "":
		errs = append(errs, ValidationError{"agent.provider", "required"})
	default:
		errs = append(errs, ValidationError{"agent.provider", "must be 'anthropic', 'openai', 'gemini' or 'command'"})
	}

	if cfg.Agent.MaxTokens < 0 {
		errs = append(errs, ValidationError{"agent.max_tokens", "must not be negative"})
	}
	if cfg.Agent.Temperature < 0 || cfg.Agent.Temperature > 2 {
		errs = append(errs, ValidationError{"agent.temperature", "must be between 0 and 2"})
	}

	for name := range cfg.Triage.Labels {
		if !isClassification(name) {
			errs = append(errs, ValidationError{
				"triage.labels." + name,
				"unknown classification (valid: " + strings.Join(validClassifications, ", ") + ")",
			})
		}
	}

	switch cfg.Triage.CloseReason {
	case "completed", "not_planned":
	default:
		errs = append(errs, ValidationError{"triage.close_reason", "must be 'completed' or 'not_planned'"})
	}

	return errs
}

func isClassification(name string) bool {
	for _, c := range validClassifications {
		if c == name {
			return true
		}
	}
	return false
}
