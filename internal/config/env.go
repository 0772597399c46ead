package config

import (
	"errors"
	"os"
	"regexp"
	"strings"
)

// ErrMissingTitle is returned when no issue title is available
var ErrMissingTitle = errors.New("ISSUE_TITLE environment variable is required")

// EnvVar documents one recognized environment variable
type EnvVar struct {
	Name     string
	Required bool
	Effect   string
}

// EnvVars lists every environment variable gh-triage reads, in display order
var EnvVars = []EnvVar{
	{"ISSUE_TITLE", true, "issue title text; empty/absent is a fatal error"},
	{"ISSUE_BODY", false, "issue body text; empty is shown as \"(empty)\" in prompts"},
	{"CUSTOM_PROMPT", false, "override template with {{title}}/{{body}}/{{extra_instructions}} placeholders"},
	{"EXTRA_INSTRUCTIONS", false, "extra guidance injected into either template"},
	{"GITHUB_OUTPUT", false, "file that receives key=value result lines for later workflow steps"},
	{"GITHUB_EVENT_PATH", false, "issue event JSON; supplies repository and number when ISSUE_TITLE is set"},
	{"TRIAGE_PROVIDER", false, "agent backend: anthropic, openai, gemini or command"},
	{"TRIAGE_MODEL", false, "model name passed to the agent backend"},
	{"ANTHROPIC_API_KEY", false, "API key for the anthropic provider"},
	{"OPENAI_API_KEY", false, "API key for the openai provider"},
	{"GEMINI_API_KEY", false, "API key for the gemini provider"},
}

// Env holds the environment inputs of a single triage run
type Env struct {
	IssueTitle        string
	IssueBody         string
	CustomPrompt      string
	ExtraInstructions string
	OutputFile        string
	EventPath         string
	Provider          string
	Model             string
	AnthropicAPIKey   string
	OpenAIAPIKey      string
	GeminiAPIKey      string
}

// LoadEnv reads all recognized variables through getenv.
// CUSTOM_PROMPT and EXTRA_INSTRUCTIONS are trimmed; title and body are kept verbatim.
func LoadEnv(getenv func(string) string) Env {
	if getenv == nil {
		getenv = os.Getenv
	}
	return Env{
		IssueTitle:        getenv("ISSUE_TITLE"),
		IssueBody:         getenv("ISSUE_BODY"),
		CustomPrompt:      strings.TrimSpace(getenv("CUSTOM_PROMPT")),
		ExtraInstructions: strings.TrimSpace(getenv("EXTRA_INSTRUCTIONS")),
		OutputFile:        getenv("GITHUB_OUTPUT"),
		EventPath:         getenv("GITHUB_EVENT_PATH"),
		Provider:          strings.TrimSpace(getenv("TRIAGE_PROVIDER")),
		Model:             strings.TrimSpace(getenv("TRIAGE_MODEL")),
		AnthropicAPIKey:   getenv("ANTHROPIC_API_KEY"),
		OpenAIAPIKey:      getenv("OPENAI_API_KEY"),
		GeminiAPIKey:      getenv("GEMINI_API_KEY"),
	}
}

// APIKeyFor returns the credential variable matching a provider
func (e Env) APIKeyFor(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return e.AnthropicAPIKey
	case ProviderOpenAI:
		return e.OpenAIAPIKey
	case ProviderGemini:
		return e.GeminiAPIKey
	default:
		return ""
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if env var not set
	})
}

// expandConfigEnvVars expands environment variables in config string fields
func expandConfigEnvVars(cfg *Config) {
	cfg.Agent.APIKey = expandEnvVars(cfg.Agent.APIKey)
	cfg.Agent.BaseURL = expandEnvVars(cfg.Agent.BaseURL)
	cfg.Agent.Model = expandEnvVars(cfg.Agent.Model)
	for i, arg := range cfg.Agent.Command {
		cfg.Agent.Command[i] = expandEnvVars(arg)
	}
}
