package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the optional gh-triage configuration file
type Config struct {
	Agent  AgentConfig  `yaml:"agent"`
	Triage TriageConfig `yaml:"triage"`
}

// AgentConfig selects and tunes the conversational agent backend
type AgentConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	APIKey      string   `yaml:"api_key"`
	BaseURL     string   `yaml:"base_url,omitempty"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature float64  `yaml:"temperature"`
	Command     []string `yaml:"command,omitempty"`
}

// TriageConfig controls how a triage result is turned into issue actions
type TriageConfig struct {
	Labels           map[string]string `yaml:"labels"`
	NeedsInfoLabel   string            `yaml:"needs_info_label"`
	CloseReason      string            `yaml:"close_reason"`
	CloseComment     string            `yaml:"close_comment"`
	NeedsInfoComment string            `yaml:"needs_info_comment"`
}

// Supported agent providers
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderCommand   = "command"
)

const (
	defaultCloseComment = "Thanks for reaching out! This looks like a support question rather than a bug report or feature request, " +
		"so we're closing it here. Please use the project's discussion forum for usage help.\n\n> %s"
	defaultNeedsInfoComment = "Thanks for the report! We need a bit more information to act on this. " +
		"Could you add reproduction steps, the version you are using, and any error output?\n\n> %s"
)

// Load reads and parses config from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadOrDefault loads the config file found via FindConfigPath, falling back
// to defaults when there is none. The returned path is empty for defaults.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path := FindConfigPath(explicit)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	// Check common locations
	paths := []string{
		".github/gh-triage.yaml",
		".github/gh-triage.yml",
		"gh-triage.yaml",
		"gh-triage.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "gh-triage", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// ApplyEnv overlays agent selection and credentials taken from the environment.
// Provider and model variables win over the file; API keys only fill gaps.
func (cfg *Config) ApplyEnv(env Env) {
	if env.Provider != "" {
		cfg.Agent.Provider = env.Provider
	}
	if env.Model != "" {
		cfg.Agent.Model = env.Model
	}
	if cfg.Agent.APIKey == "" {
		cfg.Agent.APIKey = env.APIKeyFor(cfg.Agent.Provider)
	}
}

// LabelFor returns the label mapped to a classification, or "" when unmapped
func (c *TriageConfig) LabelFor(classification string) string {
	return c.Labels[classification]
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.Agent.Provider == "" {
		cfg.Agent.Provider = ProviderAnthropic
	}
	if cfg.Agent.MaxTokens == 0 {
		cfg.Agent.MaxTokens = 1024
	}
	if cfg.Agent.Temperature == 0 {
		cfg.Agent.Temperature = 0.3
	}

	if cfg.Triage.Labels == nil {
		cfg.Triage.Labels = map[string]string{
			"bug":     "bug",
			"feature": "enhancement",
			"support": "question",
			"unclear": "needs-triage",
		}
	}
	if cfg.Triage.NeedsInfoLabel == "" {
		cfg.Triage.NeedsInfoLabel = "needs-info"
	}
	if cfg.Triage.CloseReason == "" {
		cfg.Triage.CloseReason = "not_planned"
	}
	if cfg.Triage.CloseComment == "" {
		cfg.Triage.CloseComment = defaultCloseComment
	}
	if cfg.Triage.NeedsInfoComment == "" {
		cfg.Triage.NeedsInfoComment = defaultNeedsInfoComment
	}
}
