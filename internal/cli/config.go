package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(newConfigValidateCmd())
	cmd.AddCommand(newConfigEnvCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, cfgPath, err := config.LoadOrDefault(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfgPath == "" {
				fmt.Fprintln(out, "No config file found, validating defaults")
			} else {
				fmt.Fprintf(out, "Validating config: %s\n", cfgPath)
			}

			cfg.ApplyEnv(config.LoadEnv(os.Getenv))

			errs := config.Validate(cfg)
			if len(errs) > 0 {
				fmt.Fprintln(out, "\nValidation errors:")
				for _, e := range errs {
					fmt.Fprintf(out, "  - %v\n", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			model := cfg.Agent.Model
			if model == "" {
				model = "provider default"
			}

			fmt.Fprintln(out, "\nConfiguration is valid!")
			fmt.Fprintf(out, "  - Agent: %s (%s)\n", cfg.Agent.Provider, model)
			fmt.Fprintf(out, "  - Max tokens: %d, temperature: %.2f\n", cfg.Agent.MaxTokens, cfg.Agent.Temperature)

			names := make([]string, 0, len(cfg.Triage.Labels))
			for name := range cfg.Triage.Labels {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  - Label for %s: %s\n", name, cfg.Triage.Labels[name])
			}
			fmt.Fprintf(out, "  - Close reason: %s\n", cfg.Triage.CloseReason)

			return nil
		},
	}
}

func newConfigEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables gh-triage reads",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, v := range config.EnvVars {
				required := ""
				if v.Required {
					required = " (required)"
				}
				fmt.Fprintf(out, "%-20s %s%s\n", v.Name, v.Effect, required)
			}
		},
	}
}
