package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dryRun  bool
	version = "dev"
)

// NewRootCmd builds the command tree. Running the root command without a
// subcommand triages the issue described by the environment.
func NewRootCmd() *cobra.Command {
	var opts triageOptions

	rootCmd := &cobra.Command{
		Use:   "gh-triage",
		Short: "AI issue triage for GitHub Actions",
		Long: `gh-triage classifies a GitHub issue as support, bug, feature or unclear
with a language-model agent and suggests whether to close it, keep it or ask
for more information.

The issue comes from ISSUE_TITLE/ISSUE_BODY, a GitHub event file or the API.
Results are printed and appended to $GITHUB_OUTPUT for later workflow steps.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriage(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "skip all GitHub writes")

	rootCmd.AddCommand(newTriageCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newPromptCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the command line
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gh-triage version %s\n", version)
		},
	}
}
