package cli

import (
	"fmt"
	"os"

	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/Kavirubc/gh-triage/internal/triage"
	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	var src issueSource

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt that would be sent to the agent",
		Long: `Render the triage prompt for the current issue, including CUSTOM_PROMPT and
EXTRA_INSTRUCTIONS, without contacting the agent.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := config.LoadEnv(os.Getenv)

			issue, err := resolveIssue(contextOrBackground(cmd.Context()), env, src)
			if err != nil {
				return err
			}
			if issue.Title == "" {
				return config.ErrMissingTitle
			}

			prompt := triage.BuildPrompt(triage.PromptInput{
				Title:             issue.Title,
				Body:              issue.Body,
				ExtraInstructions: env.ExtraInstructions,
				CustomPrompt:      env.CustomPrompt,
			})
			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	cmd.Flags().StringVar(&src.eventPath, "event-path", "", "path to GitHub event JSON file to read the issue from")
	cmd.Flags().StringVar(&src.repo, "repo", "", "repository (owner/repo) of the issue")
	cmd.Flags().IntVar(&src.number, "number", 0, "issue number")

	return cmd
}
