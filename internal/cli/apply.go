package cli

import (
	"fmt"

	"github.com/Kavirubc/gh-triage/internal/github"
	"github.com/Kavirubc/gh-triage/internal/triage"
	"github.com/Kavirubc/gh-triage/pkg/models"
	"github.com/spf13/cobra"
)

// newApplyCmd creates a command to execute actions from a saved outcome file
func newApplyCmd() *cobra.Command {
	var (
		inputPath string
		issueRef  string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the actions of a saved triage outcome",
		Long: `Execute the actions from an outcome file written by "triage --output".
This lets one job classify with read-only permissions and a later job apply
the result with write access.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextOrBackground(cmd.Context())

			outcome, err := triage.ReadOutcome(inputPath)
			if err != nil {
				return err
			}

			issue := outcome.Issue
			if issueRef != "" {
				org, repo, number, err := github.ParseIssueRef(issueRef)
				if err != nil {
					return err
				}
				if issue == nil {
					issue = &models.Issue{}
				}
				issue.Org, issue.Repo, issue.Number = org, repo, number
			}
			if issue == nil || !issue.Addressable() {
				return fmt.Errorf("outcome has no issue reference; pass --issue owner/repo#number")
			}

			client, err := newIssueClient()
			if err != nil {
				return fmt.Errorf("failed to create GitHub client: %w", err)
			}

			executor := triage.NewExecutor(client, dryRun)
			if err := executor.Execute(ctx, issue, outcome.Actions); err != nil {
				return fmt.Errorf("failed to execute actions: %w", err)
			}

			if executor.DryRun() {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d actions planned for %s, none applied\n", len(outcome.Actions), issue.Ref())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Executed %d actions on %s\n", len(outcome.Actions), issue.Ref())
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to triage outcome JSON")
	cmd.Flags().StringVar(&issueRef, "issue", "", "issue to apply to (owner/repo#number), overriding the outcome")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
