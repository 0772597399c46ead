package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Kavirubc/gh-triage/internal/agent"
	"github.com/Kavirubc/gh-triage/internal/config"
	"github.com/Kavirubc/gh-triage/internal/github"
	"github.com/Kavirubc/gh-triage/internal/pipeline"
	"github.com/Kavirubc/gh-triage/internal/pipeline/steps"
	"github.com/Kavirubc/gh-triage/internal/triage"
	"github.com/spf13/cobra"
)

// backendFactory is replaced in tests
var backendFactory = agent.NewBackend

// newIssueClient is replaced in tests
var newIssueClient = func() (triage.IssueClient, error) {
	return github.NewClient()
}

type triageOptions struct {
	source     issueSource
	outputPath string
	apply      bool
}

func newTriageCmd() *cobra.Command {
	var opts triageOptions

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Classify an issue and report the suggested action",
		Long: `Build the triage prompt for an issue, ask the agent, decode its JSON answer
and report it. With --apply the planned labels, comments and close are
applied to the issue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTriage(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.source.eventPath, "event-path", "", "path to GitHub event JSON file to read the issue from")
	cmd.Flags().StringVar(&opts.source.repo, "repo", "", "repository (owner/repo) of the issue")
	cmd.Flags().IntVar(&opts.source.number, "number", 0, "issue number")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "path to write the triage outcome JSON")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "apply the planned actions to the issue")

	return cmd
}

func runTriage(cmd *cobra.Command, opts triageOptions) error {
	ctx := contextOrBackground(cmd.Context())
	env := config.LoadEnv(os.Getenv)

	issue, err := resolveIssue(ctx, env, opts.source)
	if err != nil {
		return failed(err)
	}
	if issue.Title == "" {
		return config.ErrMissingTitle
	}

	cfg, err := loadConfig(env)
	if err != nil {
		return failed(err)
	}

	backend, err := backendFactory(ctx, &cfg.Agent)
	if err != nil {
		return failed(err)
	}

	var executor steps.Executor
	if opts.apply {
		if !issue.Addressable() {
			return failed(fmt.Errorf("--apply needs the issue repository and number (--repo/--number or an event file)"))
		}
		client, err := newIssueClient()
		if err != nil {
			return failed(fmt.Errorf("failed to create GitHub client: %w", err))
		}
		executor = triage.NewExecutor(client, dryRun)
	}

	triager := triage.NewTriager(backend, agent.Options(&cfg.Agent))
	builder := pipeline.NewBuilder(triager, executor, opts.outputPath)
	runner := pipeline.NewRunner(cfg, env, cmd.OutOrStdout(), builder.Build())

	result, err := runner.Run(ctx, issue)
	if err != nil {
		if errors.Is(err, config.ErrMissingTitle) {
			return err
		}
		return failed(err)
	}

	if result.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped: %s\n", result.SkipReason)
	}
	if result.ActionsExecuted > 0 {
		log.Printf("Applied %d actions to %s", result.ActionsExecuted, issue.Ref())
	}

	return nil
}

// loadConfig reads the config file (or defaults), overlays the environment
// and validates the result.
func loadConfig(env config.Env) (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv(env)

	if errs := config.Validate(cfg); len(errs) > 0 {
		if path == "" {
			path = "defaults"
		}
		return nil, fmt.Errorf("invalid configuration (%s): %w", path, errors.Join(errs...))
	}

	return cfg, nil
}

// contextOrBackground guards commands run without ExecuteContext
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
