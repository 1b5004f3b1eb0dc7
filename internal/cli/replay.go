package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tickinput/internal/harness"
	"github.com/roach88/tickinput/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - specific run only
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunID         string `json:"run_id"`
	Scenario      string `json:"scenario"`
	StoredEvents  int    `json:"stored_events"`
	FreshEvents   int    `json:"fresh_events"`
	Deterministic bool   `json:"deterministic"`
	Divergence    int    `json:"divergence"`
	Detail        string `json:"detail,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run recorded scenarios and verify identical traces",
		Long: `Re-execute the scenario source stored with each recorded run and compare
the fresh trace with the stored one, event by event.

Exit codes:
  0 - Every replayed trace is identical
  1 - At least one trace diverged
  2 - Command error (database not found, etc.)

Examples:
  tickinput replay --db ./runs.db
  tickinput replay --db ./runs.db --run 0192f7c4-...
  tickinput replay --db ./runs.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to TICKINPUT_DB)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	st, err := openStore(cmd, opts.Database, opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	logger := opts.Logger(cmd.ErrOrStderr())

	var runs []store.Run
	if opts.RunID != "" {
		run, err := st.ReadRun(ctx, opts.RunID)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read run", err)
		}
		runs = []store.Run{run}
	} else {
		runs, err = st.ListRuns(ctx, "")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(runs)),
		TotalRuns:        len(runs),
		AllDeterministic: true,
	}

	for _, run := range runs {
		rr := ReplayRunResult{RunID: run.ID, Scenario: run.Scenario, Divergence: -1}

		fresh, err := rerun(run)
		if err != nil {
			rr.Detail = err.Error()
		} else {
			cmp, err := st.VerifyReplay(ctx, run.ID, fresh.Trace)
			if err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay run %s", run.ID), err)
			}
			rr.StoredEvents = cmp.StoredEvents
			rr.FreshEvents = cmp.FreshEvents
			rr.Divergence = cmp.Divergence
			rr.Deterministic = cmp.Match
			if !cmp.Match {
				rr.Detail = describeDivergence(cmp)
			}
		}

		logger.Debug("replayed run", "run", run.ID, "scenario", run.Scenario, "deterministic", rr.Deterministic)
		if !rr.Deterministic {
			result.AllDeterministic = false
		}
		result.Runs = append(result.Runs, rr)
	}

	if opts.Format == "json" {
		code, msg := "", ""
		if !result.AllDeterministic {
			code, msg = ErrCodeReplayDiverge, "replayed trace differs from recorded trace"
		}
		if err := writeJSON(cmd.OutOrStdout(), okResponse(result, code, msg)); err != nil {
			return err
		}
	} else {
		outputReplayText(cmd, result)
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay diverged")
	}
	return nil
}

// rerun executes the scenario source stored with a run.
func rerun(run store.Run) (*harness.Result, error) {
	scenario, err := harness.ParseScenario([]byte(run.Source))
	if err != nil {
		return nil, fmt.Errorf("stored scenario no longer loads: %w", err)
	}
	result, err := harness.Run(scenario)
	if err != nil {
		return nil, fmt.Errorf("stored scenario no longer runs: %w", err)
	}
	return result, nil
}

func describeDivergence(cmp store.ReplayResult) string {
	switch {
	case cmp.Stored == nil:
		return fmt.Sprintf("event %d: fresh trace is longer (%d vs %d events)", cmp.Divergence, cmp.FreshEvents, cmp.StoredEvents)
	case cmp.Fresh == nil:
		return fmt.Sprintf("event %d: fresh trace is shorter (%d vs %d events)", cmp.Divergence, cmp.FreshEvents, cmp.StoredEvents)
	default:
		return fmt.Sprintf("event %d: recorded %s %s %s, replayed %s %s %s",
			cmp.Divergence,
			cmp.Stored.Domain, cmp.Stored.Action, cmp.Stored.State,
			cmp.Fresh.Domain, cmp.Fresh.Action, cmp.Fresh.State)
	}
}

func outputReplayText(cmd *cobra.Command, result ReplayResult) {
	w := cmd.OutOrStdout()

	if result.TotalRuns == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	for _, rr := range result.Runs {
		if rr.Deterministic {
			fmt.Fprintf(w, "✓ %s %s (%d events)\n", rr.RunID, rr.Scenario, rr.StoredEvents)
			continue
		}
		fmt.Fprintf(w, "✗ %s %s\n", rr.RunID, rr.Scenario)
		fmt.Fprintf(w, "  %s\n", rr.Detail)
	}

	fmt.Fprintln(w)
	if result.AllDeterministic {
		fmt.Fprintf(w, "✓ All %d run(s) replayed identically\n", result.TotalRuns)
	} else {
		fmt.Fprintln(w, "✗ Replay diverged")
	}
}
