package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/tickinput/internal/harness"
	"github.com/roach88/tickinput/internal/store"
	"github.com/roach88/tickinput/internal/trace"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Quiet    bool

	// IDs allows overriding the run ID generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	IDs store.IDGenerator
}

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Scenario string        `json:"scenario"`
	Pass     bool          `json:"pass"`
	RunID    string        `json:"run_id,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
	Trace    []trace.Event `json:"trace"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return newRunCommand(&RunOptions{RootOptions: rootOpts})
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Execute one scenario and print its trace",
		Long: `Execute a scenario against the simulated input source and print the
per-gather trace and assertion results.

With --db (or TICKINPUT_DB) the run is recorded, together with the
scenario source, so it can be traced and replayed later.

Exit codes:
  0 - Scenario passed
  1 - One or more assertions failed
  2 - Command error (invalid scenario, database error, etc.)

Examples:
  tickinput run ./scenarios/one_shot.yaml
  tickinput run ./scenarios/one_shot.yaml --db ./runs.db
  tickinput run ./scenarios/one_shot.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioCommand(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "omit the trace table in text output")

	return cmd
}

func runScenarioCommand(opts *RunOptions, path string, cmd *cobra.Command) error {
	logger := opts.Logger(cmd.ErrOrStderr())

	source, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read scenario", err)
	}
	scenario, err := harness.ParseScenario(source)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	result, err := harness.Run(scenario, harness.WithLogger(logger))
	if err != nil {
		return WrapExitError(ExitCommandError, "scenario execution failed", err)
	}

	out := RunOutput{
		Scenario: scenario.Name,
		Pass:     result.Pass,
		Errors:   result.Errors,
		Trace:    result.Trace,
	}

	db := opts.Database
	if db == "" {
		db = opts.DefaultDB
	}
	if db != "" {
		runID, err := recordRun(cmd, logger, db, opts.IDs, scenario.Name, string(source), result)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		out.RunID = runID
		logger.Info("run recorded", "db", db, "run", runID, "events", len(result.Trace))
	}

	if opts.Format == "json" {
		code, msg := "", ""
		if !result.Pass {
			code, msg = ErrCodeScenarioFail, fmt.Sprintf("scenario %s failed", scenario.Name)
		}
		if err := writeJSON(cmd.OutOrStdout(), okResponse(out, code, msg)); err != nil {
			return err
		}
	} else {
		outputRunText(cmd, opts, out)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", scenario.Name))
	}
	return nil
}

func recordRun(cmd *cobra.Command, logger *slog.Logger, db string, ids store.IDGenerator, name, source string, result *harness.Result) (string, error) {
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}
	st, err := store.Open(db, store.WithLogger(logger))
	if err != nil {
		return "", err
	}
	defer st.Close()

	run, err := st.RecordRun(cmd.Context(), ids, store.Run{
		Scenario: name,
		Source:   source,
		Pass:     result.Pass,
		Errors:   result.Errors,
	}, result.Trace)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

func outputRunText(cmd *cobra.Command, opts *RunOptions, out RunOutput) {
	w := cmd.OutOrStdout()

	if !opts.Quiet {
		_ = writeEvents(w, out.Trace)
		fmt.Fprintln(w)
	}

	if out.Pass {
		fmt.Fprintf(w, "✓ %s (%d events)\n", out.Scenario, len(out.Trace))
	} else {
		fmt.Fprintf(w, "✗ %s\n", out.Scenario)
		for _, e := range out.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	if out.RunID != "" {
		fmt.Fprintf(w, "Recorded run %s\n", out.RunID)
	}
}
