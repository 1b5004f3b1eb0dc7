package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tickinput/internal/store"
	"github.com/roach88/tickinput/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunID    string
	Action   string // optional - filter to specific action
}

// TraceResult holds the trace command output.
type TraceResult struct {
	RunID    string        `json:"run_id"`
	Scenario string        `json:"scenario"`
	Pass     bool          `json:"pass"`
	Events   []trace.Event `json:"events"`
	Stats    TraceStats    `json:"stats"`
}

// TraceStats summarises a recorded trace.
type TraceStats struct {
	TotalEvents int `json:"total_events"`
	JustDown    int `json:"just_down"`
	JustUp      int `json:"just_up"`
	Analog      int `json:"analog"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print a recorded run's trace",
		Long: `Print the trace of a run recorded with "tickinput run --db".

Without --run, the recorded runs are listed instead.

Examples:
  tickinput trace --db ./runs.db
  tickinput trace --db ./runs.db --run 0192f7c4-...
  tickinput trace --db ./runs.db --run 0192f7c4-... --action fire --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to TICKINPUT_DB)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to print")
	cmd.Flags().StringVar(&opts.Action, "action", "", "filter to a specific action")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	st, err := openStore(cmd, opts.Database, opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()

	if opts.RunID == "" {
		runs, err := st.ListRuns(ctx, "")
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list runs", err)
		}
		return outputRunList(cmd, opts.RootOptions, runs)
	}

	run, err := st.ReadRun(ctx, opts.RunID)
	if errors.Is(err, store.ErrRunNotFound) {
		if opts.Format == "json" {
			_ = writeJSON(cmd.OutOrStdout(), okResponse(nil, ErrCodeNotFound, err.Error()))
		}
		return WrapExitError(ExitCommandError, "unknown run", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	events, err := st.ReadTrace(ctx, run.ID, opts.Action)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read trace", err)
	}

	result := TraceResult{
		RunID:    run.ID,
		Scenario: run.Scenario,
		Pass:     run.Pass,
		Events:   events,
		Stats:    computeTraceStats(events),
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), okResponse(result, "", ""))
	}

	w := cmd.OutOrStdout()
	status := "pass"
	if !run.Pass {
		status = "fail"
	}
	fmt.Fprintf(w, "Run %s (%s, %s)\n\n", run.ID, run.Scenario, status)
	if err := writeEvents(w, events); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d events: %d just_down, %d just_up, %d with analog values\n",
		result.Stats.TotalEvents, result.Stats.JustDown, result.Stats.JustUp, result.Stats.Analog)
	return nil
}

func computeTraceStats(events []trace.Event) TraceStats {
	stats := TraceStats{TotalEvents: len(events)}
	for _, ev := range events {
		switch ev.State {
		case "just_down":
			stats.JustDown++
		case "just_up":
			stats.JustUp++
		}
		if ev.Analog != nil {
			stats.Analog++
		}
	}
	return stats
}

// RunSummary is one entry of the run list.
type RunSummary struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	Scenario string `json:"scenario"`
	Pass     bool   `json:"pass"`
}

func outputRunList(cmd *cobra.Command, opts *RootOptions, runs []store.Run) error {
	summaries := make([]RunSummary, len(runs))
	for i, r := range runs {
		summaries[i] = RunSummary{ID: r.ID, Seq: r.Seq, Scenario: r.Scenario, Pass: r.Pass}
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), okResponse(summaries, "", ""))
	}

	w := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range summaries {
		mark := "✓"
		if !r.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %4d  %s  %s\n", mark, r.Seq, r.ID, r.Scenario)
	}
	return nil
}

// openStore opens the database named by flag, falling back to TICKINPUT_DB.
func openStore(cmd *cobra.Command, flag string, opts *RootOptions) (*store.Store, error) {
	path := flag
	if path == "" {
		path = opts.DefaultDB
	}
	if path == "" {
		return nil, NewExitError(ExitCommandError, "no database: pass --db or set TICKINPUT_DB")
	}
	st, err := store.Open(path, store.WithLogger(opts.Logger(cmd.ErrOrStderr())))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
