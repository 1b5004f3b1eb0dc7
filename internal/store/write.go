package store

import (
	"context"
	"fmt"

	"github.com/roach88/tickinput/internal/trace"
)

// Run is one recorded scenario execution.
type Run struct {
	ID       string
	Seq      int64
	Scenario string

	// Source is the scenario YAML the run was executed from.
	Source string

	Pass   bool
	Errors []string
}

// WriteRun inserts a run record and assigns its logical seq, which is one
// past the highest seq recorded so far. Returns the assigned seq.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency; rewriting an existing
// ID returns the seq it already has.
func (s *Store) WriteRun(ctx context.Context, run Run) (int64, error) {
	errsJSON, err := marshalErrors(run.Errors)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seq, scenario, source_yaml, pass, errors)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Scenario,
		run.Source,
		boolToInt(run.Pass),
		errsJSON,
	)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: read seq: %w", err)
	}
	return seq, nil
}

// WriteTraceEvents inserts a run's trace in a single transaction.
// The run must already exist (foreign key constraint). Events with a seq
// already stored for the run are ignored.
func (s *Store) WriteTraceEvents(ctx context.Context, runID string, events []trace.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write trace: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trace_events (run_id, seq, tick, domain, action, state, analog)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write trace: prepare: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.ExecContext(ctx,
			runID,
			ev.Seq,
			int64(ev.Tick),
			ev.Domain,
			ev.Action,
			ev.State,
			analogArg(ev.Analog),
		); err != nil {
			return fmt.Errorf("write trace: event %d: %w", ev.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write trace: commit: %w", err)
	}
	return nil
}

// RecordRun writes a run and its trace together, generating the ID.
func (s *Store) RecordRun(ctx context.Context, ids IDGenerator, run Run, events []trace.Event) (Run, error) {
	if run.ID == "" {
		run.ID = ids.Generate()
	}
	seq, err := s.WriteRun(ctx, run)
	if err != nil {
		return Run{}, err
	}
	run.Seq = seq
	if err := s.WriteTraceEvents(ctx, run.ID, events); err != nil {
		return Run{}, err
	}
	return run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
