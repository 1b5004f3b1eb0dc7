package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/tickinput/internal/trace"
)

// ErrRunNotFound is returned when no run has the requested ID.
var ErrRunNotFound = errors.New("run not found")

// ReadRun returns the run with the given ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, scenario, source_yaml, pass, errors
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns runs ordered by seq. A non-empty scenario restricts the
// list to runs of that scenario. Returns an empty slice, never nil.
func (s *Store) ListRuns(ctx context.Context, scenario string) ([]Run, error) {
	query := `
		SELECT id, seq, scenario, source_yaml, pass, errors
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
	args := []any{}
	if scenario != "" {
		query = `
			SELECT id, seq, scenario, source_yaml, pass, errors
			FROM runs
			WHERE scenario = ?
			ORDER BY seq ASC, id COLLATE BINARY ASC
		`
		args = append(args, scenario)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadTrace returns a run's events ordered by seq. A non-empty action
// restricts the result to that action. Returns an empty slice, never nil.
func (s *Store) ReadTrace(ctx context.Context, runID, action string) ([]trace.Event, error) {
	query := `
		SELECT seq, tick, domain, action, state, analog
		FROM trace_events
		WHERE run_id = ?
		ORDER BY seq ASC
	`
	args := []any{runID}
	if action != "" {
		query = `
			SELECT seq, tick, domain, action, state, analog
			FROM trace_events
			WHERE run_id = ? AND action = ?
			ORDER BY seq ASC
		`
		args = append(args, action)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trace: %w", err)
	}
	defer rows.Close()

	events := []trace.Event{}
	for rows.Next() {
		var (
			ev     trace.Event
			tick   int64
			analog sql.NullFloat64
		)
		if err := rows.Scan(&ev.Seq, &tick, &ev.Domain, &ev.Action, &ev.State, &analog); err != nil {
			return nil, fmt.Errorf("scan trace event: %w", err)
		}
		ev.Tick = uint64(tick)
		if analog.Valid {
			v := analog.Float64
			ev.Analog = &v
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trace: %w", err)
	}
	return events, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run      Run
		pass     int
		errsJSON string
	)
	if err := row.Scan(&run.ID, &run.Seq, &run.Scenario, &run.Source, &pass, &errsJSON); err != nil {
		return Run{}, err
	}
	run.Pass = pass == 1

	errs, err := unmarshalErrors(errsJSON)
	if err != nil {
		return Run{}, err
	}
	run.Errors = errs
	return run, nil
}
