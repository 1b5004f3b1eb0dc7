package store

import (
	"context"
	"fmt"

	"github.com/roach88/tickinput/internal/trace"
)

// ReplayResult compares a stored trace with a freshly executed one.
type ReplayResult struct {
	RunID string

	// Match is true if both traces are identical.
	Match bool

	// StoredEvents and FreshEvents are the trace lengths.
	StoredEvents int
	FreshEvents  int

	// Divergence is the index of the first differing event, or -1.
	Divergence int

	// Stored and Fresh are the events at Divergence, nil past either end.
	Stored *trace.Event
	Fresh  *trace.Event
}

// VerifyReplay reads the run's stored trace and compares it with fresh.
func (s *Store) VerifyReplay(ctx context.Context, runID string, fresh []trace.Event) (ReplayResult, error) {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return ReplayResult{}, fmt.Errorf("verify replay: %w", err)
	}
	stored, err := s.ReadTrace(ctx, runID, "")
	if err != nil {
		return ReplayResult{}, fmt.Errorf("verify replay: %w", err)
	}
	return CompareTraces(runID, stored, fresh), nil
}

// CompareTraces finds the first event where stored and fresh differ.
func CompareTraces(runID string, stored, fresh []trace.Event) ReplayResult {
	result := ReplayResult{
		RunID:        runID,
		StoredEvents: len(stored),
		FreshEvents:  len(fresh),
		Divergence:   -1,
	}

	n := max(len(stored), len(fresh))
	for i := 0; i < n; i++ {
		var a, b *trace.Event
		if i < len(stored) {
			a = &stored[i]
		}
		if i < len(fresh) {
			b = &fresh[i]
		}
		if a != nil && b != nil && sameEvent(*a, *b) {
			continue
		}
		result.Divergence = i
		result.Stored = a
		result.Fresh = b
		return result
	}

	result.Match = true
	return result
}

func sameEvent(a, b trace.Event) bool {
	if a.Seq != b.Seq || a.Tick != b.Tick || a.Domain != b.Domain || a.Action != b.Action || a.State != b.State {
		return false
	}
	if (a.Analog == nil) != (b.Analog == nil) {
		return false
	}
	return a.Analog == nil || *a.Analog == *b.Analog
}
