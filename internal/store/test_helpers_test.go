package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/tickinput/internal/trace"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func analog(v float64) *float64 { return &v }

// sampleTrace is a one-shot seen by the simulation domain plus an axis channel.
func sampleTrace() []trace.Event {
	return []trace.Event{
		{Seq: 1, Tick: 1, Domain: "simulation", Action: "fire", State: "just_down"},
		{Seq: 2, Tick: 1, Domain: "simulation", Action: "look_up", State: "absent", Analog: analog(0.25)},
		{Seq: 3, Tick: 2, Domain: "simulation", Action: "fire", State: "just_up"},
		{Seq: 4, Tick: 2, Domain: "simulation", Action: "look_up", State: "absent"},
	}
}
