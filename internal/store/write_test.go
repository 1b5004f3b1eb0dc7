package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRun_AssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.WriteRun(ctx, Run{ID: "b", Scenario: "one_shot", Source: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	seq, err = s.WriteRun(ctx, Run{ID: "a", Scenario: "fifo", Source: "y"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq1, err := s.WriteRun(ctx, Run{ID: "r", Scenario: "one_shot", Source: "x", Pass: true})
	require.NoError(t, err)
	seq2, err := s.WriteRun(ctx, Run{ID: "r", Scenario: "changed", Source: "z"})
	require.NoError(t, err)
	assert.Equal(t, seq1, seq2)

	run, err := s.ReadRun(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, "one_shot", run.Scenario)
	assert.True(t, run.Pass)
}

func TestWriteRun_Errors(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, Run{
		ID:       "r",
		Scenario: "wrong",
		Source:   "x",
		Errors:   []string{"assertions[0]: Assertion failed: edge_count", "quote \" and <tag>"},
	})
	require.NoError(t, err)

	var raw string
	require.NoError(t, s.DB().QueryRow(`SELECT errors FROM runs WHERE id = 'r'`).Scan(&raw))
	assert.Equal(t, `["assertions[0]: Assertion failed: edge_count","quote \" and <tag>"]`, raw)

	run, err := s.ReadRun(ctx, "r")
	require.NoError(t, err)
	assert.False(t, run.Pass)
	assert.Equal(t, []string{"assertions[0]: Assertion failed: edge_count", "quote \" and <tag>"}, run.Errors)
}

func TestWriteTraceEvents_RequiresRun(t *testing.T) {
	s := createTestStore(t)

	err := s.WriteTraceEvents(context.Background(), "missing", sampleTrace())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write trace")
}

func TestWriteTraceEvents_RejectsUnknownDomain(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.WriteRun(ctx, Run{ID: "r", Scenario: "s", Source: "x"})
	require.NoError(t, err)

	events := sampleTrace()
	events[3].Domain = "physics"
	err = s.WriteTraceEvents(ctx, "r", events)
	require.Error(t, err)

	stored, err := s.ReadTrace(ctx, "r", "")
	require.NoError(t, err)
	assert.Empty(t, stored, "a failed batch is rolled back")
}

func TestWriteTraceEvents_DuplicateSeqIgnored(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.WriteRun(ctx, Run{ID: "r", Scenario: "s", Source: "x"})
	require.NoError(t, err)

	require.NoError(t, s.WriteTraceEvents(ctx, "r", sampleTrace()))
	require.NoError(t, s.WriteTraceEvents(ctx, "r", sampleTrace()))

	stored, err := s.ReadTrace(ctx, "r", "")
	require.NoError(t, err)
	assert.Len(t, stored, 4)
}
