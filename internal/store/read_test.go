package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestListRuns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	runs, err := s.ListRuns(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	for _, r := range []Run{
		{ID: "c", Scenario: "one_shot", Source: "1"},
		{ID: "a", Scenario: "fifo", Source: "2"},
		{ID: "b", Scenario: "one_shot", Source: "3"},
	} {
		_, err := s.WriteRun(ctx, r)
		require.NoError(t, err)
	}

	runs, err = s.ListRuns(ctx, "")
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})

	runs, err = s.ListRuns(ctx, "one_shot")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
	assert.Equal(t, "3", runs[1].Source)
	assert.Equal(t, []string{}, runs[1].Errors)
}

func TestReadTrace_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.WriteRun(ctx, Run{ID: "r", Scenario: "s", Source: "x"})
	require.NoError(t, err)
	require.NoError(t, s.WriteTraceEvents(ctx, "r", sampleTrace()))

	events, err := s.ReadTrace(ctx, "r", "")
	require.NoError(t, err)
	assert.Equal(t, sampleTrace(), events)

	fire, err := s.ReadTrace(ctx, "r", "fire")
	require.NoError(t, err)
	require.Len(t, fire, 2)
	assert.Equal(t, "just_down", fire[0].State)
	assert.Equal(t, "just_up", fire[1].State)
	assert.Nil(t, fire[0].Analog)

	empty, err := s.ReadTrace(ctx, "other", "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
