package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyReplay_Match(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.WriteRun(ctx, Run{ID: "r", Scenario: "s", Source: "x"})
	require.NoError(t, err)
	require.NoError(t, s.WriteTraceEvents(ctx, "r", sampleTrace()))

	result, err := s.VerifyReplay(ctx, "r", sampleTrace())
	require.NoError(t, err)
	assert.True(t, result.Match)
	assert.Equal(t, -1, result.Divergence)
	assert.Equal(t, 4, result.StoredEvents)
	assert.Equal(t, 4, result.FreshEvents)
}

func TestVerifyReplay_UnknownRun(t *testing.T) {
	s := createTestStore(t)

	_, err := s.VerifyReplay(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestCompareTraces_Divergence(t *testing.T) {
	stored := sampleTrace()

	fresh := sampleTrace()
	fresh[2].State = "held"
	result := CompareTraces("r", stored, fresh)
	assert.False(t, result.Match)
	assert.Equal(t, 2, result.Divergence)
	require.NotNil(t, result.Stored)
	require.NotNil(t, result.Fresh)
	assert.Equal(t, "just_up", result.Stored.State)
	assert.Equal(t, "held", result.Fresh.State)

	fresh = sampleTrace()
	fresh[1].Analog = analog(0.5)
	result = CompareTraces("r", stored, fresh)
	assert.Equal(t, 1, result.Divergence)

	fresh = sampleTrace()
	fresh[1].Analog = nil
	result = CompareTraces("r", stored, fresh)
	assert.Equal(t, 1, result.Divergence)

	result = CompareTraces("r", stored, sampleTrace()[:3])
	assert.False(t, result.Match)
	assert.Equal(t, 3, result.Divergence)
	assert.NotNil(t, result.Stored)
	assert.Nil(t, result.Fresh)
}
