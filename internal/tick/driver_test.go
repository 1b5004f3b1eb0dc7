package tick

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickinput/internal/input"
	"github.com/roach88/tickinput/internal/sim"
	"github.com/roach88/tickinput/internal/testutil"
)

// recordingProvider records the order of gathers.
type recordingProvider struct {
	gathers  []input.Domain
	surfaces [input.DomainCount]*input.Surface
	failOn   input.Domain
	fail     bool
}

func newRecordingProvider() *recordingProvider {
	p := &recordingProvider{}
	for i := range p.surfaces {
		p.surfaces[i] = input.NewSurface()
	}
	return p
}

func (p *recordingProvider) GatherInputs(d input.Domain) error {
	if p.fail && d == p.failOn {
		return errors.New("device unplugged")
	}
	p.gathers = append(p.gathers, d)
	return nil
}

func (p *recordingProvider) Surface(d input.Domain) *input.Surface {
	return p.surfaces[d]
}

var testConfig = Config{FrameRate: 60, SimRate: 50, MaxCatchUp: 5}

func TestNewDriver_Validates(t *testing.T) {
	_, err := NewDriver(nil, testConfig)
	assert.Error(t, err)

	_, err = NewDriver(newRecordingProvider(), Config{})
	assert.Error(t, err)
}

func TestDriver_FrameGathersPresentationThenSimulation(t *testing.T) {
	p := newRecordingProvider()
	d, err := NewDriver(p, testConfig)
	require.NoError(t, err)

	n, err := d.Frame(40 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []input.Domain{input.Presentation, input.Simulation, input.Simulation}, p.gathers)

	n, err = d.Frame(10 * time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.Equal(t, uint64(2), d.Frames())
	assert.Equal(t, uint64(2), d.Steps())
	assert.InDelta(t, 0.5, d.Alpha(), 1e-9)
}

func TestDriver_CallbacksSeeTheirDomain(t *testing.T) {
	src := sim.New()
	require.NoError(t, src.ScheduleOneShotIn("fire", input.Simulation))
	require.NoError(t, src.ScheduleLevelIn("menu", true, input.Presentation))

	var frameSaw, stepSaw []bool
	d, err := NewDriver(src, testConfig,
		OnFrame(func(q input.Query, dt time.Duration) error {
			frameSaw = append(frameSaw, q.IsJustPressed("menu"), q.IsPressed("fire"))
			return nil
		}),
		OnStep(func(q input.Query, step uint64) error {
			stepSaw = append(stepSaw, q.IsJustPressed("fire"))
			return nil
		}),
	)
	require.NoError(t, err)

	_, err = d.Frame(40 * time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false}, frameSaw)
	assert.Equal(t, []bool{true, false}, stepSaw)
}

func TestDriver_LogsDroppedSteps(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	p := newRecordingProvider()
	d, err := NewDriver(p, testConfig, WithLogger(logger))
	require.NoError(t, err)

	n, err := d.Frame(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Contains(t, buf.String(), "dropped simulation steps")
	assert.Contains(t, buf.String(), "dropped=45")
}

func TestDriver_GatherErrorStopsFrame(t *testing.T) {
	p := newRecordingProvider()
	p.fail = true
	p.failOn = input.Simulation

	d, err := NewDriver(p, testConfig)
	require.NoError(t, err)

	n, err := d.Frame(40 * time.Millisecond)
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Contains(t, err.Error(), "gather simulation")
}

func TestDriver_CallbackErrorStopsFrame(t *testing.T) {
	stop := errors.New("game over")
	d, err := NewDriver(newRecordingProvider(), testConfig,
		OnStep(func(input.Query, uint64) error { return stop }),
	)
	require.NoError(t, err)

	n, err := d.Frame(40 * time.Millisecond)
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, n)
}

func TestDriver_RunUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := Config{FrameRate: 1000, SimRate: 1000, MaxCatchUp: 5}
	d, err := NewDriver(newRecordingProvider(), cfg,
		OnFrame(func(q input.Query, dt time.Duration) error {
			return nil
		}),
	)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Positive(t, d.Frames())
}

func TestDriver_RunReturnsCallbackError(t *testing.T) {
	stop := errors.New("quit")
	cfg := Config{FrameRate: 1000, SimRate: 50, MaxCatchUp: 5}
	d, err := NewDriver(newRecordingProvider(), cfg,
		OnFrame(func(input.Query, time.Duration) error { return stop }),
	)
	require.NoError(t, err)

	err = d.Run(context.Background())
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, uint64(1), d.Frames())
}

func TestDriver_RunMeasuresFramesWithClock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := testutil.NewManualClock()
	cfg := Config{FrameRate: 1000, SimRate: 50, MaxCatchUp: 5}

	var dts []time.Duration
	d, err := NewDriver(newRecordingProvider(), cfg,
		WithNow(clock.Now),
		OnFrame(func(q input.Query, dt time.Duration) error {
			dts = append(dts, dt)
			clock.Advance(20 * time.Millisecond)
			if len(dts) == 3 {
				cancel()
			}
			return nil
		}),
	)
	require.NoError(t, err)

	require.NoError(t, d.Run(ctx))
	assert.Equal(t, []time.Duration{0, 20 * time.Millisecond, 20 * time.Millisecond}, dts)
	assert.Equal(t, uint64(3), d.Frames())
	assert.Equal(t, uint64(2), d.Steps())
}
