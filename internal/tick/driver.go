package tick

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/tickinput/internal/input"
)

// FrameFunc is called after each presentation gather.
type FrameFunc func(q input.Query, dt time.Duration) error

// StepFunc is called after each simulation gather. step counts from 1.
type StepFunc func(q input.Query, step uint64) error

// Driver gathers a provider's two domains in frame order.
//
// Thread-safety: none. Frame and Run must not be called concurrently.
type Driver struct {
	provider input.Provider
	stepper  *Stepper
	cfg      Config
	onFrame  FrameFunc
	onStep   StepFunc
	logger   *slog.Logger
	now      func() time.Time

	frames uint64
	steps  uint64
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the driver logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// OnFrame sets the per-frame callback.
func OnFrame(fn FrameFunc) Option {
	return func(d *Driver) { d.onFrame = fn }
}

// OnStep sets the per-step callback.
func OnStep(fn StepFunc) Option {
	return func(d *Driver) { d.onStep = fn }
}

// WithNow sets the time source used by Run to measure frame time.
func WithNow(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDriver creates a driver for p. cfg must be valid.
func NewDriver(p input.Provider, cfg Config, opts ...Option) (*Driver, error) {
	if p == nil {
		return nil, fmt.Errorf("tick driver: provider is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tick driver: %w", err)
	}

	d := &Driver{
		provider: p,
		stepper:  NewStepper(cfg.StepInterval(), cfg.MaxCatchUp),
		cfg:      cfg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Frame runs one frame of dt wall time and returns the number of simulation
// steps it ran.
func (d *Driver) Frame(dt time.Duration) (int, error) {
	if err := d.provider.GatherInputs(input.Presentation); err != nil {
		return 0, fmt.Errorf("gather presentation: %w", err)
	}
	d.frames++
	if d.onFrame != nil {
		if err := d.onFrame(input.In(d.provider, input.Presentation), dt); err != nil {
			return 0, err
		}
	}

	before := d.stepper.Dropped()
	n := d.stepper.Advance(dt)
	if dropped := d.stepper.Dropped() - before; dropped > 0 {
		d.logger.Warn("dropped simulation steps",
			"frame", d.frames,
			"dropped", dropped,
			"max_catch_up", d.cfg.MaxCatchUp,
		)
	}

	for i := 0; i < n; i++ {
		if err := d.provider.GatherInputs(input.Simulation); err != nil {
			return i, fmt.Errorf("gather simulation: %w", err)
		}
		d.steps++
		if d.onStep != nil {
			if err := d.onStep(input.In(d.provider, input.Simulation), d.steps); err != nil {
				return i + 1, err
			}
		}
	}
	return n, nil
}

// Run calls Frame at the configured frame rate until ctx is done or a
// callback fails. Returns nil when ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.cfg.FrameInterval())
	defer ticker.Stop()

	d.logger.Info("tick driver started",
		"frame_rate", d.cfg.FrameRate,
		"sim_rate", d.cfg.SimRate,
	)

	last := d.now()
	for {
		if ctx.Err() != nil {
			d.logger.Info("tick driver stopped", "frames", d.frames, "steps", d.steps)
			return nil
		}
		select {
		case <-ctx.Done():
		case <-ticker.C:
			now := d.now()
			dt := now.Sub(last)
			last = now
			if _, err := d.Frame(dt); err != nil {
				return err
			}
		}
	}
}

// Frames returns the number of frames run.
func (d *Driver) Frames() uint64 { return d.frames }

// Steps returns the number of simulation steps run.
func (d *Driver) Steps() uint64 { return d.steps }

// Alpha returns the stepper's interpolation fraction.
func (d *Driver) Alpha() float64 { return d.stepper.Alpha() }
