package live

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/tickinput/internal/binding"
	"github.com/roach88/tickinput/internal/input"
)

// Backend is a source of raw physical input levels.
type Backend interface {
	// Poll samples the device. It is called once per presentation gather,
	// before any level is read for that frame.
	Poll(now time.Time)

	// Pressed reports whether the trigger is currently down.
	Pressed(t binding.Trigger) bool

	// Strength reports the analog strength of the trigger in [0, 1].
	Strength(t binding.Trigger) float64
}

// MotionProducer is implemented by backends that report relative pointer
// motion. Source registers its AddMotion as the sink.
type MotionProducer interface {
	SetMotionSink(func(dx, dy float64))
}

// Source is the live input provider.
//
// Thread-safety: none. AddMotion, Poll and GatherInputs run on the
// goroutine that owns the tick loop. Backends that receive events on another
// goroutine must synchronise internally.
type Source struct {
	bindings *binding.Bindings
	backend  Backend
	now      func() time.Time
	logger   *slog.Logger

	surfaces [input.DomainCount]*input.Surface
	prev     [input.DomainCount]map[string]bool
	motion   [input.DomainCount]input.Vec2
	ticks    [input.DomainCount]uint64
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger used for gather diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the time function passed to Backend.Poll.
//
// Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a live source reading b's triggers from backend.
// The bindings are validated and must not be modified afterwards.
func New(b *binding.Bindings, backend Backend, opts ...Option) (*Source, error) {
	if b == nil {
		return nil, fmt.Errorf("live source: bindings are required")
	}
	if backend == nil {
		return nil, fmt.Errorf("live source: backend is required")
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("live source: %w", err)
	}

	s := &Source{
		bindings: b,
		backend:  backend,
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for i := range s.surfaces {
		s.surfaces[i] = input.NewSurface()
		s.prev[i] = make(map[string]bool, len(b.Actions))
	}
	for _, opt := range opts {
		opt(s)
	}

	if mp, ok := backend.(MotionProducer); ok {
		mp.SetMotionSink(s.AddMotion)
	}
	return s, nil
}

// AddMotion records relative pointer motion. The motion is added to both
// domains; each domain clears its own share when it gathers.
func (s *Source) AddMotion(dx, dy float64) {
	for i := range s.motion {
		s.motion[i].X += dx
		s.motion[i].Y += dy
	}
}

// GatherInputs samples the backend and publishes domain d.
// A presentation gather polls the backend first.
func (s *Source) GatherInputs(d input.Domain) error {
	if err := input.CheckDomain(d); err != nil {
		return err
	}
	if d == input.Presentation {
		s.backend.Poll(s.now())
	}

	surface := s.surfaces[d]
	prev := s.prev[d]
	surface.Sweep()
	s.ticks[d]++

	edges := 0
	for name, trig := range s.bindings.Actions {
		now := s.backend.Pressed(trig)
		state := Edge(prev[name], now)
		surface.SetDigital(name, state)
		if state == input.JustDown || state == input.JustUp {
			edges++
		}
		if now {
			prev[name] = true
		} else {
			delete(prev, name)
		}
	}

	for name, trig := range s.bindings.Analogs {
		surface.SetAnalog(name, s.backend.Strength(trig))
	}

	m := s.motion[d]
	s.motion[d] = input.Vec2{}
	for _, mouse := range s.bindings.Mice {
		surface.SetAnalog(mouse.Up, positive(-m.Y)*mouse.Scale)
		surface.SetAnalog(mouse.Down, positive(m.Y)*mouse.Scale)
		surface.SetAnalog(mouse.Left, positive(-m.X)*mouse.Scale)
		surface.SetAnalog(mouse.Right, positive(m.X)*mouse.Scale)
	}

	if edges > 0 {
		s.logger.Debug("gathered live input",
			"domain", d.String(),
			"tick", s.ticks[d],
			"edges", edges,
		)
	}
	return nil
}

// Surface returns the published snapshot for d, or nil if d is invalid.
func (s *Source) Surface(d input.Domain) *input.Surface {
	if !d.Valid() {
		return nil
	}
	return s.surfaces[d]
}

// Tick returns the number of gathers performed in d.
func (s *Source) Tick(d input.Domain) uint64 {
	if !d.Valid() {
		return 0
	}
	return s.ticks[d]
}

// Edge derives the digital state from the level seen at the previous gather
// and the level seen now.
//
//	was  now
//	 0    0   Absent
//	 0    1   JustDown
//	 1    1   Held
//	 1    0   JustUp
func Edge(was, now bool) input.State {
	switch {
	case now && !was:
		return input.JustDown
	case now:
		return input.Held
	case was:
		return input.JustUp
	default:
		return input.Absent
	}
}

func positive(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

var _ input.Provider = (*Source)(nil)
