package sim

import (
	"io"
	"log/slog"

	"github.com/roach88/tickinput/internal/input"
)

// AxisMode controls how a negative axis value is written into the negative
// channel of an Axis1D.
type AxisMode int

const (
	// AxisMagnitude stores the magnitude of a negative value in the negative
	// channel, so ReadAxis1D returns the value that was scheduled.
	AxisMagnitude AxisMode = iota

	// AxisRaw stores the signed value unchanged in the negative channel.
	// ReadAxis1D then returns the absolute value of a negative input.
	AxisRaw
)

// String returns the name used in scenario files.
func (m AxisMode) String() string {
	if m == AxisRaw {
		return "raw"
	}
	return "magnitude"
}

// Source is the simulated input provider.
//
// Producers (NPC controllers, replays, tests) schedule input through the
// Schedule* methods; consumers read through Surface(d) or input.In(src, d).
//
// Thread-safety: none. Scheduling and gathering must happen on the goroutine
// that owns the tick loop.
type Source struct {
	states   [input.DomainCount]*domainState
	surfaces [input.DomainCount]*input.Surface
	axisMode AxisMode
	logger   *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger used for scheduling diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAxisMode sets how negative axis values are stored.
//
// Default: AxisMagnitude.
func WithAxisMode(m AxisMode) Option {
	return func(s *Source) {
		s.axisMode = m
	}
}

// New creates an empty simulated source.
func New(opts ...Option) *Source {
	s := &Source{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for i := range s.states {
		s.states[i] = newDomainState()
		s.surfaces[i] = input.NewSurface()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GatherInputs advances domain d by one tick and publishes the result.
func (s *Source) GatherInputs(d input.Domain) error {
	if err := input.CheckDomain(d); err != nil {
		return err
	}

	st := s.states[d]
	surface := s.surfaces[d]

	surface.Sweep()
	st.age()

	tick := st.clock.Next()
	if snap, ok := st.queue.pop(); ok {
		changed := st.apply(snap)
		s.logger.Debug("applied queued snapshot",
			"domain", d.String(),
			"tick", tick,
			"requests", len(snap),
			"changed", changed,
			"pending", st.queue.Len(),
		)
	}

	for name, state := range st.digital {
		surface.SetDigital(name, state)
	}
	for name, v := range st.analog {
		surface.SetAnalog(name, v)
	}
	clear(st.analog)

	return nil
}

// Surface returns the published snapshot for d, or nil if d is invalid.
func (s *Source) Surface(d input.Domain) *input.Surface {
	if !d.Valid() {
		return nil
	}
	return s.surfaces[d]
}

// ScheduleOneShot presses action on the next free tick and releases it on
// the tick after, in both domains.
func (s *Source) ScheduleOneShot(action string) error {
	return s.ScheduleOneShotIn(action, input.Domains()...)
}

// ScheduleOneShotIn is ScheduleOneShot restricted to the given domains.
func (s *Source) ScheduleOneShotIn(action string, domains ...input.Domain) error {
	return s.schedule(domains, kindDigital, []string{action}, func(st *domainState) {
		slot := st.queue.place(action, true, 0)
		st.queue.place(action, false, slot+1)
	})
}

// ScheduleLevel requests that action be pressed or released, applied on the
// next free tick, in both domains.
func (s *Source) ScheduleLevel(action string, pressed bool) error {
	return s.ScheduleLevelIn(action, pressed, input.Domains()...)
}

// ScheduleLevelIn is ScheduleLevel restricted to the given domains.
func (s *Source) ScheduleLevelIn(action string, pressed bool, domains ...input.Domain) error {
	return s.schedule(domains, kindDigital, []string{action}, func(st *domainState) {
		st.queue.place(action, pressed, 0)
	})
}

// ScheduleAnalog sets the value of an analog channel for the next gather in
// both domains. The value is not carried forward: it reads as 0 on every
// later tick unless scheduled again.
func (s *Source) ScheduleAnalog(action string, value float64) error {
	return s.ScheduleAnalogIn(action, value, input.Domains()...)
}

// ScheduleAnalogIn is ScheduleAnalog restricted to the given domains.
func (s *Source) ScheduleAnalogIn(action string, value float64, domains ...input.Domain) error {
	return s.schedule(domains, kindAnalog, []string{action}, func(st *domainState) {
		st.analog[action] = value
	})
}

// ScheduleAxis1D decomposes a signed value into writes on the axis's two
// channels for the next gather in both domains.
func (s *Source) ScheduleAxis1D(axis input.Axis1D, value float64) error {
	return s.ScheduleAxis1DIn(axis, value, input.Domains()...)
}

// ScheduleAxis1DIn is ScheduleAxis1D restricted to the given domains.
func (s *Source) ScheduleAxis1DIn(axis input.Axis1D, value float64, domains ...input.Domain) error {
	pos, neg := s.splitAxis(value)
	return s.schedule(domains, kindAnalog, []string{axis.Positive, axis.Negative}, func(st *domainState) {
		st.analog[axis.Positive] = pos
		st.analog[axis.Negative] = neg
	})
}

// ScheduleAxis2D schedules both components of a 2-D axis in both domains.
func (s *Source) ScheduleAxis2D(axis input.Axis2D, value input.Vec2) error {
	return s.ScheduleAxis2DIn(axis, value, input.Domains()...)
}

// ScheduleAxis2DIn is ScheduleAxis2D restricted to the given domains.
func (s *Source) ScheduleAxis2DIn(axis input.Axis2D, value input.Vec2, domains ...input.Domain) error {
	xPos, xNeg := s.splitAxis(value.X)
	yPos, yNeg := s.splitAxis(value.Y)
	names := []string{axis.X.Positive, axis.X.Negative, axis.Y.Positive, axis.Y.Negative}
	return s.schedule(domains, kindAnalog, names, func(st *domainState) {
		st.analog[axis.X.Positive] = xPos
		st.analog[axis.X.Negative] = xNeg
		st.analog[axis.Y.Positive] = yPos
		st.analog[axis.Y.Negative] = yNeg
	})
}

// splitAxis returns the (positive, negative) channel values for v.
func (s *Source) splitAxis(v float64) (float64, float64) {
	if v > 0 {
		return v, 0
	}
	if s.axisMode == AxisRaw {
		return 0, v
	}
	return 0, -v
}

// schedule validates every name against every target domain, then runs
// write on each domain. Nothing is mutated if any check fails.
func (s *Source) schedule(domains []input.Domain, k kind, names []string, write func(*domainState)) error {
	for _, d := range domains {
		if err := input.CheckDomain(d); err != nil {
			s.logger.Warn("schedule rejected", "error", err)
			return err
		}
	}
	for _, name := range names {
		if name == "" {
			err := input.NewEmptyActionError()
			s.logger.Warn("schedule rejected", "error", err)
			return err
		}
		for _, d := range domains {
			if existing, clash := s.states[d].conflicts(name, k); clash {
				err := input.NewKindCollisionError(name, d, existing.String(), k.String())
				s.logger.Warn("schedule rejected", "error", err)
				return err
			}
		}
	}

	for _, d := range domains {
		st := s.states[d]
		for _, name := range names {
			st.kinds[name] = k
		}
		write(st)
	}
	return nil
}

// Pending returns the number of queued snapshots for d.
func (s *Source) Pending(d input.Domain) int {
	if !d.Valid() {
		return 0
	}
	return s.states[d].queue.Len()
}

// Tick returns the number of gathers performed in d.
func (s *Source) Tick(d input.Domain) uint64 {
	if !d.Valid() {
		return 0
	}
	return s.states[d].clock.Current()
}

// Reset discards all tracked state, queued requests, pending analog values,
// name registrations and published snapshots in both domains.
func (s *Source) Reset() {
	for i := range s.states {
		s.states[i] = newDomainState()
		s.surfaces[i].Sweep()
	}
}

var _ input.Provider = (*Source)(nil)
