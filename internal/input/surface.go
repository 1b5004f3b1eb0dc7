package input

import "sort"

// Surface is the per-tick store of gathered input plus the read API.
//
// A Surface is created empty, swept at the start of every gather, and then
// written by exactly one provider for that tick. Readers only ever see the
// snapshot of the most recent gather.
//
// Thread-safety: none. A Surface belongs to one domain of one provider and is
// mutated only inside that provider's GatherInputs.
type Surface struct {
	digital map[string]Digital
	analog  map[string]float64
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{
		digital: make(map[string]Digital),
		analog:  make(map[string]float64),
	}
}

// Sweep removes everything published for the previous tick.
func (s *Surface) Sweep() {
	clear(s.digital)
	clear(s.analog)
}

// SetDigital merges state into the record for action.
// Publishing Absent is a no-op: absence is represented by no entry.
func (s *Surface) SetDigital(action string, state State) {
	if state == Absent {
		return
	}
	s.digital[action] = s.digital[action].With(state)
}

// SetDigitalRecord merges a whole record into the entry for action.
func (s *Surface) SetDigitalRecord(action string, d Digital) {
	if d.IsZero() {
		return
	}
	s.digital[action] = s.digital[action].Merge(d)
}

// SetAnalog stores the magnitude of an analog channel for this tick.
func (s *Surface) SetAnalog(action string, value float64) {
	s.analog[action] = value
}

// IsJustPressed reports whether action started being pressed this tick.
func (s *Surface) IsJustPressed(action string) bool {
	return s.digital[action].JustDown
}

// IsPressed reports whether action is pressed this tick, including the
// tick it went down.
func (s *Surface) IsPressed(action string) bool {
	return s.digital[action].Pressed()
}

// IsJustReleased reports whether action stopped being pressed this tick.
func (s *Surface) IsJustReleased(action string) bool {
	return s.digital[action].JustUp
}

// Analog returns the value of a channel, or 0 if nothing was gathered for it.
func (s *Surface) Analog(action string) float64 {
	return s.analog[action]
}

// ReadAxis1D returns Analog(axis.Positive) - Analog(axis.Negative).
func (s *Surface) ReadAxis1D(axis Axis1D) float64 {
	return s.Analog(axis.Positive) - s.Analog(axis.Negative)
}

// ReadAxis2D reads both components of a 2-D axis.
func (s *Surface) ReadAxis2D(axis Axis2D) Vec2 {
	return Vec2{X: s.ReadAxis1D(axis.X), Y: s.ReadAxis1D(axis.Y)}
}

// Observation is everything published for one name in one tick.
type Observation struct {
	Digital Digital `json:"digital"`
	Analog  float64 `json:"analog"`
	// HasAnalog distinguishes an explicit 0 from an absent channel.
	HasAnalog bool `json:"has_analog"`
}

// Observe returns the record and analog value published for action.
func (s *Surface) Observe(action string) Observation {
	v, ok := s.analog[action]
	return Observation{
		Digital:   s.digital[action],
		Analog:    v,
		HasAnalog: ok,
	}
}

// Actions returns every name with a digital or analog entry, sorted.
func (s *Surface) Actions() []string {
	seen := make(map[string]struct{}, len(s.digital)+len(s.analog))
	for name := range s.digital {
		seen[name] = struct{}{}
	}
	for name := range s.analog {
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mergeFrom folds another surface into s: digital records are OR-combined and
// analog channels keep the larger magnitude.
func (s *Surface) mergeFrom(o *Surface) {
	for name, d := range o.digital {
		s.SetDigitalRecord(name, d)
	}
	for name, v := range o.analog {
		cur, ok := s.analog[name]
		if !ok || abs(v) > abs(cur) {
			s.analog[name] = v
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
