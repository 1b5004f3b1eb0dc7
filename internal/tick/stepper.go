package tick

import "time"

// Stepper is a fixed-step accumulator.
type Stepper struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
	dropped  uint64
}

// NewStepper creates a stepper that emits one step per step of accumulated
// time and at most maxSteps per Advance. maxSteps <= 0 disables the cap.
func NewStepper(step time.Duration, maxSteps int) *Stepper {
	if step <= 0 {
		step = time.Second / 50
	}
	return &Stepper{step: step, maxSteps: maxSteps}
}

// Advance adds dt to the accumulator and returns the number of steps due.
//
// When more than maxSteps are due, maxSteps are returned, the excess is
// counted in Dropped, and only the sub-step remainder is kept.
func (s *Stepper) Advance(dt time.Duration) int {
	if dt > 0 {
		s.acc += dt
	}

	n := int(s.acc / s.step)
	if s.maxSteps > 0 && n > s.maxSteps {
		s.dropped += uint64(n - s.maxSteps)
		s.acc %= s.step
		return s.maxSteps
	}
	s.acc -= time.Duration(n) * s.step
	return n
}

// Alpha is the fraction of a step currently accumulated, in [0, 1).
// Renderers use it to interpolate between the last two simulation states.
func (s *Stepper) Alpha() float64 {
	return float64(s.acc) / float64(s.step)
}

// Dropped returns the total number of steps discarded by the catch-up cap.
func (s *Stepper) Dropped() uint64 {
	return s.dropped
}

// Step returns the fixed step length.
func (s *Stepper) Step() time.Duration {
	return s.step
}
