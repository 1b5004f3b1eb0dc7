package sim

import "github.com/roach88/tickinput/internal/input"

// Age advances a tracked state by one tick before any request is applied.
//
//	JustDown → Held
//	Held     → Held
//	JustUp   → Absent (the entry is removed)
func Age(s input.State) input.State {
	switch s {
	case input.JustDown:
		return input.Held
	case input.Held:
		return input.Held
	default:
		return input.Absent
	}
}

// Reconcile applies one desired raw level to an aged state.
//
//	Absent        + press   → JustDown
//	JustDown|Held + release → JustUp
//	Absent        + release → Absent
//	JustDown|Held + press   → unchanged
//
// Aging runs first, so in practice the pressed states seen here are Held.
func Reconcile(s input.State, wantPressed bool) input.State {
	switch {
	case s.Pressed() && !wantPressed:
		return input.JustUp
	case s.Pressed():
		return s
	case wantPressed:
		return input.JustDown
	default:
		return input.Absent
	}
}
