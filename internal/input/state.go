package input

import "fmt"

// State is the digital lifecycle of one action.
//
// An action moves Absent → JustDown → Held → JustUp → Absent. The edge
// states (JustDown, JustUp) are each visible for exactly one tick.
type State int

const (
	// Absent means the action is not tracked this tick.
	Absent State = iota
	// JustDown marks the first tick of a press.
	JustDown
	// Held marks every steady tick of a press after the first.
	Held
	// JustUp marks the single tick on which a press ends.
	JustUp
)

// String returns the snake_case name used in scenario files and traces.
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case JustDown:
		return "just_down"
	case Held:
		return "held"
	case JustUp:
		return "just_up"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Pressed reports whether the state counts as logically pressed.
func (s State) Pressed() bool {
	return s == JustDown || s == Held
}

// ParseState converts a snake_case state name into a State.
func ParseState(s string) (State, error) {
	switch s {
	case "absent", "none", "":
		return Absent, nil
	case "just_down":
		return JustDown, nil
	case "held":
		return Held, nil
	case "just_up":
		return JustUp, nil
	default:
		return Absent, fmt.Errorf("unknown digital state %q", s)
	}
}

// Digital is the record published for one action in one tick.
//
// A live backend may report a press edge and a steady hold for the same
// action in one tick, so the record keeps one boolean per state rather than
// a single State.
type Digital struct {
	JustDown bool `json:"just_down,omitempty"`
	Held     bool `json:"held,omitempty"`
	JustUp   bool `json:"just_up,omitempty"`
}

// With returns d with s merged in. Merging Absent returns d unchanged.
func (d Digital) With(s State) Digital {
	switch s {
	case JustDown:
		d.JustDown = true
	case Held:
		d.Held = true
	case JustUp:
		d.JustUp = true
	}
	return d
}

// Merge returns the union of two records.
func (d Digital) Merge(o Digital) Digital {
	return Digital{
		JustDown: d.JustDown || o.JustDown,
		Held:     d.Held || o.Held,
		JustUp:   d.JustUp || o.JustUp,
	}
}

// IsZero reports whether no flag is set.
func (d Digital) IsZero() bool {
	return !d.JustDown && !d.Held && !d.JustUp
}

// Pressed reports whether the action is just-down or held.
func (d Digital) Pressed() bool {
	return d.JustDown || d.Held
}

// State collapses the record into the dominant lifecycle state.
// A release edge wins over a press so that a tap completed within one tick
// is still reported as ending.
func (d Digital) State() State {
	switch {
	case d.JustUp:
		return JustUp
	case d.JustDown:
		return JustDown
	case d.Held:
		return Held
	default:
		return Absent
	}
}
