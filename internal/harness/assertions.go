package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/tickinput/internal/trace"
)

// defaultTolerance is used by analog_at and axis_at when none is given.
const defaultTolerance = 1e-9

// AssertionError is returned when an assertion fails.
// It includes the events the assertion looked at.
type AssertionError struct {
	Type     string        // Assertion type for categorization
	Expected string        // Human-readable expected outcome
	Actual   string        // Human-readable actual outcome
	Events   []trace.Event // Events considered by the assertion
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Events) > 0 {
		fmt.Fprintf(&buf, "\nEvents:\n")
		for _, ev := range e.Events {
			if ev.Analog != nil {
				fmt.Fprintf(&buf, "  [%d] %s tick=%d %s %s analog=%g\n", ev.Seq, ev.Domain, ev.Tick, ev.Action, ev.State, *ev.Analog)
				continue
			}
			fmt.Fprintf(&buf, "  [%d] %s tick=%d %s %s\n", ev.Seq, ev.Domain, ev.Tick, ev.Action, ev.State)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion in the scenario against the
// result's trace and returns the failures in declaration order.
func EvaluateAssertions(scenario *Scenario, result *Result) []error {
	var errs []error
	for i, a := range scenario.Assertions {
		if err := evaluate(scenario, result, a); err != nil {
			errs = append(errs, fmt.Errorf("assertions[%d]: %w", i, err))
		}
	}
	return errs
}

func evaluate(scenario *Scenario, result *Result, a Assertion) error {
	switch a.Type {
	case AssertEdgeCount:
		return assertEdgeCount(result, a)
	case AssertStateSequence:
		return assertStateSequence(result, a)
	case AssertAnalogAt:
		return assertAnalogAt(result, a)
	case AssertAxisAt:
		return assertAxisAt(scenario, result, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

// assertEdgeCount counts events of an action in the given edge state.
func assertEdgeCount(result *Result, a Assertion) error {
	events := result.Events(a.Action, a.Domain)
	count := 0
	for _, ev := range events {
		if ev.State == a.Edge {
			count++
		}
	}
	if count == a.Count {
		return nil
	}

	where := "both domains"
	if a.Domain != "" {
		where = a.Domain
	}
	return &AssertionError{
		Type:     AssertEdgeCount,
		Expected: fmt.Sprintf("%d %s edges for %s in %s", a.Count, a.Edge, a.Action, where),
		Actual:   fmt.Sprintf("%d", count),
		Events:   events,
	}
}

// assertStateSequence compares the action's state at every gather of the
// domain with the expected list. Lengths must match.
func assertStateSequence(result *Result, a Assertion) error {
	events := result.Events(a.Action, a.Domain)
	got := make([]string, len(events))
	for i, ev := range events {
		got[i] = ev.State
	}

	if equalStrings(got, a.States) {
		return nil
	}
	return &AssertionError{
		Type:     AssertStateSequence,
		Expected: fmt.Sprintf("%s in %s: [%s]", a.Action, a.Domain, strings.Join(a.States, ", ")),
		Actual:   fmt.Sprintf("[%s]", strings.Join(got, ", ")),
		Events:   events,
	}
}

// assertAnalogAt checks a channel's value at one tick. A tick with no
// published value reads as 0.
func assertAnalogAt(result *Result, a Assertion) error {
	events := result.Events(a.Action, a.Domain)
	ev, ok := atTick(events, a.Tick)
	if !ok {
		return &AssertionError{
			Type:     AssertAnalogAt,
			Expected: fmt.Sprintf("%s in %s at tick %d", a.Action, a.Domain, a.Tick),
			Actual:   "tick not gathered",
			Events:   events,
		}
	}

	got := ev.AnalogValue()
	if withinTolerance(got, a.Value, a.Tolerance) {
		return nil
	}
	return &AssertionError{
		Type:     AssertAnalogAt,
		Expected: fmt.Sprintf("%s in %s at tick %d = %g", a.Action, a.Domain, a.Tick, a.Value),
		Actual:   fmt.Sprintf("%g", got),
		Events:   []trace.Event{ev},
	}
}

// assertAxisAt composes a 1-D axis from its two tracked channels at one
// tick. Both channels must be tracked.
func assertAxisAt(scenario *Scenario, result *Result, a Assertion) error {
	axis, ok := scenario.Axis1D(a.Axis)
	if !ok {
		return fmt.Errorf("axis %q is not defined", a.Axis)
	}

	neg, okNeg := atTick(result.Events(axis.Negative, a.Domain), a.Tick)
	pos, okPos := atTick(result.Events(axis.Positive, a.Domain), a.Tick)
	if !okNeg || !okPos {
		return &AssertionError{
			Type:     AssertAxisAt,
			Expected: fmt.Sprintf("channels %s and %s tracked in %s at tick %d", axis.Negative, axis.Positive, a.Domain, a.Tick),
			Actual:   "channel not recorded",
		}
	}

	got := pos.AnalogValue() - neg.AnalogValue()
	if withinTolerance(got, a.Value, a.Tolerance) {
		return nil
	}
	return &AssertionError{
		Type:     AssertAxisAt,
		Expected: fmt.Sprintf("axis %s in %s at tick %d = %g", a.Axis, a.Domain, a.Tick, a.Value),
		Actual:   fmt.Sprintf("%g", got),
		Events:   []trace.Event{neg, pos},
	}
}

func atTick(events []trace.Event, tick uint64) (trace.Event, bool) {
	for _, ev := range events {
		if ev.Tick == tick {
			return ev, true
		}
	}
	return trace.Event{}, false
}

func withinTolerance(got, want, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	return math.Abs(got-want) <= tolerance
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
