package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tickinput/internal/trace"
)

func f64(v float64) *float64 { return &v }

func fixtureResult() *Result {
	r := NewResult()
	r.Trace = []trace.Event{
		{Seq: 1, Tick: 1, Domain: "simulation", Action: "fire", State: "just_down"},
		{Seq: 2, Tick: 1, Domain: "simulation", Action: "left", State: "absent", Analog: f64(0)},
		{Seq: 3, Tick: 1, Domain: "simulation", Action: "right", State: "absent", Analog: f64(0.5)},
		{Seq: 4, Tick: 2, Domain: "simulation", Action: "fire", State: "just_up"},
		{Seq: 5, Tick: 2, Domain: "simulation", Action: "left", State: "absent"},
		{Seq: 6, Tick: 2, Domain: "simulation", Action: "right", State: "absent"},
		{Seq: 7, Tick: 1, Domain: "presentation", Action: "fire", State: "just_down"},
	}
	return r
}

func fixtureScenario(assertions ...Assertion) *Scenario {
	return &Scenario{
		Name:       "fixture",
		Axes:       map[string]AxisDef{"strafe": {Negative: "left", Positive: "right"}},
		Assertions: assertions,
	}
}

func TestEvaluateAssertions_Pass(t *testing.T) {
	s := fixtureScenario(
		Assertion{Type: AssertEdgeCount, Action: "fire", Edge: "just_down", Count: 2},
		Assertion{Type: AssertEdgeCount, Action: "fire", Domain: "simulation", Edge: "just_up", Count: 1},
		Assertion{Type: AssertStateSequence, Action: "fire", Domain: "simulation", States: []string{"just_down", "just_up"}},
		Assertion{Type: AssertAnalogAt, Action: "right", Domain: "simulation", Tick: 1, Value: 0.5},
		Assertion{Type: AssertAnalogAt, Action: "right", Domain: "simulation", Tick: 2, Value: 0},
		Assertion{Type: AssertAxisAt, Axis: "strafe", Domain: "simulation", Tick: 1, Value: 0.5},
		Assertion{Type: AssertAxisAt, Axis: "strafe", Domain: "simulation", Tick: 2, Value: 0},
	)

	assert.Empty(t, EvaluateAssertions(s, fixtureResult()))
}

func TestEvaluateAssertions_Failures(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		actual    string
	}{
		{
			name:      "edge count",
			assertion: Assertion{Type: AssertEdgeCount, Action: "fire", Domain: "presentation", Edge: "just_up", Count: 1},
			actual:    "0",
		},
		{
			name:      "state sequence too short",
			assertion: Assertion{Type: AssertStateSequence, Action: "fire", Domain: "simulation", States: []string{"just_down", "just_up", "absent"}},
			actual:    "[just_down, just_up]",
		},
		{
			name:      "analog value",
			assertion: Assertion{Type: AssertAnalogAt, Action: "right", Domain: "simulation", Tick: 1, Value: 1},
			actual:    "0.5",
		},
		{
			name:      "analog tick not gathered",
			assertion: Assertion{Type: AssertAnalogAt, Action: "right", Domain: "simulation", Tick: 9},
			actual:    "tick not gathered",
		},
		{
			name:      "axis value",
			assertion: Assertion{Type: AssertAxisAt, Axis: "strafe", Domain: "simulation", Tick: 1, Value: -0.5},
			actual:    "0.5",
		},
		{
			name:      "axis channels not tracked",
			assertion: Assertion{Type: AssertAxisAt, Axis: "strafe", Domain: "presentation", Tick: 1},
			actual:    "channel not recorded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(fixtureScenario(tt.assertion), fixtureResult())
			require.Len(t, errs, 1)

			var ae *AssertionError
			require.True(t, errors.As(errs[0], &ae))
			assert.Equal(t, tt.assertion.Type, ae.Type)
			assert.Equal(t, tt.actual, ae.Actual)
			assert.Contains(t, errs[0].Error(), "assertions[0]")
		})
	}
}

func TestEvaluateAssertions_Tolerance(t *testing.T) {
	s := fixtureScenario(
		Assertion{Type: AssertAnalogAt, Action: "right", Domain: "simulation", Tick: 1, Value: 0.49, Tolerance: 0.02},
	)
	assert.Empty(t, EvaluateAssertions(s, fixtureResult()))
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertAnalogAt,
		Expected: "right in simulation at tick 1 = 1",
		Actual:   "0.5",
		Events: []trace.Event{
			{Seq: 3, Tick: 1, Domain: "simulation", Action: "right", State: "absent", Analog: f64(0.5)},
			{Seq: 4, Tick: 2, Domain: "simulation", Action: "fire", State: "just_up"},
		},
	}

	want := "Assertion failed: analog_at\n" +
		"  Expected: right in simulation at tick 1 = 1\n" +
		"  Actual: 0.5\n" +
		"\nEvents:\n" +
		"  [3] simulation tick=1 right absent analog=0.5\n" +
		"  [4] simulation tick=2 fire just_up\n"
	assert.Equal(t, want, err.Error())
}
