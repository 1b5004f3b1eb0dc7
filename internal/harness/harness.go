package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/tickinput/internal/input"
	"github.com/roach88/tickinput/internal/sim"
	"github.com/roach88/tickinput/internal/testutil"
	"github.com/roach88/tickinput/internal/trace"
)

// Option configures a run.
type Option func(*runner)

// WithLogger sets the logger passed to the simulated source.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

type runner struct {
	scenario *Scenario
	src      *sim.Source
	seq      *testutil.Sequence
	logger   *slog.Logger
	tracked  []string
	result   *Result
}

// Run executes a scenario against a fresh simulated source.
//
// Execution is deterministic: the source is built from the scenario alone
// and events are numbered by a logical sequence, so identical scenarios
// produce identical traces.
//
// Returns an error only if a schedule call or gather fails without an
// expect_error that anticipates it. Assertion failures are reported in
// the result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	r := &runner{
		scenario: scenario,
		seq:      testutil.NewSequence(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracked:  scenario.Tracked(),
		result:   NewResult(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.src = sim.New(sim.WithAxisMode(scenario.Mode()), sim.WithLogger(r.logger))

	for i, step := range scenario.Steps {
		if err := r.runStep(i, step); err != nil {
			return nil, err
		}
	}

	for _, err := range EvaluateAssertions(scenario, r.result) {
		r.result.AddError(err.Error())
	}

	return r.result, nil
}

func (r *runner) runStep(index int, step Step) error {
	for j, op := range step.Schedule {
		err := r.apply(op)
		if op.ExpectError != "" {
			if msg := checkExpectedError(op.ExpectError, err); msg != "" {
				r.result.AddError(fmt.Sprintf("steps[%d].schedule[%d]: %s", index, j, msg))
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("steps[%d].schedule[%d] (%s): %w", index, j, op.Op, err)
		}
	}

	repeat := step.Repeat
	if repeat == 0 {
		repeat = 1
	}
	if len(step.Gather) == 0 {
		repeat = 0
	}
	for k := 0; k < repeat; k++ {
		for _, name := range step.Gather {
			d, err := input.ParseDomain(name)
			if err != nil {
				return fmt.Errorf("steps[%d].gather: %w", index, err)
			}
			if err := r.gather(d); err != nil {
				return fmt.Errorf("steps[%d].gather %s: %w", index, d, err)
			}
		}
	}

	r.logger.Debug("step completed",
		"scenario", r.scenario.Name,
		"step", index,
		"events", len(r.result.Trace))
	return nil
}

func (r *runner) gather(d input.Domain) error {
	if err := r.src.GatherInputs(d); err != nil {
		return err
	}
	surface := r.src.Surface(d)
	tick := r.src.Tick(d)
	for _, name := range r.tracked {
		ev := trace.FromObservation(r.seq.Next(), tick, d, name, surface.Observe(name))
		r.result.Trace = append(r.result.Trace, ev)
	}
	return nil
}

func (r *runner) apply(op Op) error {
	domains := make([]input.Domain, 0, len(op.Domains))
	for _, name := range op.Domains {
		d, err := input.ParseDomain(name)
		if err != nil {
			return err
		}
		domains = append(domains, d)
	}
	if len(domains) == 0 {
		domains = input.Domains()
	}

	switch op.Op {
	case OpOneShot:
		return r.src.ScheduleOneShotIn(op.Action, domains...)
	case OpPress:
		return r.src.ScheduleLevelIn(op.Action, true, domains...)
	case OpRelease:
		return r.src.ScheduleLevelIn(op.Action, false, domains...)
	case OpAnalog:
		return r.src.ScheduleAnalogIn(op.Action, op.Value, domains...)
	case OpAxis1D:
		axis, ok := r.scenario.Axis1D(op.Axis)
		if !ok {
			return fmt.Errorf("axis %q is not defined", op.Axis)
		}
		return r.src.ScheduleAxis1DIn(axis, op.Value, domains...)
	case OpAxis2D:
		stick, ok := r.scenario.Axis2D(op.Axis)
		if !ok {
			return fmt.Errorf("stick %q is not defined", op.Axis)
		}
		return r.src.ScheduleAxis2DIn(stick, input.Vec2{X: op.X, Y: op.Y}, domains...)
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}

// checkExpectedError returns a failure message, or "" if err carries code.
func checkExpectedError(code string, err error) string {
	if err == nil {
		return fmt.Sprintf("expected error %s, call succeeded", code)
	}
	var ie *input.Error
	if !errors.As(err, &ie) {
		return fmt.Sprintf("expected error %s, got %v", code, err)
	}
	if string(ie.Code) != code {
		return fmt.Sprintf("expected error %s, got %s", code, ie.Code)
	}
	return ""
}
