package harness

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tickinput/internal/input"
	"github.com/roach88/tickinput/internal/sim"
)

// Scenario is a scripted sequence of schedule calls and gathers.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario demonstrates.
	Description string `yaml:"description"`

	// AxisMode is "magnitude" (default) or "raw".
	AxisMode string `yaml:"axis_mode,omitempty"`

	// Track lists the names recorded after every gather.
	// If empty, every action and channel used by the steps is tracked.
	Track []string `yaml:"track,omitempty"`

	// Axes names 1-D axes for axis1d operations and axis_at assertions.
	Axes map[string]AxisDef `yaml:"axes,omitempty"`

	// Sticks names 2-D axes built from two entries of Axes.
	Sticks map[string]StickDef `yaml:"sticks,omitempty"`

	Steps      []Step      `yaml:"steps"`
	Assertions []Assertion `yaml:"assertions"`
}

// AxisDef names the two channels of a 1-D axis.
type AxisDef struct {
	Negative string `yaml:"negative"`
	Positive string `yaml:"positive"`
}

// StickDef names the two axes of a 2-D axis.
type StickDef struct {
	X string `yaml:"x"`
	Y string `yaml:"y"`
}

// Step schedules operations, then gathers.
type Step struct {
	Schedule []Op `yaml:"schedule,omitempty"`

	// Gather lists domains gathered in order, once per repeat.
	Gather []string `yaml:"gather,omitempty"`

	// Repeat is the number of gather rounds. Zero means one.
	Repeat int `yaml:"repeat,omitempty"`
}

// Op is a single schedule call.
type Op struct {
	Op     string  `yaml:"op"`
	Action string  `yaml:"action,omitempty"`
	Axis   string  `yaml:"axis,omitempty"`
	Value  float64 `yaml:"value,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`

	// Domains restricts the call. Empty means both domains.
	Domains []string `yaml:"domains,omitempty"`

	// ExpectError is the error code the call must fail with.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Operation names.
const (
	OpOneShot = "one_shot"
	OpPress   = "press"
	OpRelease = "release"
	OpAnalog  = "analog"
	OpAxis1D  = "axis1d"
	OpAxis2D  = "axis2d"
)

// Assertion validates the trace.
type Assertion struct {
	// Type is one of edge_count, state_sequence, analog_at, axis_at.
	Type string `yaml:"type"`

	Action string `yaml:"action,omitempty"`
	Axis   string `yaml:"axis,omitempty"`

	// Domain restricts the assertion. edge_count accepts an empty domain
	// meaning both; the others require one.
	Domain string `yaml:"domain,omitempty"`

	// Edge is just_down or just_up (edge_count).
	Edge  string `yaml:"edge,omitempty"`
	Count int    `yaml:"count,omitempty"`

	// States is the expected state at every gather (state_sequence).
	States []string `yaml:"states,omitempty"`

	// Tick and Value are used by analog_at and axis_at.
	Tick      uint64  `yaml:"tick,omitempty"`
	Value     float64 `yaml:"value,omitempty"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Assertion type constants.
const (
	AssertEdgeCount     = "edge_count"
	AssertStateSequence = "state_sequence"
	AssertAnalogAt      = "analog_at"
	AssertAxisAt        = "axis_at"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// Axis1D returns the named axis.
func (s *Scenario) Axis1D(name string) (input.Axis1D, bool) {
	def, ok := s.Axes[name]
	if !ok {
		return input.Axis1D{}, false
	}
	return input.NewAxis1D(def.Negative, def.Positive), true
}

// Axis2D returns the named stick.
func (s *Scenario) Axis2D(name string) (input.Axis2D, bool) {
	def, ok := s.Sticks[name]
	if !ok {
		return input.Axis2D{}, false
	}
	x, okX := s.Axis1D(def.X)
	y, okY := s.Axis1D(def.Y)
	if !okX || !okY {
		return input.Axis2D{}, false
	}
	return input.NewAxis2D(x, y), true
}

// Mode returns the configured axis mode.
func (s *Scenario) Mode() sim.AxisMode {
	if s.AxisMode == "raw" {
		return sim.AxisRaw
	}
	return sim.AxisMagnitude
}

// Tracked returns the names recorded after every gather, sorted.
func (s *Scenario) Tracked() []string {
	seen := make(map[string]struct{})
	add := func(names ...string) {
		for _, n := range names {
			if n != "" {
				seen[n] = struct{}{}
			}
		}
	}

	if len(s.Track) > 0 {
		add(s.Track...)
	} else {
		for _, step := range s.Steps {
			for _, op := range step.Schedule {
				switch op.Op {
				case OpAxis1D:
					if a, ok := s.Axis1D(op.Axis); ok {
						add(a.Negative, a.Positive)
					}
				case OpAxis2D:
					if a, ok := s.Axis2D(op.Axis); ok {
						add(a.X.Negative, a.X.Positive, a.Y.Negative, a.Y.Positive)
					}
				default:
					add(op.Action)
				}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch s.AxisMode {
	case "", "magnitude", "raw":
	default:
		return fmt.Errorf("axis_mode must be magnitude or raw, got %q", s.AxisMode)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for name, def := range s.Axes {
		if def.Negative == "" || def.Positive == "" {
			return fmt.Errorf("axes.%s: negative and positive are required", name)
		}
	}
	for name := range s.Sticks {
		if _, ok := s.Axis2D(name); !ok {
			return fmt.Errorf("sticks.%s: x and y must name entries in axes", name)
		}
	}

	for i, step := range s.Steps {
		if step.Repeat < 0 {
			return fmt.Errorf("steps[%d]: repeat must be non-negative", i)
		}
		for _, name := range step.Gather {
			if _, err := input.ParseDomain(name); err != nil {
				return fmt.Errorf("steps[%d].gather: %w", i, err)
			}
		}
		for j, op := range step.Schedule {
			if err := validateOp(s, &op); err != nil {
				return fmt.Errorf("steps[%d].schedule[%d]: %w", i, j, err)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(s, i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateOp(s *Scenario, op *Op) error {
	for _, name := range op.Domains {
		if _, err := input.ParseDomain(name); err != nil {
			return err
		}
	}

	switch op.ExpectError {
	case "", string(input.ErrCodeUnknownDomain), string(input.ErrCodeKindCollision), string(input.ErrCodeEmptyAction):
	default:
		return fmt.Errorf("unknown expect_error code %q", op.ExpectError)
	}

	switch op.Op {
	case OpOneShot, OpPress, OpRelease, OpAnalog:
		if op.Action == "" && op.ExpectError == "" {
			return fmt.Errorf("action is required for %s", op.Op)
		}
	case OpAxis1D:
		if _, ok := s.Axis1D(op.Axis); !ok {
			return fmt.Errorf("axis %q is not defined in axes", op.Axis)
		}
	case OpAxis2D:
		if _, ok := s.Axis2D(op.Axis); !ok {
			return fmt.Errorf("stick %q is not defined in sticks", op.Axis)
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(s *Scenario, index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	if a.Domain != "" {
		if _, err := input.ParseDomain(a.Domain); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	}

	switch a.Type {
	case AssertEdgeCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for edge_count", index)
		}
		if a.Edge != input.JustDown.String() && a.Edge != input.JustUp.String() {
			return fmt.Errorf("assertions[%d]: edge must be just_down or just_up for edge_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for edge_count", index)
		}
	case AssertStateSequence:
		if a.Action == "" || a.Domain == "" {
			return fmt.Errorf("assertions[%d]: action and domain are required for state_sequence", index)
		}
		if len(a.States) == 0 {
			return fmt.Errorf("assertions[%d]: states list is required for state_sequence", index)
		}
		for _, st := range a.States {
			if _, err := input.ParseState(st); err != nil {
				return fmt.Errorf("assertions[%d]: %w", index, err)
			}
		}
	case AssertAnalogAt:
		if a.Action == "" || a.Domain == "" || a.Tick == 0 {
			return fmt.Errorf("assertions[%d]: action, domain and tick are required for analog_at", index)
		}
	case AssertAxisAt:
		if a.Domain == "" || a.Tick == 0 {
			return fmt.Errorf("assertions[%d]: domain and tick are required for axis_at", index)
		}
		if _, ok := s.Axis1D(a.Axis); !ok {
			return fmt.Errorf("assertions[%d]: axis %q is not defined in axes", index, a.Axis)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
