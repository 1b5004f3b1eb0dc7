package binding

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Mouse button names accepted by Trigger.Mouse.
const (
	MouseLeft   = "left"
	MouseMiddle = "middle"
	MouseRight  = "right"
)

// Trigger names exactly one physical input.
type Trigger struct {
	// Key is a named key such as "Enter", "Esc" or "Up".
	Key string `yaml:"key,omitempty" json:"key,omitempty"`
	// Rune is a single printable character.
	Rune string `yaml:"rune,omitempty" json:"rune,omitempty"`
	// Mouse is a mouse button: left, middle or right.
	Mouse string `yaml:"mouse,omitempty" json:"mouse,omitempty"`
}

// String returns "key:<name>", "rune:<char>" or "mouse:<button>".
func (t Trigger) String() string {
	switch {
	case t.Key != "":
		return "key:" + t.Key
	case t.Rune != "":
		return "rune:" + t.Rune
	case t.Mouse != "":
		return "mouse:" + t.Mouse
	default:
		return "none"
	}
}

// Mouse splits relative pointer motion into four non-negative analog channels.
type Mouse struct {
	Up    string  `yaml:"up" json:"up"`
	Down  string  `yaml:"down" json:"down"`
	Left  string  `yaml:"left" json:"left"`
	Right string  `yaml:"right" json:"right"`
	Scale float64 `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// Channels returns the four channel names in up, down, left, right order.
func (m Mouse) Channels() []string {
	return []string{m.Up, m.Down, m.Left, m.Right}
}

// Bindings is the complete action table handed to a live source.
type Bindings struct {
	Actions map[string]Trigger `yaml:"actions,omitempty" json:"actions,omitempty"`
	Analogs map[string]Trigger `yaml:"analogs,omitempty" json:"analogs,omitempty"`
	Mice    []Mouse            `yaml:"mice,omitempty" json:"mice,omitempty"`
}

// Normalize rewrites every name to Unicode NFC and fills defaults.
//
// Two names that collapse to the same NFC form are reported as duplicates.
func (b *Bindings) Normalize() error {
	actions, err := normalizeTable("actions", b.Actions)
	if err != nil {
		return err
	}
	analogs, err := normalizeTable("analogs", b.Analogs)
	if err != nil {
		return err
	}
	b.Actions = actions
	b.Analogs = analogs

	for i := range b.Mice {
		m := &b.Mice[i]
		m.Up = norm.NFC.String(m.Up)
		m.Down = norm.NFC.String(m.Down)
		m.Left = norm.NFC.String(m.Left)
		m.Right = norm.NFC.String(m.Right)
		if m.Scale == 0 {
			m.Scale = 1
		}
	}
	return nil
}

func normalizeTable(field string, in map[string]Trigger) (map[string]Trigger, error) {
	if in == nil {
		return nil, nil
	}
	out := make(map[string]Trigger, len(in))
	for _, name := range sortedNames(in) {
		key := norm.NFC.String(name)
		if _, dup := out[key]; dup {
			return nil, &Error{
				Field:   field + "." + key,
				Message: "name appears twice after NFC normalisation",
			}
		}
		out[key] = in[name]
	}
	return out, nil
}

// Validate checks every trigger and the name tables.
//
// Rules:
//   - names are non-empty
//   - every trigger sets exactly one of key, rune and mouse
//   - a rune trigger is a single character
//   - a name is used either as a digital action or an analog channel, never both
//   - every mouse channel has one source: no analog trigger or other
//     direction writes it
//   - mouse scale is positive (Normalize turns an unset scale into 1)
func (b *Bindings) Validate() error {
	for _, name := range sortedNames(b.Actions) {
		if err := checkEntry("actions", name, b.Actions[name]); err != nil {
			return err
		}
	}
	for _, name := range sortedNames(b.Analogs) {
		if err := checkEntry("analogs", name, b.Analogs[name]); err != nil {
			return err
		}
		if _, clash := b.Actions[name]; clash {
			return &Error{
				Field:   "analogs." + name,
				Message: "name is already bound as a digital action",
			}
		}
	}

	owner := make(map[string]string)
	for i, m := range b.Mice {
		field := fmt.Sprintf("mice[%d]", i)
		if m.Scale <= 0 {
			return &Error{Field: field + ".scale", Message: "scale must be positive"}
		}
		for _, ch := range m.Channels() {
			if ch == "" {
				return &Error{Field: field, Message: "every direction needs a channel name"}
			}
			if _, clash := b.Actions[ch]; clash {
				return &Error{
					Field:   field,
					Message: fmt.Sprintf("channel %q is already bound as a digital action", ch),
				}
			}
			if _, clash := b.Analogs[ch]; clash {
				return &Error{
					Field:   field,
					Message: fmt.Sprintf("channel %q is already bound as an analog trigger", ch),
				}
			}
			if prev, clash := owner[ch]; clash {
				return &Error{
					Field:   field,
					Message: fmt.Sprintf("channel %q is already used by %s", ch, prev),
				}
			}
			owner[ch] = field
		}
	}
	return nil
}

func checkEntry(table, name string, t Trigger) error {
	field := table + "." + name
	if name == "" {
		return &Error{Field: table, Message: "name must not be empty"}
	}

	set := 0
	for _, v := range []string{t.Key, t.Rune, t.Mouse} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return &Error{
			Field:   field,
			Message: fmt.Sprintf("trigger must name exactly one of key, rune, mouse (got %d)", set),
		}
	}

	if t.Rune != "" && utf8.RuneCountInString(t.Rune) != 1 {
		return &Error{Field: field + ".rune", Message: fmt.Sprintf("rune %q is not a single character", t.Rune)}
	}
	if t.Mouse != "" {
		switch t.Mouse {
		case MouseLeft, MouseMiddle, MouseRight:
		default:
			return &Error{Field: field + ".mouse", Message: fmt.Sprintf("unknown mouse button %q", t.Mouse)}
		}
	}
	return nil
}

// ActionNames returns the bound digital actions, sorted.
func (b *Bindings) ActionNames() []string {
	return sortedNames(b.Actions)
}

// AnalogNames returns the analog channels bound to triggers, sorted.
// Mouse channels are not included.
func (b *Bindings) AnalogNames() []string {
	return sortedNames(b.Analogs)
}

func sortedNames(m map[string]Trigger) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
