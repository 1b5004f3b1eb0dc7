package trace

import "github.com/roach88/tickinput/internal/input"

// Event is the observation of one action in one domain after one gather.
type Event struct {
	// Seq orders events across both domains, starting at 1.
	Seq int64 `json:"seq"`

	// Tick is the domain's gather count when the event was recorded.
	Tick uint64 `json:"tick"`

	Domain string `json:"domain"`
	Action string `json:"action"`

	// State is the digital state name: absent, just_down, held or just_up.
	State string `json:"state"`

	// Analog is the published channel value, nil when no value was published.
	Analog *float64 `json:"analog,omitempty"`
}

// FromObservation builds an Event from what a surface published for action.
func FromObservation(seq int64, tick uint64, d input.Domain, action string, obs input.Observation) Event {
	ev := Event{
		Seq:    seq,
		Tick:   tick,
		Domain: d.String(),
		Action: action,
		State:  obs.Digital.State().String(),
	}
	if obs.HasAnalog {
		v := obs.Analog
		ev.Analog = &v
	}
	return ev
}

// AnalogValue returns the analog value or 0 when none was published.
func (e Event) AnalogValue() float64 {
	if e.Analog == nil {
		return 0
	}
	return *e.Analog
}

// Canonical returns the event as a map for MarshalCanonical.
func (e Event) Canonical() map[string]any {
	m := map[string]any{
		"seq":    e.Seq,
		"tick":   e.Tick,
		"domain": e.Domain,
		"action": e.Action,
		"state":  e.State,
	}
	if e.Analog != nil {
		m["analog"] = *e.Analog
	}
	return m
}

// Snapshot is a complete scenario trace.
type Snapshot struct {
	Scenario string  `json:"scenario"`
	Events   []Event `json:"events"`
}

// Marshal encodes the snapshot as canonical JSON.
func (s Snapshot) Marshal() ([]byte, error) {
	events := make([]any, len(s.Events))
	for i, ev := range s.Events {
		events[i] = ev.Canonical()
	}
	return MarshalCanonical(map[string]any{
		"scenario": s.Scenario,
		"events":   events,
	})
}
