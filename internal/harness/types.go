package harness

import "github.com/roach88/tickinput/internal/trace"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion and expected error held.
	Pass bool `json:"pass"`

	// Trace holds one event per tracked action per gather, in gather order.
	Trace []trace.Event `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []trace.Event{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Events returns the events for action in domain, in order.
// An empty domain matches every domain.
func (r *Result) Events(action, domain string) []trace.Event {
	var out []trace.Event
	for _, ev := range r.Trace {
		if ev.Action != action {
			continue
		}
		if domain != "" && ev.Domain != domain {
			continue
		}
		out = append(out, ev)
	}
	return out
}
