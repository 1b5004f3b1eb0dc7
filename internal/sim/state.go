package sim

import "github.com/roach88/tickinput/internal/input"

// kind records whether a name is used as a digital action or analog channel.
type kind int

const (
	kindDigital kind = iota + 1
	kindAnalog
)

func (k kind) String() string {
	switch k {
	case kindDigital:
		return "digital"
	case kindAnalog:
		return "analog"
	default:
		return "unknown"
	}
}

// domainState is the authoritative store for one tick domain.
//
// INVARIANTS:
//   - digital never holds input.Absent; released actions are deleted
//   - analog holds writes for the next gather only and is cleared after publish
//   - kinds only grows until Reset
type domainState struct {
	digital map[string]input.State
	analog  map[string]float64
	queue   *requestQueue
	kinds   map[string]kind
	clock   Clock
}

func newDomainState() *domainState {
	return &domainState{
		digital: make(map[string]input.State),
		analog:  make(map[string]float64),
		queue:   newRequestQueue(),
		kinds:   make(map[string]kind),
	}
}

// age moves every tracked action forward one tick.
func (st *domainState) age() {
	for name, s := range st.digital {
		if next := Age(s); next == input.Absent {
			delete(st.digital, name)
		} else {
			st.digital[name] = next
		}
	}
}

// apply reconciles one snapshot against the current digital state.
// Returns the number of actions whose state changed.
func (st *domainState) apply(snap snapshot) int {
	changed := 0
	for _, name := range snap.actions() {
		cur := st.digital[name]
		next := Reconcile(cur, snap[name])
		if next == cur {
			continue
		}
		changed++
		if next == input.Absent {
			delete(st.digital, name)
		} else {
			st.digital[name] = next
		}
	}
	return changed
}

// conflicts reports the kind already registered for name if it differs from k.
func (st *domainState) conflicts(name string, k kind) (kind, bool) {
	existing, ok := st.kinds[name]
	if !ok || existing == k {
		return 0, false
	}
	return existing, true
}
