package input

import "fmt"

// Mux aggregates several providers into one.
//
// GatherInputs gathers every member for the domain in registration order,
// then merges their snapshots: digital records are OR-combined and analog
// channels keep the value with the largest magnitude. A typical use is a
// live player source combined with a simulated assist source.
type Mux struct {
	members  []Provider
	surfaces [DomainCount]*Surface
}

// NewMux creates a Mux over the given providers.
func NewMux(members ...Provider) *Mux {
	m := &Mux{members: append([]Provider(nil), members...)}
	for i := range m.surfaces {
		m.surfaces[i] = NewSurface()
	}
	return m
}

// GatherInputs gathers all members for d and merges their snapshots.
// Stops at the first member error.
func (m *Mux) GatherInputs(d Domain) error {
	if err := CheckDomain(d); err != nil {
		return err
	}
	out := m.surfaces[d]
	out.Sweep()
	for i, p := range m.members {
		if err := p.GatherInputs(d); err != nil {
			return fmt.Errorf("mux member %d: %w", i, err)
		}
		if s := p.Surface(d); s != nil {
			out.mergeFrom(s)
		}
	}
	return nil
}

// Surface returns the merged view for d.
func (m *Mux) Surface(d Domain) *Surface {
	if !d.Valid() {
		return nil
	}
	return m.surfaces[d]
}

var _ Provider = (*Mux)(nil)
