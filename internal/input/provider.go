package input

// Query is the consumer-facing read API. It is the only surface exposed to
// gameplay code; providers never expose their internal state maps.
type Query interface {
	IsJustPressed(action string) bool
	IsPressed(action string) bool
	IsJustReleased(action string) bool
	Analog(action string) float64
	ReadAxis1D(axis Axis1D) float64
	ReadAxis2D(axis Axis2D) Vec2
}

// Provider is an input source that can be gathered once per tick per domain.
//
// Implemented by sim.Source (programmatic input) and live.Source (device
// input). GatherInputs must be invoked exactly once per tick per domain before
// queries for that tick are trusted.
type Provider interface {
	// GatherInputs sweeps and repopulates the surface for domain d.
	// Returns an UNKNOWN_DOMAIN error if d is not a valid domain.
	GatherInputs(d Domain) error

	// Surface returns the read-only view for domain d, or nil if d is invalid.
	Surface(d Domain) *Surface
}

// Domained adapts a Provider plus a fixed domain into a Query.
// Consumers that run inside one tick cadence hold a Domained value so that
// every read is answered from that domain's snapshot.
type Domained struct {
	p Provider
	d Domain
}

// In returns a Query bound to domain d of provider p.
func In(p Provider, d Domain) Domained {
	return Domained{p: p, d: d}
}

func (q Domained) surface() *Surface {
	if s := q.p.Surface(q.d); s != nil {
		return s
	}
	return emptySurface
}

// emptySurface answers reads for an invalid domain with the absence defaults.
var emptySurface = NewSurface()

func (q Domained) IsJustPressed(action string) bool  { return q.surface().IsJustPressed(action) }
func (q Domained) IsPressed(action string) bool      { return q.surface().IsPressed(action) }
func (q Domained) IsJustReleased(action string) bool { return q.surface().IsJustReleased(action) }
func (q Domained) Analog(action string) float64      { return q.surface().Analog(action) }
func (q Domained) ReadAxis1D(axis Axis1D) float64    { return q.surface().ReadAxis1D(axis) }
func (q Domained) ReadAxis2D(axis Axis2D) Vec2       { return q.surface().ReadAxis2D(axis) }

var (
	_ Query = (*Surface)(nil)
	_ Query = Domained{}
)
