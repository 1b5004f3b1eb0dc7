package sim

import "sync/atomic"

// Clock counts gathers performed in one tick domain.
//
// The first gather is tick 1. Ticks are logical: they advance only when the
// domain is gathered, never from wall-clock time.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations), so a
// diagnostics view may read Current() while the owning loop gathers.
type Clock struct {
	tick atomic.Uint64
}

// Next advances the clock and returns the new tick number.
func (c *Clock) Next() uint64 {
	return c.tick.Add(1)
}

// Current returns the number of the most recent tick without advancing.
// Returns 0 before the first gather.
func (c *Clock) Current() uint64 {
	return c.tick.Load()
}

// Reset rewinds the clock to 0.
func (c *Clock) Reset() {
	c.tick.Store(0)
}
