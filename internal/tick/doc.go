// Package tick drives the two input domains from a frame loop.
//
// Each frame gathers the presentation domain once. A fixed-step accumulator
// then decides how many simulation steps are due, and the simulation domain
// is gathered once per due step. Catch-up after a long frame is capped; the
// excess steps are dropped rather than replayed.
package tick
