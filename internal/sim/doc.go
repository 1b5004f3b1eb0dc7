// Package sim implements the simulated input provider: a deferred-application
// state machine that lets arbitrary code schedule digital presses/releases and
// analog values for future ticks.
//
// ARCHITECTURE:
//
// Per-Domain State:
// The Source keeps two fully isolated state stores, one per tick domain.
// Each store holds the authoritative digital state of every tracked action,
// the pending analog writes for the next gather, and a FIFO queue of
// raw-level snapshots awaiting application.
//
// Gather Flow (once per tick per domain):
// 1. Sweep the published surface for the domain
// 2. Age tracked actions (JustDown → Held, JustUp → removed)
// 3. Pop at most one queued snapshot and reconcile it against current state
// 4. Publish digital states and pending analog values to the surface
// 5. Clear pending analog values (analog input is transient)
//
// Scheduling never mutates published state; it only writes into the queue
// (digital) or the pending analog map (analog). Nothing crosses domains: the
// plain Schedule* methods write identically into both stores, the *In
// variants into one.
//
// CRITICAL PATTERNS:
//
// Edge Uniqueness:
// Aging always precedes reconciliation, so an edge is visible for exactly one
// tick and a press always yields exactly one JustDown and one JustUp.
//
// Rate Limiting:
// At most one snapshot is consumed per gather. Requests for the same action
// are never placed in the same snapshot, and no request lands in an earlier
// snapshot than a request scheduled before it.
package sim
