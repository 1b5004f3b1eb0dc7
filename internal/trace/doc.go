// Package trace defines the per-gather trace record shared by the scenario
// harness, the run store and the CLI, and its canonical JSON encoding.
//
// Key design constraints:
//   - All JSON tags use snake_case
//   - Ordering uses logical sequence numbers, never wall-clock timestamps
//   - Canonical encoding is byte-stable: sorted keys, NFC strings, shortest
//     round-trip floats
package trace
