// Package harness runs scripted input scenarios against the simulated
// source and checks the resulting per-gather trace.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: one_shot
//	description: "A one-shot press is seen for exactly one tick"
//	axis_mode: magnitude        # or raw
//	track: [fire]               # defaults to every name the steps use
//	axes:
//	  look: {negative: look_down, positive: look_up}
//	sticks:
//	  move: {x: strafe, y: walk}
//	steps:
//	  - schedule:
//	      - {op: one_shot, action: fire}
//	      - {op: axis1d, axis: look, value: -0.5, domains: [presentation]}
//	    gather: [presentation, simulation]
//	    repeat: 3
//	assertions:
//	  - {type: edge_count, action: fire, domain: simulation, edge: just_down, count: 1}
//	  - {type: state_sequence, action: fire, domain: simulation, states: [just_down, just_up, absent]}
//
// # Operations
//
//   - one_shot: press on the next free tick, release on the tick after
//   - press, release: raw level requests
//   - analog: one-tick analog value
//   - axis1d, axis2d: signed axis values split onto channels
//
// An operation with expect_error must fail with that error code
// (UNKNOWN_DOMAIN, KIND_COLLISION, EMPTY_ACTION).
//
// # Assertion Types
//
//   - edge_count: number of just_down or just_up events for an action
//   - state_sequence: the exact state of an action at every gather of a domain
//   - analog_at: a channel's value at a given tick
//   - axis_at: a named axis's composed value at a given tick
//
// # Deterministic Testing
//
// Every run uses a fresh source and a logical sequence counter, so the same
// scenario always produces a byte-identical canonical trace. RunWithGolden
// compares that trace with testdata/golden/<name>.golden.
package harness
