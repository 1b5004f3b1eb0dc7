// Package input provides the device-agnostic query surface for digital
// actions and analog channels.
//
// This package contains the value types shared by every input provider.
// All other internal packages import input; input imports nothing internal.
//
// Key design constraints:
//   - Two tick domains (Presentation, Simulation) with fully isolated state
//   - Digital state is a closed four-value enum, never raw bit flags
//   - Absence is a valid state: unknown actions read as Absent / 0.0
//   - Analog values are transient and never carried across ticks
package input
