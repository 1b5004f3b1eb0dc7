// Package binding maps action names to physical inputs.
//
// A Bindings value is the explicit, injected replacement for a global input
// registry: the live source receives one at construction and never looks
// names up anywhere else. Bindings are authored as YAML or CUE files:
//
//	actions:
//	  jump: {rune: " "}
//	  fire: {mouse: left}
//	analogs:
//	  throttle: {key: Up}
//	mice:
//	  - {up: look_up, down: look_down, left: look_left, right: look_right, scale: 0.05}
//
// Action names are NFC-normalised on load so that visually identical names
// written with different Unicode compositions refer to the same action.
package binding
