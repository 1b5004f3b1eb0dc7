// Package live adapts a physical input backend to the input.Provider
// interface.
//
// The backend reports raw levels (is this trigger down right now) and
// strengths. Source turns those levels into per-domain edges by remembering
// the level each domain saw at its previous gather, so the presentation and
// simulation domains each observe exactly one press edge per physical press
// no matter how their tick rates differ.
//
// TcellBackend is a terminal backend built on tcell. Terminals deliver key
// presses and repeats but no key releases, so a key counts as held until its
// hold timeout passes without another press or repeat event.
package live
