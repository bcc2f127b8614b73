// Package viz renders a running simulation in the terminal.
//
// It is a pure consumer of the physics core: each frame it ticks the
// simulation, reads the new positions and trajectory histories, and draws
// them on a Braille [Canvas] through a [Viewport] transform. It never
// writes simulation state.
//
// # Key Bindings
//
//	Space - pause/resume
//	+/-   - zoom in/out
//	r     - reset to initial conditions
//	q     - quit
package viz
