package physics

import "github.com/arvid-sk/threebody/internal/sim"

// Gravity is the N-body gravitational system. It implements [sim.Dynamics]
// over the flat state layout of [sim.State]: positions block first, then
// velocities.
type Gravity struct {
	Masses []float64
	G      float64
}

// NewGravity builds the system for the given masses using the SI
// gravitational constant. Callers working in scaled units (e.g. the
// figure-8 choreography at G = 1) set G directly.
func NewGravity(masses []float64) *Gravity {
	return &Gravity{Masses: masses, G: G}
}

func (g *Gravity) StateDim() int { return 4 * len(g.Masses) }

// Derivative maps a state to its time-derivative: the position block's
// derivative is the velocity block, and each body's velocity derivative is
// the net acceleration from every other body. Forces are recomputed from
// scratch on every call; the integrator evaluates this on intermediate
// states where any cached value would be stale.
func (g *Gravity) Derivative(x sim.State, _ float64) sim.State {
	n := len(g.Masses)
	positions := x.Positions()
	dx := make(sim.State, len(x))

	// d(position)/dt = velocity
	copy(dx[:2*n], x[2*n:])

	for i := 0; i < n; i++ {
		var net sim.Vec2
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			net = net.Add(force(g.G, g.Masses[i], g.Masses[j], positions[i], positions[j]))
		}
		a := net.Scale(1 / g.Masses[i])
		dx[2*n+2*i] = a.X
		dx[2*n+2*i+1] = a.Y
	}
	return dx
}
