package integrators

import "github.com/arvid-sk/threebody/internal/sim"

// Euler is the explicit first-order integrator. Kept for accuracy
// comparison against RK4; not the default.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn sim.Dynamics, x sim.State, t, dt float64) sim.State {
	dx := dyn.Derivative(x, t)
	result := make(sim.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
