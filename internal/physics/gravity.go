package physics

import "github.com/arvid-sk/threebody/internal/sim"

// G is the gravitational constant in SI units (m³ kg⁻¹ s⁻²).
const G = 6.67430e-11

// Force returns the gravitational force exerted on body 1 by body 2:
// F = G·m1·m2·(r2−r1)/|r2−r1|³. At exactly zero separation the force is
// the zero vector; this is a numerical guard, not collision handling.
func Force(m1, m2 float64, r1, r2 sim.Vec2) sim.Vec2 {
	return force(G, m1, m2, r1, r2)
}

func force(g, m1, m2 float64, r1, r2 sim.Vec2) sim.Vec2 {
	d := r2.Sub(r1)
	r := d.Norm()
	if r == 0 {
		return sim.Vec2{}
	}
	return d.Scale(g * m1 * m2 / (r * r * r))
}
