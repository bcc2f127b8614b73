package sim

import "math"

// Vec2 is a 2-D vector in simulation space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{v.X * factor, v.Y * factor}
}

func (v Vec2) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// State is the flat state vector for N bodies: the position block first
// (x0, y0, x1, y1, ...) followed by the velocity block (vx0, vy0, ...).
// Length is always 4N.
type State []float64

// Pack builds a State from per-body positions and velocities.
// Both slices must have the same length.
func Pack(positions, velocities []Vec2) State {
	n := len(positions)
	s := make(State, 4*n)
	for i, p := range positions {
		s[2*i] = p.X
		s[2*i+1] = p.Y
	}
	for i, v := range velocities {
		s[2*n+2*i] = v.X
		s[2*n+2*i+1] = v.Y
	}
	return s
}

func (s State) NumBodies() int { return len(s) / 4 }

// Positions unpacks the position block, body 0 first.
func (s State) Positions() []Vec2 {
	n := s.NumBodies()
	out := make([]Vec2, n)
	for i := 0; i < n; i++ {
		out[i] = Vec2{s[2*i], s[2*i+1]}
	}
	return out
}

// Velocities unpacks the velocity block, body 0 first.
func (s State) Velocities() []Vec2 {
	n := s.NumBodies()
	out := make([]Vec2, n)
	for i := 0; i < n; i++ {
		out[i] = Vec2{s[2*n+2*i], s[2*n+2*i+1]}
	}
	return out
}

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Dynamics is an ODE system dX/dt = f(X, t).
type Dynamics interface {
	Derivative(x State, t float64) State
	StateDim() int
}

// Integrator advances a state by one fixed time step.
type Integrator interface {
	Step(dyn Dynamics, x State, t float64, dt float64) State
}

// Result collects the output of a headless run.
type Result struct {
	States     []State
	Times      []float64
	StepsTaken int
}
