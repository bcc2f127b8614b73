package sim

import (
	"context"
	"fmt"
	"math"
)

// Simulation owns the masses and the current state vector for one run.
// Masses are fixed for the lifetime of the run; the state is replaced by
// Tick and never written by any other component.
type Simulation struct {
	dyn    Dynamics
	integ  Integrator
	masses []float64
	state  State
	dt     float64
	t      float64
	steps  int
	trails []*History
}

// New validates the initial conditions and packs them into the initial
// state vector. Validation failures wrap ErrInvalidInput and no simulation
// is constructed.
func New(dyn Dynamics, integ Integrator, masses []float64, positions, velocities []Vec2, dt float64, maxTrail int) (*Simulation, error) {
	if len(masses) == 0 || len(positions) != len(masses) || len(velocities) != len(masses) {
		return nil, fmt.Errorf("%w: %d masses, %d positions, %d velocities",
			ErrInvalidInput, len(masses), len(positions), len(velocities))
	}
	for i, m := range masses {
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return nil, fmt.Errorf("%w: mass %d is %g, want positive finite", ErrInvalidInput, i, m)
		}
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: dt is %g, want positive finite", ErrInvalidInput, dt)
	}
	if dim := dyn.StateDim(); dim != 4*len(masses) {
		return nil, fmt.Errorf("%w: dynamics dimension %d does not match %d bodies",
			ErrInvalidInput, dim, len(masses))
	}

	trails := make([]*History, len(masses))
	for i := range trails {
		trails[i] = NewHistory(maxTrail)
	}

	ms := make([]float64, len(masses))
	copy(ms, masses)

	return &Simulation{
		dyn:    dyn,
		integ:  integ,
		masses: ms,
		state:  Pack(positions, velocities),
		dt:     dt,
		trails: trails,
	}, nil
}

// Step advances x by one fixed time step. It is pure: the input state is
// untouched and identical inputs produce identical output. A non-finite
// component in the produced state wraps ErrNumericalFailure and the input
// state remains the last valid one.
func Step(integ Integrator, dyn Dynamics, x State, t, dt float64) (State, error) {
	next := integ.Step(dyn, x, t, dt)
	if !next.IsValid() {
		return nil, ErrNumericalFailure
	}
	return next, nil
}

// Tick performs one driver cycle: step, replace the state, and append each
// body's new position to its trajectory history. On failure the previous
// state is retained and nothing is appended.
func (s *Simulation) Tick() error {
	next, err := Step(s.integ, s.dyn, s.state, s.t, s.dt)
	if err != nil {
		return &StepError{Step: s.steps, Time: s.t, Wrapped: err}
	}
	s.state = next
	s.t += s.dt
	s.steps++
	for i, p := range next.Positions() {
		s.trails[i].Push(p)
	}
	return nil
}

// Run executes n ticks, recording every state. It stops early on context
// cancellation or numerical failure, returning whatever was recorded
// alongside the error.
func (s *Simulation) Run(ctx context.Context, n int) (*Result, error) {
	result := &Result{
		States: make([]State, 0, n+1),
		Times:  make([]float64, 0, n+1),
	}
	result.States = append(result.States, s.state.Clone())
	result.Times = append(result.Times, s.t)

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}
		if err := s.Tick(); err != nil {
			return result, err
		}
		result.States = append(result.States, s.state.Clone())
		result.Times = append(result.Times, s.t)
		result.StepsTaken++
	}
	return result, nil
}

// State returns the current state vector. Callers must not modify it.
func (s *Simulation) State() State { return s.state }

// Positions returns the current body positions, body 0 first.
func (s *Simulation) Positions() []Vec2 { return s.state.Positions() }

// Trail returns body i's recorded positions, oldest to newest.
func (s *Simulation) Trail(i int) []Vec2 { return s.trails[i].Positions() }

func (s *Simulation) NumBodies() int    { return len(s.masses) }
func (s *Simulation) Masses() []float64 { return s.masses }
func (s *Simulation) Dt() float64       { return s.dt }
func (s *Simulation) Time() float64     { return s.t }
func (s *Simulation) Steps() int        { return s.steps }
