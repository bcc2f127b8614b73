package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/arvid-sk/threebody/internal/integrators"
	"github.com/arvid-sk/threebody/internal/physics"
	"github.com/arvid-sk/threebody/internal/sim"
)

// poisoned emits a NaN derivative to force a numerical failure.
type poisoned struct{ dim int }

func (p *poisoned) StateDim() int { return p.dim }

func (p *poisoned) Derivative(x sim.State, t float64) sim.State {
	dx := make(sim.State, len(x))
	dx[0] = math.NaN()
	return dx
}

var _ = Describe("Simulation", func() {
	var (
		masses     []float64
		positions  []sim.Vec2
		velocities []sim.Vec2
		dt         float64
	)

	BeforeEach(func() {
		masses = []float64{1.989e30, 1.989e30, 1.989e30}
		positions = []sim.Vec2{{X: 1.496e11, Y: 0}, {X: -1.496e11, Y: 0}, {X: 0, Y: 0}}
		velocities = []sim.Vec2{{X: 0, Y: 2.98e4}, {X: 0, Y: -2.98e4}, {X: 0, Y: 1e3}}
		dt = 2e4
	})

	newSim := func() *sim.Simulation {
		s, err := sim.New(physics.NewGravity(masses), integrators.NewRK4(),
			masses, positions, velocities, dt, 1000)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	Describe("New", func() {
		It("packs the initial conditions into the state vector", func() {
			s := newSim()
			Expect(s.State()).To(Equal(sim.Pack(positions, velocities)))
			Expect(s.NumBodies()).To(Equal(3))
		})

		It("rejects a zero mass", func() {
			masses[1] = 0
			_, err := sim.New(physics.NewGravity(masses), integrators.NewRK4(),
				masses, positions, velocities, dt, 1000)
			Expect(err).To(MatchError(sim.ErrInvalidInput))
		})

		It("rejects a negative mass", func() {
			masses[0] = -1e30
			_, err := sim.New(physics.NewGravity(masses), integrators.NewRK4(),
				masses, positions, velocities, dt, 1000)
			Expect(err).To(MatchError(sim.ErrInvalidInput))
		})

		It("rejects non-positive dt", func() {
			for _, bad := range []float64{0, -2e4} {
				_, err := sim.New(physics.NewGravity(masses), integrators.NewRK4(),
					masses, positions, velocities, bad, 1000)
				Expect(err).To(MatchError(sim.ErrInvalidInput))
			}
		})

		It("rejects non-finite dt", func() {
			for _, bad := range []float64{math.NaN(), math.Inf(1)} {
				_, err := sim.New(physics.NewGravity(masses), integrators.NewRK4(),
					masses, positions, velocities, bad, 1000)
				Expect(err).To(MatchError(sim.ErrInvalidInput))
			}
		})

		It("rejects mismatched sequence lengths", func() {
			_, err := sim.New(physics.NewGravity(masses), integrators.NewRK4(),
				masses, positions[:2], velocities, dt, 1000)
			Expect(err).To(MatchError(sim.ErrInvalidInput))
		})
	})

	Describe("Step", func() {
		It("is deterministic for identical inputs", func() {
			dyn := physics.NewGravity(masses)
			integ := integrators.NewRK4()
			x := sim.Pack(positions, velocities)

			a, err := sim.Step(integ, dyn, x, 0, dt)
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.Step(integ, dyn, x, 0, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})

		It("does not mutate the input state", func() {
			dyn := physics.NewGravity(masses)
			x := sim.Pack(positions, velocities)
			before := x.Clone()

			_, err := sim.Step(integrators.NewRK4(), dyn, x, 0, dt)
			Expect(err).NotTo(HaveOccurred())
			Expect(x).To(Equal(before))
		})

		It("reports non-finite output as a numerical failure", func() {
			x := sim.Pack(positions, velocities)
			_, err := sim.Step(integrators.NewRK4(), &poisoned{dim: 12}, x, 0, dt)
			Expect(err).To(MatchError(sim.ErrNumericalFailure))
		})
	})

	Describe("one tick of the canonical three-body setup", func() {
		It("produces a finite state that tracks the initial velocities to first order", func() {
			s := newSim()
			Expect(s.Tick()).To(Succeed())

			next := s.State()
			Expect(len(next)).To(Equal(12))
			Expect(next.IsValid()).To(BeTrue())

			for i, p := range next.Positions() {
				drift := sim.Vec2{
					X: velocities[i].X * dt,
					Y: velocities[i].Y * dt,
				}
				delta := p.Sub(positions[i])
				residual := delta.Sub(drift).Norm()
				Expect(residual).To(BeNumerically("<", drift.Norm()*0.05),
					"body %d drifted %v from the Euler estimate", i, residual)
			}
		})

		It("pulls two resting equal masses toward each other", func() {
			m := []float64{1.989e30, 1.989e30}
			p := []sim.Vec2{{X: -1.496e11, Y: 0}, {X: 1.496e11, Y: 0}}
			v := []sim.Vec2{{}, {}}
			s, err := sim.New(physics.NewGravity(m), integrators.NewRK4(), m, p, v, dt, 10)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Tick()).To(Succeed())
			vs := s.State().Velocities()
			Expect(vs[0].X).To(BeNumerically(">", 0))
			Expect(vs[1].X).To(BeNumerically("<", 0))
		})
	})

	Describe("Tick", func() {
		It("appends one trail entry per body per completed step", func() {
			s := newSim()
			Expect(s.Tick()).To(Succeed())
			Expect(s.Tick()).To(Succeed())

			for i := 0; i < s.NumBodies(); i++ {
				Expect(s.Trail(i)).To(HaveLen(2))
			}
			Expect(s.Trail(0)[1]).To(Equal(s.Positions()[0]))
		})

		It("retains the previous state on numerical failure", func() {
			s, err := sim.New(&poisoned{dim: 12}, integrators.NewRK4(),
				masses, positions, velocities, dt, 10)
			Expect(err).NotTo(HaveOccurred())

			before := s.State().Clone()
			err = s.Tick()
			Expect(err).To(MatchError(sim.ErrNumericalFailure))

			var stepErr *sim.StepError
			Expect(errors.As(err, &stepErr)).To(BeTrue())
			Expect(stepErr.Step).To(Equal(0))
			Expect(s.State()).To(Equal(before))
			Expect(s.Trail(0)).To(BeEmpty())
		})
	})

	Describe("Run", func() {
		It("records the initial state plus one per step", func() {
			s := newSim()
			result, err := s.Run(context.Background(), 25)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.States).To(HaveLen(26))
			Expect(result.Times).To(HaveLen(26))
			Expect(result.StepsTaken).To(Equal(25))
			Expect(result.Times[25]).To(BeNumerically("~", 25*dt, dt*1e-9))
		})

		It("stops on context cancellation", func() {
			s := newSim()
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := s.Run(ctx, 10)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
