package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arvid-sk/threebody/internal/physics"
	"github.com/arvid-sk/threebody/internal/sim"
)

const (
	DefaultDt        = 2e4
	DefaultSteps     = 10000
	DefaultTrail     = 1000
	DefaultScale     = 2e9
	DefaultFrameRate = 60
)

// Body is one body's mass and initial conditions.
type Body struct {
	Mass float64 `yaml:"mass"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	VX   float64 `yaml:"vx"`
	VY   float64 `yaml:"vy"`
}

type Config struct {
	Integrator string  `yaml:"integrator"`
	Dt         float64 `yaml:"dt"`
	Steps      int     `yaml:"steps"`
	G          float64 `yaml:"g"`
	Bodies     []Body  `yaml:"bodies"`
	Trail      int     `yaml:"trail"`
	Scale      float64 `yaml:"scale"`
	FrameRate  int     `yaml:"frame_rate"`
}

// DefaultConfig is the "three Earth-mass suns" setup: two bodies on opposing
// orbits at one AU with a third drifting through the middle.
func DefaultConfig() *Config {
	return &Config{
		Integrator: "rk4",
		Dt:         DefaultDt,
		Steps:      DefaultSteps,
		G:          physics.G,
		Bodies: []Body{
			{Mass: 1.989e30, X: 1.496e11, Y: 0, VX: 0, VY: 2.98e4},
			{Mass: 1.989e30, X: -1.496e11, Y: 0, VX: 0, VY: -2.98e4},
			{Mass: 1.989e30, X: 0, Y: 0, VX: 0, VY: 1e3},
		},
		Trail:     DefaultTrail,
		Scale:     DefaultScale,
		FrameRate: DefaultFrameRate,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Masses() []float64 {
	out := make([]float64, len(c.Bodies))
	for i, b := range c.Bodies {
		out[i] = b.Mass
	}
	return out
}

func (c *Config) Positions() []sim.Vec2 {
	out := make([]sim.Vec2, len(c.Bodies))
	for i, b := range c.Bodies {
		out[i] = sim.Vec2{X: b.X, Y: b.Y}
	}
	return out
}

func (c *Config) Velocities() []sim.Vec2 {
	out := make([]sim.Vec2, len(c.Bodies))
	for i, b := range c.Bodies {
		out[i] = sim.Vec2{X: b.VX, Y: b.VY}
	}
	return out
}
