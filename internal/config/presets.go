package config

import (
	"sort"

	"github.com/arvid-sk/threebody/internal/physics"
)

var presets = map[string]*Config{
	// Two suns on opposing orbits with a third drifting through the middle.
	// Same as DefaultConfig.
	"earths": nil,

	// Chenciner-Montgomery figure-8 choreography in G=1 units.
	"figure8": {
		Integrator: "rk4",
		Dt:         0.005,
		Steps:      20000,
		G:          1.0,
		Bodies: []Body{
			{Mass: 1, X: 0.97000436, Y: -0.24308753, VX: 0.466203685, VY: 0.43236573},
			{Mass: 1, X: -0.97000436, Y: 0.24308753, VX: 0.466203685, VY: 0.43236573},
			{Mass: 1, X: 0, Y: 0, VX: -0.93240737, VY: -0.86473146},
		},
		Trail:     1000,
		Scale:     0.02,
		FrameRate: DefaultFrameRate,
	},

	// Tight equal-mass binary with a light third body orbiting the pair.
	"binary": {
		Integrator: "rk4",
		Dt:         1e4,
		Steps:      20000,
		G:          physics.G,
		Bodies: []Body{
			{Mass: 1.989e30, X: 5e10, Y: 0, VX: 0, VY: 2.58e4},
			{Mass: 1.989e30, X: -5e10, Y: 0, VX: 0, VY: -2.58e4},
			{Mass: 5.97e24, X: 3e11, Y: 0, VX: 0, VY: 2.97e4},
		},
		Trail:     1000,
		Scale:     3e9,
		FrameRate: DefaultFrameRate,
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	if cfg == nil {
		return DefaultConfig()
	}
	out := *cfg
	out.Bodies = append([]Body(nil), cfg.Bodies...)
	return &out
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
