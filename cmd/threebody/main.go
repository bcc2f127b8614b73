package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/arvid-sk/threebody/internal/config"
	"github.com/arvid-sk/threebody/internal/export"
	"github.com/arvid-sk/threebody/internal/integrators"
	"github.com/arvid-sk/threebody/internal/physics"
	"github.com/arvid-sk/threebody/internal/sim"
	"github.com/arvid-sk/threebody/internal/storage"
	"github.com/arvid-sk/threebody/internal/viz"
)

var (
	dataDir    string
	preset     string
	configFile string
	dt         float64
	steps      int
	integrator string
	trail      int
	scale      float64
	frameRate  int
	exportFmt  string
	exportOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "threebody",
		Short: "gravitational three-body simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view.
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".threebody", "data directory")

	addConfigFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVar(&preset, "preset", "", "preset configuration (see 'presets')")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep in seconds")
		cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (rk4, euler)")
		cmd.Flags().IntVar(&trail, "trail", config.DefaultTrail, "trajectory history length per body")
	}
	addConfigFlags(rootCmd)
	rootCmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "meters per screen sub-pixel")
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and archive the result",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of integration steps")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "meters per screen sub-pixel")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an archived run's coordinates",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFmt, "format", "json", "export format (json, svg)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default stdout for json)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file, and explicit flags, later
// sources winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)",
				preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("trail") {
		cfg.Trail = trail
	}
	if cmd.Flags().Changed("scale") {
		cfg.Scale = scale
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = frameRate
	}
	return cfg, nil
}

func newIntegrator(name string) (sim.Integrator, error) {
	switch name {
	case "", "rk4":
		return integrators.NewRK4(), nil
	case "euler":
		return integrators.NewEuler(), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q (available: rk4, euler)", name)
	}
}

func buildSimulation(cfg *config.Config) (*sim.Simulation, error) {
	dyn := physics.NewGravity(cfg.Masses())
	if cfg.G > 0 {
		dyn.G = cfg.G
	}
	integ, err := newIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	return sim.New(dyn, integ, cfg.Masses(), cfg.Positions(), cfg.Velocities(), cfg.Dt, cfg.Trail)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s, err := buildSimulation(cfg)
	if err != nil {
		return err
	}

	presetName := preset
	if presetName == "" {
		presetName = "custom"
	}

	fmt.Printf("running %d steps at dt=%.3g...\n", cfg.Steps, cfg.Dt)
	start := time.Now()

	result, runErr := s.Run(context.Background(), cfg.Steps)
	elapsed := time.Since(start)

	runID, err := st.Save(presetName, cfg.Integrator, cfg.Masses(), cfg.Dt, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n", result.StepsTaken, elapsed)
	fmt.Printf("run id: %s\n", runID)

	if runErr != nil {
		return fmt.Errorf("simulation halted early: %w", runErr)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tBODIES\tSTEPS\tDT\tINTEG")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3g\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Steps,
			run.Dt,
			run.Integrator,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(states))

	n := states[0].NumBodies()
	axes := []string{"x", "y"}
	for body := 0; body < n; body++ {
		for axis := 0; axis < 2; axis++ {
			data := make([]float64, len(states))
			for i := range states {
				data[i] = states[i][2*body+axis]
			}
			graph := asciigraph.Plot(data,
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("body %d %s vs time", body, axes[axis])),
			)
			fmt.Println(graph)
			fmt.Println()
		}
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		States:     states,
		Times:      times,
		StepsTaken: meta.Steps,
	}

	switch exportFmt {
	case "json":
		if exportOut == "" {
			return export.WriteJSONStdout(meta.Preset, meta.Integrator, meta.Masses, meta.Dt, result)
		}
		return export.WriteJSON(exportOut, meta.Preset, meta.Integrator, meta.Masses, meta.Dt, result)

	case "svg":
		out := exportOut
		if out == "" {
			out = runID + ".svg"
		}
		trails := make([][]sim.Vec2, meta.Bodies)
		for _, state := range states {
			for i, p := range state.Positions() {
				trails[i] = append(trails[i], p)
			}
		}
		if err := export.WriteSVG(out, trails, 800, 800); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil

	default:
		return fmt.Errorf("unknown format %q (available: json, svg)", exportFmt)
	}
}
