package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/arvid-sk/threebody/internal/sim"
)

type RunData struct {
	Preset     string      `json:"preset"`
	Integrator string      `json:"integrator"`
	Bodies     int         `json:"bodies"`
	Masses     []float64   `json:"masses"`
	Dt         float64     `json:"dt"`
	Steps      int         `json:"steps"`
	Times      []float64   `json:"times"`
	States     [][]float64 `json:"states"`
}

func runData(preset, integrator string, masses []float64, dt float64, result *sim.Result) RunData {
	data := RunData{
		Preset:     preset,
		Integrator: integrator,
		Bodies:     len(masses),
		Masses:     masses,
		Dt:         dt,
		Steps:      result.StepsTaken,
		Times:      result.Times,
		States:     make([][]float64, len(result.States)),
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

// WriteJSON exports a run to path as indented JSON.
func WriteJSON(path, preset, integrator string, masses []float64, dt float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encodeJSON(file, preset, integrator, masses, dt, result)
}

// WriteJSONStdout exports a run to standard output.
func WriteJSONStdout(preset, integrator string, masses []float64, dt float64, result *sim.Result) error {
	return encodeJSON(os.Stdout, preset, integrator, masses, dt, result)
}

func encodeJSON(w io.Writer, preset, integrator string, masses []float64, dt float64, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runData(preset, integrator, masses, dt, result))
}
