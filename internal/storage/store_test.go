package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arvid-sk/threebody/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		States: []sim.State{
			{1, 0, -1, 0, 0, 0, 0, 1, 0, -1, 0, 0.5},
			{1, 0.1, -1, -0.1, 0, 0.05, 0, 1, 0, -1, 0, 0.5},
		},
		Times:      []float64{0, 2e4},
		StepsTaken: 1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	masses := []float64{1.989e30, 1.989e30, 1.989e30}
	runID, err := st.Save("earths", "rk4", masses, 2e4, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "earths" {
		t.Errorf("expected preset 'earths', got %q", meta.Preset)
	}
	if meta.Bodies != 3 {
		t.Errorf("expected 3 bodies, got %d", meta.Bodies)
	}
	if meta.Dt != 2e4 {
		t.Errorf("expected dt 2e4, got %g", meta.Dt)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 states and 2 times, got %d and %d", len(states), len(times))
	}
	want := testResult()
	for i := range want.States {
		for j := range want.States[i] {
			if states[i][j] != want.States[i][j] {
				t.Errorf("state %d component %d: got %v, want %v", i, j, states[i][j], want.States[i][j])
			}
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("binary", "euler", []float64{1, 1, 1}, 1e4, testResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("earths", "rk4", []float64{1, 1, 1}, 2e4, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "states.csv")); os.IsNotExist(err) {
		t.Error("states.csv not created")
	}
}
