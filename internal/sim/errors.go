package sim

import (
	"errors"
	"fmt"
)

// Failure categories of the physics core.
var (
	// ErrInvalidInput indicates malformed or non-physical initialization
	// parameters: mismatched sequence lengths, a non-positive mass, or a
	// non-positive or non-finite time step.
	ErrInvalidInput = errors.New("sim: invalid input")

	// ErrNumericalFailure indicates a step produced a non-finite component.
	// The caller decides whether to halt or restart with adjusted parameters;
	// the core never retries.
	ErrNumericalFailure = errors.New("sim: numerical failure (NaN or Inf in state)")
)

// StepError wraps a failure with the step index and simulation time at which
// it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
