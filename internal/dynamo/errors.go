package dynamo

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrNonPositiveStep indicates a step size that would never cover the span.
	ErrNonPositiveStep = errors.New("dynamo: step must be positive")

	// ErrNilModel indicates a generator built without a model.
	ErrNilModel = errors.New("dynamo: nil model")

	// ErrNilStepper indicates a generator built without a stepper.
	ErrNilStepper = errors.New("dynamo: nil stepper")

	// ErrNilSystem indicates a model whose transition produced no system.
	ErrNilSystem = errors.New("dynamo: model produced nil system")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParam indicates a parameter name the model does not define.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrStateLayout indicates a stepper that needs a [positions..., velocities...]
	// state paired with a system that does not use that layout.
	ErrStateLayout = errors.New("dynamo: stepper requires a [positions, velocities] state layout")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Elapsed time.Duration
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%s): %v", e.Step, e.Elapsed, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
