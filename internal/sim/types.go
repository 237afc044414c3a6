package sim

import (
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
)

type Metric interface {
	Name() string
	Observe(x dynamo.State, t time.Duration)
	Value() float64
	Reset()
}

// SystemAware is implemented by metrics that need the system of the run,
// such as energy tracking.
type SystemAware interface {
	Attach(sys dynamo.VectorSystem)
}

type Observer interface {
	OnStep(x dynamo.State, t time.Duration)
}

// Spec describes one run: a model and its input, a stepper, the initial
// state and the span covered with a fixed step.
type Spec struct {
	Name          string
	Model         dynamo.VectorModel
	Stepper       dynamo.VectorStepper
	X0            dynamo.State
	Params        dynamo.Params
	Span          time.Duration
	Step          time.Duration
	ValidateState bool
}

// Result holds every sample yielded before the span was covered, plus the
// state reached by the final advance.
type Result struct {
	Times   []time.Duration
	States  []dynamo.State
	Final   dynamo.State
	Elapsed time.Duration
	Steps   int
	Metrics map[string]float64
}
