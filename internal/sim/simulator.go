package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
)

const maxPrealloc = 1 << 16

type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Start builds the generator for spec without advancing it.
func (s *Simulator) Start(spec Spec) (*dynamo.VectorGenerator, error) {
	g, err := dynamo.NewVectorGenerator(spec.Model, spec.Stepper, spec.X0, spec.Params, spec.Span, spec.Step)
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.label(), err)
	}

	if d, ok := g.System().(dynamo.Dimensioned); ok && d.StateDim() != len(spec.X0) {
		return nil, fmt.Errorf("start %s: state has %d components, system expects %d: %w",
			spec.label(), len(spec.X0), d.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if err := dynamo.CheckLayout(g.System(), spec.Stepper, spec.X0); err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.label(), err)
	}

	return g, nil
}

func (s *Simulator) Run(ctx context.Context, spec Spec) (*Result, error) {
	g, err := s.Start(spec)
	if err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
		if a, ok := m.(SystemAware); ok {
			a.Attach(g.System())
		}
	}

	n := expectedSamples(spec.Span, spec.Step)
	result := &Result{
		Times:   make([]time.Duration, 0, n),
		States:  make([]dynamo.State, 0, n),
		Metrics: make(map[string]float64),
	}

	for t, x := range g.Seq() {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if spec.ValidateState && !x.IsValid() {
			return result, &dynamo.SimulationError{Step: g.Steps(), Elapsed: t, State: x, Wrapped: dynamo.ErrInvalidState}
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		result.Times = append(result.Times, t)
		result.States = append(result.States, x)
	}

	result.Elapsed, result.Final = g.Observe()
	result.Steps = g.Steps()

	if spec.ValidateState && !result.Final.IsValid() {
		return result, &dynamo.SimulationError{Step: result.Steps, Elapsed: result.Elapsed, State: result.Final, Wrapped: dynamo.ErrInvalidState}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback streams samples to callback without collecting them. The
// run stops early when callback returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, spec Spec, callback func(time.Duration, dynamo.State) bool) error {
	g, err := s.Start(spec)
	if err != nil {
		return err
	}

	for t, x := range g.Seq() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if spec.ValidateState && !x.IsValid() {
			return &dynamo.SimulationError{Step: g.Steps(), Elapsed: t, State: x, Wrapped: dynamo.ErrInvalidState}
		}

		if !callback(t, x) {
			return nil
		}
	}

	return nil
}

func (s Spec) label() string {
	if s.Name != "" {
		return s.Name
	}
	return "simulation"
}

func expectedSamples(span, step time.Duration) int {
	if span <= 0 || step <= 0 {
		return 0
	}
	n := (span + step - 1) / step
	if n > maxPrealloc {
		return maxPrealloc
	}
	return int(n)
}
