package sim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
)

type testModel struct{ dim int }

func (m testModel) Transition(u dynamo.Params) dynamo.VectorSystem {
	return testSystem{rate: u.Get("rate", 1), dim: m.dim}
}

type testSystem struct {
	rate float64
	dim  int
}

func (s testSystem) Derive(x dynamo.State, t float64) dynamo.State { return x.Scale(-s.rate) }
func (s testSystem) StateDim() int                                 { return s.dim }
func (s testSystem) Energy(x dynamo.State) float64                 { return 0.5 * x[0] * x[0] }

type testStepper struct{}

func (testStepper) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	x.AddScaled(dt, sys.Derive(*x, t))
}

// splitStepper asks for a [positions, velocities] layout that testSystem
// does not have.
type splitStepper struct{ testStepper }

func (splitStepper) RequiresSecondOrder() {}

func testSpec() Spec {
	return Spec{
		Name:    "decay",
		Model:   testModel{dim: 1},
		Stepper: testStepper{},
		X0:      dynamo.State{1.0},
		Span:    time.Second,
		Step:    100 * time.Millisecond,
	}
}

func TestSimulatorRun(t *testing.T) {
	result, err := New().Run(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 10 {
		t.Errorf("expected 10 states, got %d", len(result.States))
	}

	if len(result.Times) != 10 {
		t.Errorf("expected 10 times, got %d", len(result.Times))
	}

	if result.Steps != 10 {
		t.Errorf("expected 10 steps, got %d", result.Steps)
	}

	if result.Elapsed != time.Second {
		t.Errorf("expected elapsed 1s, got %v", result.Elapsed)
	}

	expected := math.Exp(-1.0)
	if math.Abs(result.Final[0]-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, result.Final[0])
	}

	for i, tm := range result.Times {
		if tm != time.Duration(i)*100*time.Millisecond {
			t.Errorf("sample %d at %v", i, tm)
		}
	}
}

func TestSimulatorRun_StatesAreIndependent(t *testing.T) {
	result, err := New().Run(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := 1; i < len(result.States); i++ {
		if result.States[i][0] >= result.States[i-1][0] {
			t.Fatalf("state %d (%f) did not decay from %f; samples share storage", i, result.States[i][0], result.States[i-1][0])
		}
	}
}

func TestSimulatorInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Spec)
		want error
	}{
		{"zero step", func(s *Spec) { s.Step = 0 }, dynamo.ErrNonPositiveStep},
		{"negative step", func(s *Spec) { s.Step = -time.Millisecond }, dynamo.ErrNonPositiveStep},
		{"nil model", func(s *Spec) { s.Model = nil }, dynamo.ErrNilModel},
		{"nil stepper", func(s *Spec) { s.Stepper = nil }, dynamo.ErrNilStepper},
		{"dimension mismatch", func(s *Spec) { s.X0 = dynamo.State{1, 2} }, dynamo.ErrDimensionMismatch},
		{"first-order system with split stepper", func(s *Spec) { s.Stepper = splitStepper{} }, dynamo.ErrStateLayout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			tt.edit(&spec)
			_, err := New().Run(context.Background(), spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSimulatorZeroSpan(t *testing.T) {
	spec := testSpec()
	spec.Span = 0

	result, err := New().Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.States) != 0 || result.Steps != 0 {
		t.Errorf("expected no samples, got %d states and %d steps", len(result.States), result.Steps)
	}
	if result.Final[0] != 1.0 {
		t.Errorf("expected final state to stay at x0, got %v", result.Final)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New().Run(ctx, testSpec())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || len(result.States) != 0 {
		t.Error("expected empty partial result")
	}
}

type explodingStepper struct{}

func (explodingStepper) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	(*x)[0] = math.Inf(1)
}

func TestSimulatorValidateState(t *testing.T) {
	spec := testSpec()
	spec.Stepper = explodingStepper{}
	spec.ValidateState = true

	_, err := New().Run(context.Background(), spec)

	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationError, got %v", err)
	}
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
	if simErr.Step != 1 || simErr.Elapsed != 100*time.Millisecond {
		t.Errorf("expected failure at step 1 (100ms), got step %d (%v)", simErr.Step, simErr.Elapsed)
	}

	spec.ValidateState = false
	if _, err := New().Run(context.Background(), spec); err != nil {
		t.Errorf("expected invalid states to pass without validation, got %v", err)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(x dynamo.State, tm time.Duration) {
	t.count++
	t.sum += x[0]
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	s := New()

	metric := &testMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), testSpec())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}

	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}

	if _, err := s.Run(context.Background(), testSpec()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if metric.count != 10 {
		t.Errorf("expected metric reset between runs, got %d observations", metric.count)
	}
}

type countingObserver struct{ times []time.Duration }

func (c *countingObserver) OnStep(x dynamo.State, t time.Duration) { c.times = append(c.times, t) }

func TestSimulatorRunWithCallback(t *testing.T) {
	var seen []time.Duration
	err := New().RunWithCallback(context.Background(), testSpec(), func(tm time.Duration, x dynamo.State) bool {
		seen = append(seen, tm)
		return tm < 300*time.Millisecond
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(seen) != 4 {
		t.Errorf("expected callback to stop after 4 samples, got %d", len(seen))
	}
}

func TestSimulatorObservers(t *testing.T) {
	s := New()
	obs := &countingObserver{}
	s.AddObserver(obs)

	spec := testSpec()
	spec.Step = 300 * time.Millisecond

	if _, err := s.Run(context.Background(), spec); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(obs.times) != 4 {
		t.Errorf("expected 4 observed steps, got %d", len(obs.times))
	}
}
