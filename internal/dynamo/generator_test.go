package dynamo

import (
	"errors"
	"math"
	"testing"
	"time"
)

type decaySystem struct{ k float64 }

func (s decaySystem) Derive(x, t float64) float64 { return -s.k * x }

type decayModel struct{ builds *int }

func (m decayModel) Transition(k float64) System[float64, float64, float64] {
	if m.builds != nil {
		*m.builds++
	}
	return decaySystem{k: k}
}

type euler struct{}

func (euler) Step(sys System[float64, float64, float64], x *float64, t, dt float64) {
	*x += dt * sys.Derive(*x, t)
}

type scalarGenerator = Generator[float64, float64, float64, time.Duration]

func newDecay(t *testing.T, span, step time.Duration) *scalarGenerator {
	t.Helper()
	g, err := NewGenerator[float64, float64, float64, float64, time.Duration](decayModel{}, euler{}, 1.0, 1.0, span, step)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}

func collect[S, D any, R Real, Q Quantity](g *Generator[S, D, R, Q]) ([]Q, []S) {
	var (
		times  []Q
		states []S
	)
	for t, x := range g.Seq() {
		times = append(times, t)
		states = append(states, x)
	}
	return times, states
}

func TestGenerator_InitialObservation(t *testing.T) {
	g := newDecay(t, time.Second, 100*time.Millisecond)

	elapsed, x := g.Observe()
	if elapsed != 0 {
		t.Errorf("expected elapsed 0, got %v", elapsed)
	}
	if x != 1.0 {
		t.Errorf("expected state 1.0, got %f", x)
	}
	if g.AtEnd() {
		t.Error("fresh generator should not be at end")
	}
}

func TestGenerator_ExponentialDecayHalfSteps(t *testing.T) {
	g := newDecay(t, time.Second, 500*time.Millisecond)

	times, states := collect(g)

	wantTimes := []time.Duration{0, 500 * time.Millisecond}
	wantStates := []float64{1.0, 0.5}

	if len(times) != len(wantTimes) {
		t.Fatalf("expected %d samples, got %d (%v)", len(wantTimes), len(times), times)
	}
	for i := range wantTimes {
		if times[i] != wantTimes[i] {
			t.Errorf("sample %d: expected t=%v, got %v", i, wantTimes[i], times[i])
		}
		if states[i] != wantStates[i] {
			t.Errorf("sample %d: expected x=%f, got %f", i, wantStates[i], states[i])
		}
	}

	elapsed, x := g.Observe()
	if elapsed != time.Second || x != 0.25 {
		t.Errorf("expected final (1s, 0.25), got (%v, %f)", elapsed, x)
	}
	if g.Steps() != 2 {
		t.Errorf("expected 2 advances, got %d", g.Steps())
	}
}

func TestGenerator_UnevenStepStopsPastSpan(t *testing.T) {
	g := newDecay(t, time.Second, 300*time.Millisecond)

	times, _ := collect(g)

	want := []time.Duration{0, 300 * time.Millisecond, 600 * time.Millisecond, 900 * time.Millisecond}
	if len(times) != len(want) {
		t.Fatalf("expected %d samples, got %d (%v)", len(want), len(times), times)
	}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], times[i])
		}
	}
	if g.Elapsed() != 1200*time.Millisecond {
		t.Errorf("expected elapsed 1.2s, got %v", g.Elapsed())
	}
}

func TestGenerator_DegenerateSpan(t *testing.T) {
	for _, span := range []time.Duration{0, -time.Second} {
		g := newDecay(t, span, 100*time.Millisecond)

		if !g.AtEnd() {
			t.Errorf("span %v: expected generator at end", span)
		}
		if !g.Equal(Sentinel[float64, float64, float64, time.Duration]()) {
			t.Errorf("span %v: expected equality with sentinel", span)
		}
		if times, _ := collect(g); len(times) != 0 {
			t.Errorf("span %v: expected no samples, got %d", span, len(times))
		}
	}
}

func TestGenerator_InvalidConstruction(t *testing.T) {
	tests := []struct {
		name string
		m    Model[float64, float64, float64, float64]
		st   Stepper[float64, float64, float64]
		step time.Duration
		want error
	}{
		{"zero step", decayModel{}, euler{}, 0, ErrNonPositiveStep},
		{"negative step", decayModel{}, euler{}, -time.Millisecond, ErrNonPositiveStep},
		{"nil model", nil, euler{}, time.Millisecond, ErrNilModel},
		{"nil stepper", decayModel{}, nil, time.Millisecond, ErrNilStepper},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGenerator[float64, float64, float64, float64, time.Duration](tt.m, tt.st, 1, 1, time.Second, tt.step)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if g != nil {
				t.Error("expected nil generator on error")
			}
		})
	}
}

type nilModel struct{}

func (nilModel) Transition(float64) System[float64, float64, float64] { return nil }

func TestGenerator_NilSystem(t *testing.T) {
	_, err := NewGenerator[float64, float64, float64, float64, time.Duration](nilModel{}, euler{}, 1, 1, time.Second, time.Millisecond)
	if !errors.Is(err, ErrNilSystem) {
		t.Errorf("expected ErrNilSystem, got %v", err)
	}
}

func TestGenerator_ElapsedIsStepMultiple(t *testing.T) {
	step := 7 * time.Millisecond
	g := newDecay(t, time.Hour, step)

	for n := 1; n <= 50; n++ {
		g.Advance()
		if g.Elapsed() != time.Duration(n)*step {
			t.Fatalf("after %d advances: expected %v, got %v", n, time.Duration(n)*step, g.Elapsed())
		}
	}
}

func TestGenerator_TerminationBound(t *testing.T) {
	tests := []struct {
		span, step time.Duration
	}{
		{time.Second, time.Second},
		{time.Second, 2 * time.Second},
		{time.Second, 300 * time.Millisecond},
		{10 * time.Second, 10 * time.Millisecond},
		{time.Nanosecond, time.Nanosecond},
		{999 * time.Millisecond, 333 * time.Millisecond},
	}

	for _, tt := range tests {
		g := newDecay(t, tt.span, tt.step)
		times, _ := collect(g)

		bound := int(math.Ceil(float64(tt.span) / float64(tt.step)))
		if len(times) > bound {
			t.Errorf("span %v step %v: %d samples exceeds bound %d", tt.span, tt.step, len(times), bound)
		}
		if len(times) != bound {
			t.Errorf("span %v step %v: expected %d samples, got %d", tt.span, tt.step, bound, len(times))
		}
	}
}

func TestGenerator_TerminatesNearQuantityLimit(t *testing.T) {
	g := newDecay(t, math.MaxInt64, math.MaxInt64/2+1)

	n := 0
	for range g.Seq() {
		n++
		if n > 2 {
			t.Fatalf("no termination after %d samples; elapsed=%v", n, g.Elapsed())
		}
	}
	if n != 2 {
		t.Errorf("expected 2 samples, got %d", n)
	}
	if !g.AtEnd() || g.Elapsed() != math.MaxInt64 {
		t.Errorf("expected elapsed saturated at the limit, got %v", g.Elapsed())
	}
	if g.Steps() != 2 {
		t.Errorf("expected 2 advances, got %d", g.Steps())
	}
}

func TestGenerator_Equality(t *testing.T) {
	sentinel := Sentinel[float64, float64, float64, time.Duration]()
	var zero scalarGenerator
	var nilGen *scalarGenerator

	if !sentinel.Equal(&zero) || !zero.Equal(sentinel) {
		t.Error("sentinels should compare equal")
	}
	if !sentinel.Equal(nilGen) || !nilGen.Equal(sentinel) {
		t.Error("nil generator should compare as sentinel")
	}

	live := newDecay(t, time.Second, 500*time.Millisecond)
	if live.Equal(sentinel) || sentinel.Equal(live) {
		t.Error("live generator should not equal sentinel")
	}

	live.Advance()
	live.Advance()
	if !live.Equal(sentinel) || !sentinel.Equal(live) {
		t.Error("exhausted generator should equal sentinel")
	}

	other := newDecay(t, 3*time.Second, time.Second)
	for !other.AtEnd() {
		other.Advance()
	}
	if !live.Equal(other) {
		t.Error("exhausted generators should be equal regardless of span and step")
	}
}

func TestGenerator_LiveEquality(t *testing.T) {
	base := func() *scalarGenerator { return newDecay(t, time.Second, 100*time.Millisecond) }

	advanced := base()
	advanced.Advance()

	tests := []struct {
		name  string
		other *scalarGenerator
		equal bool
	}{
		{"identical", base(), true},
		{"different span", newDecay(t, 2*time.Second, 100*time.Millisecond), false},
		{"different step", newDecay(t, time.Second, 200*time.Millisecond), false},
		{"different elapsed", advanced, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := base()
			if got := g.Equal(tt.other); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
			if got := tt.other.Equal(g); got != tt.equal {
				t.Errorf("reverse Equal() = %v, want %v", got, tt.equal)
			}
		})
	}
}

func TestGenerator_SystemBuiltOnce(t *testing.T) {
	builds := 0
	g, err := NewGenerator[float64, float64, float64, float64, time.Duration](decayModel{builds: &builds}, euler{}, 1, 1, time.Second, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	collect(g)

	if builds != 1 {
		t.Errorf("expected one transition, got %d", builds)
	}
}

func TestGenerator_SentinelAdvanceIsNoop(t *testing.T) {
	var g scalarGenerator
	g.Advance()

	if g.Elapsed() != 0 || g.Steps() != 0 {
		t.Errorf("sentinel mutated: elapsed=%v steps=%d", g.Elapsed(), g.Steps())
	}

	var nilGen *scalarGenerator
	nilGen.Advance()
	if tm, x := nilGen.Observe(); tm != 0 || x != 0 {
		t.Errorf("nil generator observed (%v, %f)", tm, x)
	}
}

func TestGenerator_SeqIsSinglePass(t *testing.T) {
	g := newDecay(t, time.Second, 250*time.Millisecond)

	first, _ := collect(g)
	second, _ := collect(g)

	if len(first) != 4 {
		t.Errorf("expected 4 samples on first pass, got %d", len(first))
	}
	if len(second) != 0 {
		t.Errorf("expected exhausted generator to yield nothing, got %d", len(second))
	}
}

func TestGenerator_SeqBreakKeepsPosition(t *testing.T) {
	g := newDecay(t, time.Second, 250*time.Millisecond)

	for tm := range g.Seq() {
		if tm == 250*time.Millisecond {
			break
		}
	}

	times, _ := collect(g)
	want := []time.Duration{250 * time.Millisecond, 500 * time.Millisecond, 750 * time.Millisecond}
	if len(times) != len(want) {
		t.Fatalf("expected %v, got %v", want, times)
	}
	for i := range want {
		if times[i] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], times[i])
		}
	}
}

type vectorDecay struct{}

func (vectorDecay) Transition(u Params) VectorSystem {
	return vectorDecaySystem{k: u.Get("k", 1)}
}

type vectorDecaySystem struct{ k float64 }

func (s vectorDecaySystem) Derive(x State, t float64) State { return x.Scale(-s.k) }

type vectorEuler struct{}

func (vectorEuler) Step(sys VectorSystem, x *State, t, dt float64) {
	x.AddScaled(dt, sys.Derive(*x, t))
}

func TestGenerator_ObserveReturnsSnapshot(t *testing.T) {
	x0 := State{1, 2}
	g, err := NewVectorGenerator(vectorDecay{}, vectorEuler{}, x0, nil, time.Second, 500*time.Millisecond)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	x0[0] = 99
	_, first := g.Observe()
	if first[0] != 1 {
		t.Fatalf("generator aliased x0: got %v", first)
	}

	first[1] = 42
	g.Advance()

	_, second := g.Observe()
	if first[0] != 1 || first[1] != 42 {
		t.Errorf("earlier snapshot changed after advance: %v", first)
	}
	if second[0] != 0.5 || second[1] != 1 {
		t.Errorf("expected [0.5 1], got %v", second)
	}
}

type frames int64

func (f frames) Seconds() float64 { return float64(f) / 60 }

type recordingStepper struct {
	times, steps []float32
}

func (r *recordingStepper) Step(sys System[float32, float32, float32], x *float32, t, dt float32) {
	r.times = append(r.times, t)
	r.steps = append(r.steps, dt)
	*x += dt * sys.Derive(*x, t)
}

type float32Decay struct{}

type float32DecaySystem struct{}

func (float32DecaySystem) Derive(x, t float32) float32 { return -x }

func (float32Decay) Transition(struct{}) System[float32, float32, float32] {
	return float32DecaySystem{}
}

func TestGenerator_CustomQuantity(t *testing.T) {
	rec := &recordingStepper{}
	g, err := NewGenerator[float32, struct{}, float32, float32, frames](float32Decay{}, rec, 1, struct{}{}, 60, 15)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	times, _ := collect(g)

	wantFrames := []frames{0, 15, 30, 45}
	if len(times) != len(wantFrames) {
		t.Fatalf("expected %v, got %v", wantFrames, times)
	}
	for i, f := range wantFrames {
		if times[i] != f {
			t.Errorf("sample %d: expected frame %d, got %d", i, f, times[i])
		}
	}

	wantT := []float32{0, 0.25, 0.5, 0.75}
	for i, tm := range wantT {
		if rec.times[i] != tm {
			t.Errorf("step %d: expected t=%f, got %f", i, tm, rec.times[i])
		}
		if rec.steps[i] != 0.25 {
			t.Errorf("step %d: expected dt=0.25, got %f", i, rec.steps[i])
		}
	}
}
