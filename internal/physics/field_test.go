package physics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/integrators"
)

// relativeDrift runs m with RK4 and compares the final energy to the
// initial one.
func relativeDrift(t *testing.T, m Model, u dynamo.Params, x0 dynamo.State, span time.Duration) float64 {
	t.Helper()
	g, err := dynamo.NewVectorGenerator(m, integrators.NewRK4(), x0, u, span, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	h, ok := g.System().(dynamo.Hamiltonian)
	if !ok {
		t.Fatalf("%s system has no energy", m.Name())
	}
	e0 := h.Energy(x0)
	for range g.Seq() {
	}
	_, x := g.Observe()
	return math.Abs(h.Energy(x)-e0) / math.Abs(e0)
}

func TestCartPolePush(t *testing.T) {
	sys := NewCartPole().Transition(dynamo.Params{"force": 1})

	dx := sys.Derive(dynamo.State{0, 0, 0, 0}, 0)
	if dx[1] <= 0 {
		t.Errorf("cart should accelerate with the force, got %f", dx[1])
	}
	if dx[3] >= 0 {
		t.Errorf("pole should tip back against the push, got %f", dx[3])
	}
}

func TestCartPoleEnergy(t *testing.T) {
	if drift := relativeDrift(t, NewCartPole(), nil, dynamo.State{0, 0, 0.1, 0}, 2*time.Second); drift > 1e-4 {
		t.Errorf("energy drift %e too large", drift)
	}
}

func TestMagneticPendulumRing(t *testing.T) {
	m := NewMagneticPendulum()
	ring := m.Ring(dynamo.Params{"magnets": 4, "radius": 2})
	if len(ring) != 4 {
		t.Fatalf("expected 4 magnets, got %d", len(ring))
	}
	if math.Abs(ring[0].X-2) > 1e-12 || math.Abs(ring[1].Y-2) > 1e-12 {
		t.Errorf("unexpected ring %v", ring)
	}
	if got := ClosestMagnet(ring, dynamo.State{0.1, 1.8, 0, 0}); got != 1 {
		t.Errorf("expected magnet 1 closest, got %d", got)
	}

	// Symmetric magnets cancel over the centre.
	dx := m.Transition(nil).Derive(dynamo.State{0, 0, 0, 0}, 0)
	if math.Abs(dx[2]) > 1e-12 || math.Abs(dx[3]) > 1e-12 {
		t.Errorf("expected no force at the centre, got %v", dx)
	}
}

func TestMagneticPendulumEnergy(t *testing.T) {
	u := dynamo.Params{"damping": 0}
	if drift := relativeDrift(t, NewMagneticPendulum(), u, dynamo.State{0.5, 0.3, 0, 0}, 5*time.Second); drift > 1e-4 {
		t.Errorf("energy drift %e too large", drift)
	}
}

func TestMagneticPendulumValidate(t *testing.T) {
	m := NewMagneticPendulum()
	for _, u := range []dynamo.Params{{"power": 1}, {"magnets": 2.5}, {"height": 0}} {
		if err := m.Validate(u); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("%v: expected ErrParameterBounds, got %v", u, err)
		}
	}
}

func TestWaveFixedEnds(t *testing.T) {
	w := NewWave(11)
	g, err := dynamo.NewVectorGenerator(w, integrators.NewRK4(), w.DefaultState(nil), nil, time.Second, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	for range g.Seq() {
	}
	_, x := g.Observe()
	if x[0] != 0 || x[10] != 0 {
		t.Errorf("ends moved: %f, %f", x[0], x[10])
	}
	// A midpoint pluck stays mirror symmetric.
	for i := 1; i < 5; i++ {
		if math.Abs(x[i]-x[10-i]) > 1e-9 {
			t.Errorf("asymmetry at %d: %f vs %f", i, x[i], x[10-i])
		}
	}
}

func TestWaveEnergy(t *testing.T) {
	w := NewWave(11)
	u := dynamo.Params{"damping": 0}
	if drift := relativeDrift(t, w, u, w.DefaultState(u), 2*time.Second); drift > 1e-6 {
		t.Errorf("energy drift %e too large", drift)
	}
}

func TestWaveValidate(t *testing.T) {
	if err := NewWave(5).Validate(dynamo.Params{"points": 2}); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestWaveClampsPoints(t *testing.T) {
	w := NewWave(11)
	for _, points := range []float64{1, 0, -4} {
		u := dynamo.Params{"points": points}
		sys := w.Transition(u)
		if got := sys.(dynamo.Dimensioned).StateDim(); got != 6 {
			t.Fatalf("points=%g: expected 6 components, got %d", points, got)
		}
		x0 := w.DefaultState(u)
		if len(x0) != 6 {
			t.Fatalf("points=%g: expected 6 components, got %d", points, len(x0))
		}
		for i, v := range sys.Derive(x0, 0) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("points=%g: derivative %d is %g", points, i, v)
			}
		}
	}
}
