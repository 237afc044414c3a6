package physics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/integrators"
)

func TestDoublePendulumEquilibrium(t *testing.T) {
	sys := NewDoublePendulum().Transition(nil)

	// At rest hanging straight down
	dx := sys.Derive(dynamo.State{0, 0, 0, 0}, 0)
	for i, v := range dx {
		if math.Abs(v) > 1e-10 {
			t.Errorf("expected zero derivative component %d, got %f", i, v)
		}
	}
}

func TestDoublePendulumSymmetry(t *testing.T) {
	sys := NewDoublePendulum().Transition(nil)

	// Symmetric initial condition should give symmetric accelerations
	dx1 := sys.Derive(dynamo.State{0.1, 0.1, 0, 0}, 0)
	dx2 := sys.Derive(dynamo.State{-0.1, -0.1, 0, 0}, 0)

	if math.Abs(dx1[2]+dx2[2]) > 1e-6 {
		t.Errorf("expected symmetric alpha1: %f vs %f", dx1[2], dx2[2])
	}
	if math.Abs(dx1[3]+dx2[3]) > 1e-6 {
		t.Errorf("expected symmetric alpha2: %f vs %f", dx1[3], dx2[3])
	}
}

func TestDoublePendulumEnergyRK4(t *testing.T) {
	m := NewDoublePendulum()
	g, err := dynamo.NewVectorGenerator(m, integrators.NewRK4(), dynamo.State{0.5, 0.5, 0, 0}, nil, 5*time.Second, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	h := g.System().(dynamo.Hamiltonian)
	_, x0 := g.Observe()
	e0 := h.Energy(x0)

	for range g.Seq() {
	}
	_, x := g.Observe()
	if drift := math.Abs(h.Energy(x)-e0) / math.Abs(e0); drift > 1e-4 {
		t.Errorf("energy drift %e too large", drift)
	}
}

func TestDroneHover(t *testing.T) {
	sys := NewDrone().Transition(nil)

	dx := sys.Derive(dynamo.State{0, 5, 0, 0, 0, 0}, 0)
	if math.Abs(dx[3]) > 0.01 || math.Abs(dx[4]) > 0.01 || math.Abs(dx[5]) > 0.01 {
		t.Errorf("hover should balance: %v", dx)
	}
}

func TestDroneFreefall(t *testing.T) {
	d := NewDrone()
	sys := d.Transition(dynamo.Params{"thrust_l": 0, "thrust_r": 0})

	dx := sys.Derive(dynamo.State{0, 5, 0, 0, 0, 0}, 0)
	if math.Abs(dx[4]+d.Gravity) > 0.1 {
		t.Errorf("expected ay=%f, got %f", -d.Gravity, dx[4])
	}
}

func TestDroneTorque(t *testing.T) {
	sys := NewDrone().Transition(dynamo.Params{"thrust_l": 0, "thrust_r": 5})

	if dx := sys.Derive(dynamo.State{0, 5, 0, 0, 0, 0}, 0); dx[5] <= 0 {
		t.Errorf("angular acceleration should be positive, got %f", dx[5])
	}
}

func TestNBodyMomentum(t *testing.T) {
	m := NewNBody(3)
	x0 := m.DefaultState(nil)
	g, err := dynamo.NewVectorGenerator(m, integrators.NewRK4(), x0, nil, 2*time.Second, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	momentum := func(x dynamo.State) (float64, float64) {
		px, py := 0.0, 0.0
		for i := 0; i < 3; i++ {
			px += x[6+2*i]
			py += x[6+2*i+1]
		}
		return px, py
	}

	for range g.Seq() {
	}
	_, x := g.Observe()
	px, py := momentum(x)
	if math.Abs(px) > 1e-9 || math.Abs(py) > 1e-9 {
		t.Errorf("total momentum drifted to (%e, %e)", px, py)
	}
}

func TestNBodyLeapfrogEnergy(t *testing.T) {
	m := NewNBody(2)
	x0 := dynamo.State{-1, 0, 1, 0, 0, -0.35, 0, 0.35}
	g, err := dynamo.NewVectorGenerator(m, integrators.NewLeapfrog(), x0, dynamo.Params{"bodies": 2}, 10*time.Second, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	h := g.System().(dynamo.Hamiltonian)
	e0 := h.Energy(x0)

	for range g.Seq() {
	}
	_, x := g.Observe()
	if drift := math.Abs(h.Energy(x)-e0) / math.Abs(e0); drift > 1e-3 {
		t.Errorf("energy drift %e too large for a bound binary", drift)
	}
}

func TestNBodyValidate(t *testing.T) {
	if err := NewNBody(3).Validate(dynamo.Params{"bodies": 2.5}); err == nil {
		t.Error("expected error for fractional body count")
	}
	if got := len(NewNBody(3).DefaultState(dynamo.Params{"bodies": 5})); got != 20 {
		t.Errorf("expected 20 components for 5 bodies, got %d", got)
	}
}

func TestNBodyClampsBodies(t *testing.T) {
	nb := NewNBody(3)
	for _, bodies := range []float64{0, -2} {
		u := dynamo.Params{"bodies": bodies}
		if got := len(nb.DefaultState(u)); got != 4 {
			t.Errorf("bodies=%g: expected 4 components, got %d", bodies, got)
		}
		if got := nb.Transition(u).(dynamo.Dimensioned).StateDim(); got != 4 {
			t.Errorf("bodies=%g: expected state dim 4, got %d", bodies, got)
		}
	}
}
