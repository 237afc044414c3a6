package integrators

import "github.com/san-kum/dynseq/internal/dynamo"

// Midpoint is the second-order Runge-Kutta rule evaluating the slope at the
// half step.
type Midpoint struct {
	scratch dynamo.State
}

func NewMidpoint() *Midpoint {
	return &Midpoint{}
}

func (m *Midpoint) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	n := len(*x)
	if len(m.scratch) != n {
		m.scratch = make(dynamo.State, n)
	}

	k1 := sys.Derive(*x, t)
	for i := 0; i < n; i++ {
		m.scratch[i] = (*x)[i] + dt*0.5*k1[i]
	}

	k2 := sys.Derive(m.scratch, t+dt*0.5)
	x.AddScaled(dt, k2)
}
