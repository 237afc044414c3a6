package integrators

import "github.com/san-kum/dynseq/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta rule. Stage buffers are reused
// between steps, so one RK4 must not be shared by concurrent generators.
type RK4 struct {
	k1, k2, k3, k4 dynamo.State
	scratch        dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(dynamo.State, n)
		r.k2 = make(dynamo.State, n)
		r.k3 = make(dynamo.State, n)
		r.k4 = make(dynamo.State, n)
		r.scratch = make(dynamo.State, n)
	}
}

func (r *RK4) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	s := *x
	n := len(s)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(s, t))

	for i := 0; i < n; i++ {
		r.scratch[i] = s[i] + dt*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = s[i] + dt*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, t+dt*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = s[i] + dt*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, t+dt))

	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		s[i] += dt6 * (r.k1[i] + 2*r.k2[i] + 2*r.k3[i] + r.k4[i])
	}
}
