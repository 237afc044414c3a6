package integrators

import "github.com/san-kum/dynseq/internal/dynamo"

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0
)

// RK45 advances with the fifth-order Dormand-Prince solution at a fixed step.
// The embedded fourth-order estimate is not computed.
type RK45 struct {
	stage dynamo.State
}

func NewRK45() *RK45 {
	return &RK45{}
}

func (r *RK45) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	s := *x
	n := len(s)
	if len(r.stage) != n {
		r.stage = make(dynamo.State, n)
	}

	k1 := sys.Derive(s, t).Clone()

	for i := 0; i < n; i++ {
		r.stage[i] = s[i] + dt*b21*k1[i]
	}
	k2 := sys.Derive(r.stage, t+a2*dt).Clone()

	for i := 0; i < n; i++ {
		r.stage[i] = s[i] + dt*(b31*k1[i]+b32*k2[i])
	}
	k3 := sys.Derive(r.stage, t+a3*dt).Clone()

	for i := 0; i < n; i++ {
		r.stage[i] = s[i] + dt*(b41*k1[i]+b42*k2[i]+b43*k3[i])
	}
	k4 := sys.Derive(r.stage, t+a4*dt).Clone()

	for i := 0; i < n; i++ {
		r.stage[i] = s[i] + dt*(b51*k1[i]+b52*k2[i]+b53*k3[i]+b54*k4[i])
	}
	k5 := sys.Derive(r.stage, t+a5*dt).Clone()

	for i := 0; i < n; i++ {
		r.stage[i] = s[i] + dt*(b61*k1[i]+b62*k2[i]+b63*k3[i]+b64*k4[i]+b65*k5[i])
	}
	k6 := sys.Derive(r.stage, t+dt)

	for i := 0; i < n; i++ {
		s[i] += dt * (c1*k1[i] + c3*k3[i] + c4*k4[i] + c5*k5[i] + c6*k6[i])
	}
}
