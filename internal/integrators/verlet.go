package integrators

import "github.com/san-kum/dynseq/internal/dynamo"

// Verlet is velocity Verlet for second-order systems whose state is laid out
// as [positions..., velocities...] and whose derivative carries the
// accelerations in its second half.
type Verlet struct {
	scratch dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (*Verlet) RequiresSecondOrder() {}

func (v *Verlet) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	s := *x
	n := len(s)
	half := n / 2
	if len(v.scratch) != n {
		v.scratch = make(dynamo.State, n)
	}

	acc := sys.Derive(s, t).Clone()
	dt2 := dt * dt

	for i := 0; i < half; i++ {
		v.scratch[i] = s[i] + s[half+i]*dt + 0.5*acc[half+i]*dt2
		v.scratch[half+i] = s[half+i]
	}

	accNew := sys.Derive(v.scratch, t+dt)

	halfDt := 0.5 * dt
	for i := 0; i < half; i++ {
		s[i] = v.scratch[i]
		s[half+i] += (acc[half+i] + accNew[half+i]) * halfDt
	}
}

// Leapfrog is the kick-drift-kick scheme over the same layout as Verlet.
type Leapfrog struct {
	scratch dynamo.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (*Leapfrog) RequiresSecondOrder() {}

func (l *Leapfrog) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	s := *x
	n := len(s)
	half := n / 2
	if len(l.scratch) != n {
		l.scratch = make(dynamo.State, n)
	}

	acc := sys.Derive(s, t)
	halfDt := dt * 0.5

	for i := 0; i < half; i++ {
		l.scratch[half+i] = s[half+i] + acc[half+i]*halfDt
	}

	for i := 0; i < half; i++ {
		l.scratch[i] = s[i] + l.scratch[half+i]*dt
	}

	accNew := sys.Derive(l.scratch, t+dt)

	for i := 0; i < half; i++ {
		s[i] = l.scratch[i]
		s[half+i] = l.scratch[half+i] + accNew[half+i]*halfDt
	}
}
