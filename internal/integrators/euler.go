package integrators

import "github.com/san-kum/dynseq/internal/dynamo"

// Euler is the explicit first-order rule x += dt * f(x, t).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys dynamo.VectorSystem, x *dynamo.State, t, dt float64) {
	dx := sys.Derive(*x, t)
	x.AddScaled(dt, dx)
}

// ScalarEuler is the explicit Euler rule for one-dimensional systems over any
// real type.
type ScalarEuler[R dynamo.Real] struct{}

func (ScalarEuler[R]) Step(sys dynamo.System[R, R, R], x *R, t, dt R) {
	*x += dt * sys.Derive(*x, t)
}
