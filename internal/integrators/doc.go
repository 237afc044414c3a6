// Package integrators provides fixed-step single-step integration rules.
//
// Every stepper implements [dynamo.VectorStepper] and advances the state in
// place. Steppers with stage buffers keep them between calls, so each
// generator needs its own stepper value.
package integrators

import "github.com/san-kum/dynseq/internal/dynamo"

var (
	_ dynamo.VectorStepper                      = (*Euler)(nil)
	_ dynamo.VectorStepper                      = (*Midpoint)(nil)
	_ dynamo.VectorStepper                      = (*RK4)(nil)
	_ dynamo.VectorStepper                      = (*RK45)(nil)
	_ dynamo.VectorStepper                      = (*Verlet)(nil)
	_ dynamo.VectorStepper                      = (*Leapfrog)(nil)
	_ dynamo.Stepper[float64, float64, float64] = ScalarEuler[float64]{}
	_ dynamo.Stepper[float32, float32, float32] = ScalarEuler[float32]{}
)
