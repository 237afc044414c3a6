// Package dynamo provides the core stepping primitives for dynamical systems.
//
// A simulation is assembled from three pluggable pieces:
//
//   - [Model]: maps an input to a [System] once (dX/dt = f(X, t))
//   - [Stepper]: one numerical integration rule, advancing state in place
//   - [Quantity]: the duration type used for span, step and elapsed time
//
// The [Generator] owns the state and the System, invokes the Stepper once per
// advance and reports (elapsed, state) samples lazily until the span is
// covered. A zero Generator is the terminal sentinel.
//
// # Example
//
//	g, err := dynamo.NewVectorGenerator(physics.NewDecay(), integrators.NewEuler(),
//		dynamo.State{1}, nil, time.Second, 100*time.Millisecond)
//	if err != nil {
//		return err
//	}
//	for t, x := range g.Seq() {
//		fmt.Println(t, x)
//	}
//
// # Sampling
//
// Samples are produced only while elapsed < span. The state reached by the
// advance that covers the span is never yielded by [Generator.Seq] or
// [Range.All]; it stays readable through [Generator.Observe].
//
// # Thread Safety
//
// Generator instances are NOT thread-safe. The zero sentinel holds no state
// and may be shared freely.
package dynamo
