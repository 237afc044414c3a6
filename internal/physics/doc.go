// Package physics provides dynamical system models for simulation.
//
// Each model implements [dynamo.VectorModel]: Transition resolves the input
// [dynamo.Params] against the model's defaults once and returns an immutable
// system evaluating the differential equations:
//
//   - [Decay]: exponential relaxation dx/dt = -k x
//   - [Pendulum]: damped pendulum with constant torque
//   - [SpringMass]: chain of masses joined by springs
//   - [Lorenz], [Rossler]: chaotic attractors
//   - [VanDerPol], [Duffing], [DoubleWell]: nonlinear oscillators
//   - [CoupledPendulums]: two pendulums joined by a spring
//   - [DoublePendulum]: chaotic pendulum hung from a pendulum
//   - [NBody]: planar gravitating bodies
//   - [Drone]: planar bicopter under fixed rotor thrusts
//   - [CartPole]: pole balanced on a pushed cart
//   - [MagneticPendulum]: bob attracted by magnets on a ring
//   - [Wave]: finite-difference string with fixed ends
//
// Systems with a conserved quantity also implement [dynamo.Hamiltonian]:
//
//	sys := physics.NewPendulum().Transition(nil)
//	if h, ok := sys.(dynamo.Hamiltonian); ok {
//	    energy := h.Energy(state)
//	}
package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// Model is implemented by every model in this package.
type Model interface {
	dynamo.VectorModel
	Name() string
	Params() dynamo.Params
	DefaultState(u dynamo.Params) dynamo.State
	Validate(u dynamo.Params) error
}

var (
	_ Model = (*Decay)(nil)
	_ Model = (*Pendulum)(nil)
	_ Model = (*SpringMass)(nil)
	_ Model = (*Lorenz)(nil)
	_ Model = (*Rossler)(nil)
	_ Model = (*VanDerPol)(nil)
	_ Model = (*Duffing)(nil)
	_ Model = (*DoubleWell)(nil)
	_ Model = (*CoupledPendulums)(nil)
	_ Model = (*DoublePendulum)(nil)
	_ Model = (*NBody)(nil)
	_ Model = (*Drone)(nil)
	_ Model = (*CartPole)(nil)
	_ Model = (*MagneticPendulum)(nil)
	_ Model = (*Wave)(nil)
)

// checkParams rejects names absent from known and non-positive values for
// the names listed in positive.
func checkParams(model string, u, known dynamo.Params, positive ...string) error {
	for _, k := range u.Keys() {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("%s: %q: %w", model, k, dynamo.ErrUnknownParam)
		}
		if v := u[k]; math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %s=%g: %w", model, k, v, dynamo.ErrParameterBounds)
		}
	}
	merged := known.Merge(u)
	for _, k := range positive {
		if v := merged[k]; v <= 0 {
			return fmt.Errorf("%s: %s=%g must be positive: %w", model, k, v, dynamo.ErrParameterBounds)
		}
	}
	return nil
}
