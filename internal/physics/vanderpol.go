package physics

import "github.com/san-kum/dynseq/internal/dynamo"

// VanDerPol implements the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
// Equations:
//
//	dx/dt = y
//	dy/dt = μ(1 - x²)y - x
type VanDerPol struct {
	Mu float64 // Nonlinearity parameter
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{
		Mu: 1.0, // Classic value for limit cycle
	}
}

func (v *VanDerPol) Name() string { return "vanderpol" }

func (v *VanDerPol) DefaultState(dynamo.Params) dynamo.State {
	return dynamo.State{2.0, 0.0}
}

func (v *VanDerPol) Params() dynamo.Params {
	return dynamo.Params{
		"mu": v.Mu,
	}
}

func (v *VanDerPol) Validate(u dynamo.Params) error { return checkParams(v.Name(), u, v.Params()) }

func (v *VanDerPol) Transition(u dynamo.Params) dynamo.VectorSystem {
	return vanDerPolSystem{mu: u.Get("mu", v.Mu)}
}

type vanDerPolSystem struct{ mu float64 }

func (v vanDerPolSystem) StateDim() int { return 2 }
func (vanDerPolSystem) SecondOrder()    {}

func (v vanDerPolSystem) Derive(state dynamo.State, _ float64) dynamo.State {
	x, y := state[0], state[1]

	dx := y
	dy := v.mu*(1-x*x)*y - x

	return dynamo.State{dx, dy}
}
