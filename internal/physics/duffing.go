package physics

import (
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// Duffing implements a nonlinear forced oscillator. The forcing phase is
// carried as a third state component so the system stays autonomous.
// State: [x, v, phi]
type Duffing struct {
	Alpha, Beta, Delta, Gamma, Omega float64
}

func NewDuffing() *Duffing {
	return &Duffing{-1.0, 1.0, 0.3, 0.5, 1.2}
}

func (d *Duffing) Name() string                            { return "duffing" }
func (d *Duffing) DefaultState(dynamo.Params) dynamo.State { return dynamo.State{1.0, 0.0, 0.0} }

func (d *Duffing) Params() dynamo.Params {
	return dynamo.Params{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta, "gamma": d.Gamma, "omega": d.Omega}
}

func (d *Duffing) Validate(u dynamo.Params) error { return checkParams(d.Name(), u, d.Params()) }

func (d *Duffing) Transition(u dynamo.Params) dynamo.VectorSystem {
	return duffingSystem{
		alpha: u.Get("alpha", d.Alpha),
		beta:  u.Get("beta", d.Beta),
		delta: u.Get("delta", d.Delta),
		gamma: u.Get("gamma", d.Gamma),
		omega: u.Get("omega", d.Omega),
	}
}

type duffingSystem struct {
	alpha, beta, delta, gamma, omega float64
}

func (d duffingSystem) StateDim() int { return 3 }

func (d duffingSystem) Derive(s dynamo.State, _ float64) dynamo.State {
	x, v, phi := s[0], s[1], s[2]
	return dynamo.State{v, -d.delta*v - d.alpha*x - d.beta*x*x*x + d.gamma*math.Cos(phi), d.omega}
}

// Energy excludes the forcing term, so it is conserved only for zero
// damping and forcing.
func (d duffingSystem) Energy(s dynamo.State) float64 {
	x, v := s[0], s[1]
	return 0.5*v*v + 0.5*d.alpha*x*x + 0.25*d.beta*x*x*x*x
}
