package physics

import "github.com/san-kum/dynseq/internal/dynamo"

type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }

func (l *Lorenz) Name() string                            { return "lorenz" }
func (l *Lorenz) DefaultState(dynamo.Params) dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }

func (l *Lorenz) Params() dynamo.Params {
	return dynamo.Params{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) Validate(u dynamo.Params) error { return checkParams(l.Name(), u, l.Params()) }

func (l *Lorenz) Transition(u dynamo.Params) dynamo.VectorSystem {
	return lorenzSystem{u.Get("sigma", l.Sigma), u.Get("rho", l.Rho), u.Get("beta", l.Beta)}
}

type lorenzSystem struct{ sigma, rho, beta float64 }

func (l lorenzSystem) StateDim() int { return 3 }

// Derive calculates the Lorenz attractor derivatives.
func (l lorenzSystem) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{l.sigma * (s[1] - s[0]), s[0]*(l.rho-s[2]) - s[1], s[0]*s[1] - l.beta*s[2]}
}
