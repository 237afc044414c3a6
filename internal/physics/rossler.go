package physics

import "github.com/san-kum/dynseq/internal/dynamo"

type Rossler struct{ A, B, C float64 }

func NewRossler() *Rossler { return &Rossler{0.2, 0.2, 5.7} }

func (r *Rossler) Name() string                            { return "rossler" }
func (r *Rossler) DefaultState(dynamo.Params) dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }

func (r *Rossler) Params() dynamo.Params {
	return dynamo.Params{"a": r.A, "b": r.B, "c": r.C}
}

func (r *Rossler) Validate(u dynamo.Params) error { return checkParams(r.Name(), u, r.Params()) }

func (r *Rossler) Transition(u dynamo.Params) dynamo.VectorSystem {
	return rosslerSystem{u.Get("a", r.A), u.Get("b", r.B), u.Get("c", r.C)}
}

type rosslerSystem struct{ a, b, c float64 }

func (r rosslerSystem) StateDim() int { return 3 }

// Derive calculates the Rossler attractor derivatives.
func (r rosslerSystem) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{-s[1] - s[2], s[0] + r.a*s[1], r.b + s[2]*(s[0]-r.c)}
}
