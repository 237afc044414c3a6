package physics

import (
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// DoubleWell models a particle in a bistable potential well under a
// constant external force.
type DoubleWell struct {
	A, B, Mass, Damping, Force float64
}

func NewDoubleWell() *DoubleWell {
	return &DoubleWell{A: 1.0, B: 1.0, Mass: 1.0, Damping: 0.1}
}

func (d *DoubleWell) Name() string { return "doublewell" }

func (d *DoubleWell) DefaultState(u dynamo.Params) dynamo.State {
	return dynamo.State{math.Sqrt(u.Get("b", d.B)) + 0.1, 0}
}

func (d *DoubleWell) Params() dynamo.Params {
	return dynamo.Params{"a": d.A, "b": d.B, "mass": d.Mass, "damping": d.Damping, "force": d.Force}
}

func (d *DoubleWell) Validate(u dynamo.Params) error {
	return checkParams(d.Name(), u, d.Params(), "mass", "b")
}

func (d *DoubleWell) Transition(u dynamo.Params) dynamo.VectorSystem {
	return doubleWellSystem{
		a:       u.Get("a", d.A),
		b:       u.Get("b", d.B),
		mass:    u.Get("mass", d.Mass),
		damping: u.Get("damping", d.Damping),
		force:   u.Get("force", d.Force),
	}
}

type doubleWellSystem struct {
	a, b, mass, damping, force float64
}

func (d doubleWellSystem) StateDim() int { return 2 }
func (doubleWellSystem) SecondOrder()    {}

func (d doubleWellSystem) Derive(s dynamo.State, _ float64) dynamo.State {
	x, v := s[0], s[1]
	return dynamo.State{v, (-4*d.a*x*(x*x-d.b) - d.damping*v + d.force) / d.mass}
}

func (d doubleWellSystem) Energy(s dynamo.State) float64 {
	x, v := s[0], s[1]
	return 0.5*d.mass*v*v + d.a*math.Pow(x*x-d.b, 2)
}
