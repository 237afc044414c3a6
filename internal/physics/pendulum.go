package physics

import (
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// Pendulum is a damped rigid pendulum driven by a constant torque.
// State: [theta, omega]
type Pendulum struct {
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
	Torque  float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Name() string { return "pendulum" }

func (p *Pendulum) Params() dynamo.Params {
	return dynamo.Params{
		"mass":    p.Mass,
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
		"torque":  p.Torque,
	}
}

func (p *Pendulum) DefaultState(dynamo.Params) dynamo.State { return dynamo.State{0.5, 0.0} }

func (p *Pendulum) Validate(u dynamo.Params) error {
	return checkParams(p.Name(), u, p.Params(), "mass", "length")
}

func (p *Pendulum) Transition(u dynamo.Params) dynamo.VectorSystem {
	return pendulumSystem{
		mass:    u.Get("mass", p.Mass),
		length:  u.Get("length", p.Length),
		damping: u.Get("damping", p.Damping),
		gravity: u.Get("gravity", p.Gravity),
		torque:  u.Get("torque", p.Torque),
	}
}

type pendulumSystem struct {
	mass, length, damping, gravity, torque float64
}

func (p pendulumSystem) StateDim() int { return 2 }
func (pendulumSystem) SecondOrder()    {}

func (p pendulumSystem) Derive(x dynamo.State, _ float64) dynamo.State {
	theta := x[0]
	omega := x[1]

	alpha := (-p.damping*omega - p.mass*p.gravity*p.length*math.Sin(theta) + p.torque) / (p.mass * p.length * p.length)

	return dynamo.State{omega, alpha}
}

func (p pendulumSystem) Energy(x dynamo.State) float64 {
	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := p.length * x[1]
	ke := 0.5 * p.mass * v * v
	pe := p.mass * p.gravity * p.length * (1.0 - math.Cos(x[0]))
	return ke + pe
}
