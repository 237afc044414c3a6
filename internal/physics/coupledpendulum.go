package physics

import (
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// CoupledPendulums implements two pendulums connected by a spring.
// State: [theta1, omega1, theta2, omega2]
// Demonstrates energy transfer and coupled oscillations.
type CoupledPendulums struct {
	L float64 // Pendulum length
	G float64 // Gravity
	K float64 // Spring constant (coupling strength)
	M float64 // Mass of each bob
}

func NewCoupledPendulums() *CoupledPendulums {
	return &CoupledPendulums{
		L: 1.0,
		G: 9.81,
		K: 20.0,
		M: 1.0,
	}
}

func (c *CoupledPendulums) Name() string { return "coupled_pendulums" }

func (c *CoupledPendulums) DefaultState(dynamo.Params) dynamo.State {
	return dynamo.State{0.5, 0.0, 0.0, 0.0} // One pendulum displaced
}

func (c *CoupledPendulums) Params() dynamo.Params {
	return dynamo.Params{"l": c.L, "g": c.G, "k": c.K, "m": c.M}
}

func (c *CoupledPendulums) Validate(u dynamo.Params) error {
	return checkParams(c.Name(), u, c.Params(), "l", "m")
}

func (c *CoupledPendulums) Transition(u dynamo.Params) dynamo.VectorSystem {
	return coupledSystem{
		l: u.Get("l", c.L),
		g: u.Get("g", c.G),
		k: u.Get("k", c.K),
		m: u.Get("m", c.M),
	}
}

type coupledSystem struct{ l, g, k, m float64 }

func (c coupledSystem) StateDim() int { return 4 }

func (c coupledSystem) Derive(state dynamo.State, _ float64) dynamo.State {
	theta1, omega1, theta2, omega2 := state[0], state[1], state[2], state[3]

	// Small angle approximation for the spring.
	coupling := c.k * (theta2 - theta1) / c.m

	alpha1 := -c.g/c.l*math.Sin(theta1) + coupling/c.l
	alpha2 := -c.g/c.l*math.Sin(theta2) - coupling/c.l

	return dynamo.State{omega1, alpha1, omega2, alpha2}
}
