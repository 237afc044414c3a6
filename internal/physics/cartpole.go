package physics

import (
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// CartPole is a uniform pole of half-length l hinged on a cart that a
// constant horizontal force pushes. Theta is measured from upright.
// State: [x, v, theta, omega]
type CartPole struct {
	CartMass   float64
	PoleMass   float64
	PoleLength float64
	Gravity    float64
	Force      float64
}

func NewCartPole() *CartPole {
	return &CartPole{
		CartMass:   1.0,
		PoleMass:   0.1,
		PoleLength: 1.0,
		Gravity:    9.81,
	}
}

func (c *CartPole) Name() string { return "cartpole" }

func (c *CartPole) Params() dynamo.Params {
	return dynamo.Params{
		"cart_mass": c.CartMass,
		"pole_mass": c.PoleMass,
		"length":    c.PoleLength,
		"gravity":   c.Gravity,
		"force":     c.Force,
	}
}

func (c *CartPole) DefaultState(dynamo.Params) dynamo.State { return dynamo.State{0, 0, 0.1, 0} }

func (c *CartPole) Validate(u dynamo.Params) error {
	return checkParams(c.Name(), u, c.Params(), "cart_mass", "pole_mass", "length")
}

func (c *CartPole) Transition(u dynamo.Params) dynamo.VectorSystem {
	return cartPoleSystem{
		mc:    u.Get("cart_mass", c.CartMass),
		mp:    u.Get("pole_mass", c.PoleMass),
		l:     u.Get("length", c.PoleLength),
		g:     u.Get("gravity", c.Gravity),
		force: u.Get("force", c.Force),
	}
}

type cartPoleSystem struct {
	mc, mp, l, g, force float64
}

func (c cartPoleSystem) StateDim() int { return 4 }

func (c cartPoleSystem) Derive(x dynamo.State, _ float64) dynamo.State {
	vel, theta, omega := x[1], x[2], x[3]
	total := c.mc + c.mp

	sint, cost := math.Sin(theta), math.Cos(theta)
	temp := (c.force + c.mp*c.l*omega*omega*sint) / total
	thetaAcc := (c.g*sint - cost*temp) / (c.l * (4.0/3.0 - c.mp*cost*cost/total))
	xAcc := temp - c.mp*c.l*thetaAcc*cost/total

	return dynamo.State{vel, xAcc, omega, thetaAcc}
}

// Energy is conserved only without the driving force.
func (c cartPoleSystem) Energy(x dynamo.State) float64 {
	v, theta, omega := x[1], x[2], x[3]
	ke := 0.5*(c.mc+c.mp)*v*v + c.mp*c.l*v*omega*math.Cos(theta) + 0.5*c.mp*(4.0/3.0)*c.l*c.l*omega*omega
	pe := c.mp * c.g * c.l * math.Cos(theta)
	return ke + pe
}
