package physics

import (
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// DoublePendulum is two rigid pendulums hung end to end, the upper one
// driven by a constant torque.
// State: [theta1, theta2, omega1, omega2]
type DoublePendulum struct {
	M1, M2  float64
	L1, L2  float64
	Gravity float64
	Torque  float64
}

func NewDoublePendulum() *DoublePendulum {
	return &DoublePendulum{
		M1: DefaultMass, M2: DefaultMass,
		L1: 1.0, L2: 1.0,
		Gravity: 9.81,
	}
}

func (d *DoublePendulum) Name() string { return "double_pendulum" }

func (d *DoublePendulum) Params() dynamo.Params {
	return dynamo.Params{"m1": d.M1, "m2": d.M2, "l1": d.L1, "l2": d.L2, "gravity": d.Gravity, "torque": d.Torque}
}

func (d *DoublePendulum) DefaultState(dynamo.Params) dynamo.State {
	return dynamo.State{1.5, 1.5, 0, 0}
}

func (d *DoublePendulum) Validate(u dynamo.Params) error {
	return checkParams(d.Name(), u, d.Params(), "m1", "m2", "l1", "l2")
}

func (d *DoublePendulum) Transition(u dynamo.Params) dynamo.VectorSystem {
	return doublePendulumSystem{
		m1:      u.Get("m1", d.M1),
		m2:      u.Get("m2", d.M2),
		l1:      u.Get("l1", d.L1),
		l2:      u.Get("l2", d.L2),
		gravity: u.Get("gravity", d.Gravity),
		torque:  u.Get("torque", d.Torque),
	}
}

type doublePendulumSystem struct {
	m1, m2, l1, l2, gravity, torque float64
}

func (d doublePendulumSystem) StateDim() int { return 4 }
func (doublePendulumSystem) SecondOrder()    {}

func (d doublePendulumSystem) Derive(x dynamo.State, _ float64) dynamo.State {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.m1, d.m2, d.l1, d.l2, d.gravity

	delta := theta2 - theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	alpha1 := (m2*l1*omega1*omega1*sinD*cosD +
		m2*g*math.Sin(theta2)*cosD +
		m2*l2*omega2*omega2*sinD -
		(m1+m2)*g*math.Sin(theta1) + d.torque) / den1

	alpha2 := (-m2*l2*omega2*omega2*sinD*cosD +
		(m1+m2)*g*math.Sin(theta1)*cosD -
		(m1+m2)*l1*omega1*omega1*sinD -
		(m1+m2)*g*math.Sin(theta2)) / den2

	return dynamo.State{omega1, omega2, alpha1, alpha2}
}

func (d doublePendulumSystem) Energy(x dynamo.State) float64 {
	theta1, theta2, omega1, omega2 := x[0], x[1], x[2], x[3]
	m1, m2, l1, l2, g := d.m1, d.m2, d.l1, d.l2, d.gravity

	v1sq := l1 * l1 * omega1 * omega1
	v2sq := v1sq + l2*l2*omega2*omega2 +
		2*l1*l2*omega1*omega2*math.Cos(theta1-theta2)

	ke := 0.5*m1*v1sq + 0.5*m2*v2sq
	y1 := -l1 * math.Cos(theta1)
	y2 := y1 - l2*math.Cos(theta2)
	pe := m1*g*y1 + m2*g*y2

	return ke + pe
}
