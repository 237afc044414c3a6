package physics

import (
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// Drone is a planar bicopter with fixed left and right rotor thrusts.
// State: [x, y, theta, vx, vy, omega]
type Drone struct {
	Mass, Inertia, ArmLength float64
	Gravity, DragCoeff       float64
	AngDrag                  float64
	// ThrustL and ThrustR default to hover.
	ThrustL, ThrustR float64
}

func NewDrone() *Drone {
	d := &Drone{
		Mass:      DefaultMass,
		Inertia:   0.1,
		ArmLength: 0.25,
		Gravity:   9.81,
		DragCoeff: 0.1,
		AngDrag:   0.05,
	}
	d.ThrustL, d.ThrustR = d.HoverThrust(), d.HoverThrust()
	return d
}

func (d *Drone) Name() string { return "drone" }

func (d *Drone) Params() dynamo.Params {
	return dynamo.Params{
		"mass":     d.Mass,
		"inertia":  d.Inertia,
		"arm":      d.ArmLength,
		"gravity":  d.Gravity,
		"drag":     d.DragCoeff,
		"ang_drag": d.AngDrag,
		"thrust_l": d.ThrustL,
		"thrust_r": d.ThrustR,
	}
}

func (d *Drone) DefaultState(dynamo.Params) dynamo.State {
	return dynamo.State{0, 5, 0, 0, 0, 0}
}

func (d *Drone) Validate(u dynamo.Params) error {
	return checkParams(d.Name(), u, d.Params(), "mass", "inertia")
}

// HoverThrust is the per-rotor thrust that balances gravity.
func (d *Drone) HoverThrust() float64 {
	return d.Mass * d.Gravity / 2.0
}

func (d *Drone) Transition(u dynamo.Params) dynamo.VectorSystem {
	return droneSystem{
		mass:    u.Get("mass", d.Mass),
		inertia: u.Get("inertia", d.Inertia),
		arm:     u.Get("arm", d.ArmLength),
		gravity: u.Get("gravity", d.Gravity),
		drag:    u.Get("drag", d.DragCoeff),
		angDrag: u.Get("ang_drag", d.AngDrag),
		thrustL: math.Max(0, u.Get("thrust_l", d.ThrustL)),
		thrustR: math.Max(0, u.Get("thrust_r", d.ThrustR)),
	}
}

type droneSystem struct {
	mass, inertia, arm, gravity, drag, angDrag float64
	thrustL, thrustR                           float64
}

func (d droneSystem) StateDim() int { return 6 }
func (droneSystem) SecondOrder()    {}

func (d droneSystem) Derive(x dynamo.State, _ float64) dynamo.State {
	theta, vx, vy, omega := x[2], x[3], x[4], x[5]

	total := d.thrustL + d.thrustR
	torque := (d.thrustR - d.thrustL) * d.arm

	sin, cos := math.Sin(theta), math.Cos(theta)
	fx := -total*sin - d.drag*vx
	fy := total*cos - d.mass*d.gravity - d.drag*vy

	return dynamo.State{vx, vy, omega, fx / d.mass, fy / d.mass, (torque - d.angDrag*omega) / d.inertia}
}

func (d droneSystem) Energy(x dynamo.State) float64 {
	y, vx, vy, omega := x[1], x[3], x[4], x[5]
	ke := 0.5 * d.mass * (vx*vx + vy*vy)
	keRot := 0.5 * d.inertia * omega * omega
	pe := d.mass * d.gravity * y
	return ke + keRot + pe
}
