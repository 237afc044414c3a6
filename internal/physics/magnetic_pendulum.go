package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// MagneticPendulum is a bob swinging above magnets placed evenly on a ring.
// The small-angle restoring force is linear in the horizontal offset and
// each magnet pulls with a potential -s/((p-1) d^(p-1)), d being the 3-D
// distance from bob to magnet.
// State: [x, y, vx, vy]
type MagneticPendulum struct {
	Magnets  int
	Radius   float64
	Strength float64
	Height   float64
	Damping  float64
	Gravity  float64
	Power    float64
}

type Magnet struct {
	X, Y float64
}

func NewMagneticPendulum() *MagneticPendulum {
	return &MagneticPendulum{
		Magnets:  3,
		Radius:   1.5,
		Strength: 1.0,
		Height:   0.5,
		Damping:  0.2,
		Gravity:  0.5,
		Power:    3.0,
	}
}

func (m *MagneticPendulum) Name() string { return "magnetic_pendulum" }

func (m *MagneticPendulum) Params() dynamo.Params {
	return dynamo.Params{
		"magnets":  float64(m.Magnets),
		"radius":   m.Radius,
		"strength": m.Strength,
		"height":   m.Height,
		"damping":  m.Damping,
		"gravity":  m.Gravity,
		"power":    m.Power,
	}
}

func (m *MagneticPendulum) DefaultState(dynamo.Params) dynamo.State {
	return dynamo.State{0.5, 0.3, 0, 0}
}

func (m *MagneticPendulum) Validate(u dynamo.Params) error {
	if err := checkParams(m.Name(), u, m.Params(), "magnets", "height", "power"); err != nil {
		return err
	}
	if n := u.Get("magnets", float64(m.Magnets)); n != math.Trunc(n) {
		return fmt.Errorf("%s: magnets=%g must be whole: %w", m.Name(), n, dynamo.ErrParameterBounds)
	}
	if p := u.Get("power", m.Power); p <= 1 {
		return fmt.Errorf("%s: power=%g must exceed 1: %w", m.Name(), p, dynamo.ErrParameterBounds)
	}
	return nil
}

// Ring returns the magnet positions used for u.
func (m *MagneticPendulum) Ring(u dynamo.Params) []Magnet {
	n := int(u.Get("magnets", float64(m.Magnets)))
	r := u.Get("radius", m.Radius)
	out := make([]Magnet, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Magnet{r * math.Cos(a), r * math.Sin(a)}
	}
	return out
}

func (m *MagneticPendulum) Transition(u dynamo.Params) dynamo.VectorSystem {
	return magneticSystem{
		magnets:  m.Ring(u),
		strength: u.Get("strength", m.Strength),
		h2:       math.Pow(u.Get("height", m.Height), 2),
		damping:  u.Get("damping", m.Damping),
		gravity:  u.Get("gravity", m.Gravity),
		power:    u.Get("power", m.Power),
	}
}

type magneticSystem struct {
	magnets                        []Magnet
	strength, h2, damping, gravity float64
	power                          float64
}

func (m magneticSystem) StateDim() int { return 4 }
func (magneticSystem) SecondOrder()    {}

func (m magneticSystem) Derive(s dynamo.State, _ float64) dynamo.State {
	x, y, vx, vy := s[0], s[1], s[2], s[3]
	fx := -m.gravity*x - m.damping*vx
	fy := -m.gravity*y - m.damping*vy
	for _, mag := range m.magnets {
		dx, dy := mag.X-x, mag.Y-y
		d := math.Sqrt(dx*dx + dy*dy + m.h2)
		f := m.strength / math.Pow(d, m.power+1)
		fx += f * dx
		fy += f * dy
	}
	return dynamo.State{vx, vy, fx, fy}
}

// Energy is conserved only without damping.
func (m magneticSystem) Energy(s dynamo.State) float64 {
	x, y, vx, vy := s[0], s[1], s[2], s[3]
	e := 0.5*(vx*vx+vy*vy) + 0.5*m.gravity*(x*x+y*y)
	for _, mag := range m.magnets {
		dx, dy := mag.X-x, mag.Y-y
		d := math.Sqrt(dx*dx + dy*dy + m.h2)
		e -= m.strength / ((m.power - 1) * math.Pow(d, m.power-1))
	}
	return e
}

// ClosestMagnet returns the index of the magnet nearest to the bob in s.
func ClosestMagnet(ring []Magnet, s dynamo.State) int {
	best, bestDist := -1, math.Inf(1)
	for i, mag := range ring {
		if d := (mag.X-s[0])*(mag.X-s[0]) + (mag.Y-s[1])*(mag.Y-s[1]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
