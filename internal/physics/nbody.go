package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// softening keeps close encounters finite.
const softening = 1e-6

// NBody is a planar gravitational system of equal masses.
// State: [x_1, y_1, ..., x_n, y_n, vx_1, vy_1, ..., vx_n, vy_n], the layout
// the symplectic steppers expect.
type NBody struct {
	NumBodies int
	Mass      float64
	G         float64
}

func NewNBody(n int) *NBody {
	return &NBody{NumBodies: n, Mass: 1.0, G: 1.0}
}

func (nb *NBody) Name() string { return "nbody" }

func (nb *NBody) Params() dynamo.Params {
	return dynamo.Params{"bodies": float64(nb.NumBodies), "mass": nb.Mass, "g": nb.G}
}

// count is at least one body, so unvalidated params cannot size a negative
// state.
func (nb *NBody) count(u dynamo.Params) int {
	return max(int(u.Get("bodies", float64(nb.NumBodies))), 1)
}

// DefaultState places the bodies evenly on the unit circle with tangential
// velocities, a figure that stays bound for a few orbits.
func (nb *NBody) DefaultState(u dynamo.Params) dynamo.State {
	n := nb.count(u)
	x := make(dynamo.State, n*4)
	vel := 2 * n
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		x[2*i] = math.Cos(angle)
		x[2*i+1] = math.Sin(angle)
		x[vel+2*i] = -math.Sin(angle) * 0.5
		x[vel+2*i+1] = math.Cos(angle) * 0.5
	}
	return x
}

func (nb *NBody) Validate(u dynamo.Params) error {
	if err := checkParams(nb.Name(), u, nb.Params(), "bodies", "mass"); err != nil {
		return err
	}
	if n := u.Get("bodies", float64(nb.NumBodies)); n != math.Trunc(n) {
		return fmt.Errorf("%s: bodies=%g must be whole: %w", nb.Name(), n, dynamo.ErrParameterBounds)
	}
	return nil
}

func (nb *NBody) Transition(u dynamo.Params) dynamo.VectorSystem {
	return nbodySystem{
		n:    nb.count(u),
		mass: u.Get("mass", nb.Mass),
		g:    u.Get("g", nb.G),
	}
}

type nbodySystem struct {
	n       int
	mass, g float64
}

func (s nbodySystem) StateDim() int { return s.n * 4 }
func (nbodySystem) SecondOrder()    {}

func (s nbodySystem) Derive(x dynamo.State, _ float64) dynamo.State {
	dx := make(dynamo.State, len(x))
	vel := 2 * s.n
	copy(dx[:vel], x[vel:])

	for i := 0; i < s.n; i++ {
		ax, ay := 0.0, 0.0
		for j := 0; j < s.n; j++ {
			if i == j {
				continue
			}
			rx := x[2*j] - x[2*i]
			ry := x[2*j+1] - x[2*i+1]
			r := math.Sqrt(rx*rx + ry*ry)
			if r > softening {
				f := s.g * s.mass / (r * r * r)
				ax += f * rx
				ay += f * ry
			}
		}
		dx[vel+2*i] = ax
		dx[vel+2*i+1] = ay
	}

	return dx
}

func (s nbodySystem) Energy(x dynamo.State) float64 {
	vel := 2 * s.n
	e := 0.0
	for i := 0; i < s.n; i++ {
		vx, vy := x[vel+2*i], x[vel+2*i+1]
		e += 0.5 * s.mass * (vx*vx + vy*vy)
		for j := i + 1; j < s.n; j++ {
			if r := math.Hypot(x[2*j]-x[2*i], x[2*j+1]-x[2*i+1]); r > softening {
				e -= s.g * s.mass * s.mass / r
			}
		}
	}
	return e
}
