package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
	DefaultDamping   = 0.5
)

// SpringMass is a chain of identical masses joined by springs, anchored to a
// wall on the left and optionally on the right. A constant force pushes the
// first mass.
// State: [x_1..x_n, v_1..v_n]
type SpringMass struct {
	NumMasses int
	Mass      float64
	Stiffness float64
	Damping   float64
	Force     float64
	// Anchored joins the last mass to a right-hand wall.
	Anchored bool
}

func NewSpringMass() *SpringMass {
	return &SpringMass{
		NumMasses: 1,
		Mass:      DefaultMass,
		Stiffness: DefaultStiffness,
		Damping:   DefaultDamping,
	}
}

func NewSpringMassChain(n int) *SpringMass {
	return &SpringMass{
		NumMasses: n,
		Mass:      DefaultMass,
		Stiffness: DefaultStiffness,
		Damping:   0.2,
		Anchored:  true,
	}
}

func (s *SpringMass) Name() string {
	if s.NumMasses > 1 {
		return "spring_chain"
	}
	return "spring_mass"
}

func (s *SpringMass) Params() dynamo.Params {
	anchored := 0.0
	if s.Anchored {
		anchored = 1
	}
	return dynamo.Params{
		"masses":    float64(s.NumMasses),
		"mass":      s.Mass,
		"stiffness": s.Stiffness,
		"damping":   s.Damping,
		"force":     s.Force,
		"anchored":  anchored,
	}
}

func (s *SpringMass) DefaultState(u dynamo.Params) dynamo.State {
	n := s.count(u)
	x := make(dynamo.State, 2*n)
	x[0] = 1.0
	return x
}

func (s *SpringMass) Validate(u dynamo.Params) error {
	if err := checkParams(s.Name(), u, s.Params(), "masses", "mass"); err != nil {
		return err
	}
	if n := u.Get("masses", float64(s.NumMasses)); n != math.Trunc(n) {
		return fmt.Errorf("%s: masses=%g must be whole: %w", s.Name(), n, dynamo.ErrParameterBounds)
	}
	return nil
}

func (s *SpringMass) count(u dynamo.Params) int {
	return max(int(u.Get("masses", float64(s.NumMasses))), 1)
}

func (s *SpringMass) Transition(u dynamo.Params) dynamo.VectorSystem {
	n := s.count(u)
	mass := u.Get("mass", s.Mass)
	stiffness := u.Get("stiffness", s.Stiffness)
	damping := u.Get("damping", s.Damping)

	sys := &springSystem{
		n:         n,
		masses:    make([]float64, n),
		stiffness: make([]float64, n, n+1),
		damping:   make([]float64, n),
		force:     u.Get("force", s.Force),
	}
	for i := 0; i < n; i++ {
		sys.masses[i] = mass
		sys.stiffness[i] = stiffness
		sys.damping[i] = damping
	}
	anchored := s.Anchored
	if v, ok := u["anchored"]; ok {
		anchored = v != 0
	}
	if anchored {
		sys.stiffness = append(sys.stiffness, stiffness)
	}
	return sys
}

type springSystem struct {
	n         int
	masses    []float64
	stiffness []float64
	damping   []float64
	force     float64
}

func (s *springSystem) StateDim() int { return s.n * 2 }
func (*springSystem) SecondOrder()    {}

func (s *springSystem) Derive(x dynamo.State, _ float64) dynamo.State {
	n := s.n
	dx := make(dynamo.State, n*2)

	for i := 0; i < n; i++ {
		dx[i] = x[n+i]
	}

	for i := 0; i < n; i++ {
		pos, vel := x[i], x[n+i]

		var forceLeft, forceRight float64
		if i == 0 {
			forceLeft = -s.stiffness[0] * pos
		} else {
			forceLeft = -s.stiffness[i] * (pos - x[i-1])
		}

		if i == n-1 {
			if len(s.stiffness) > n {
				forceRight = -s.stiffness[n] * pos
			}
		} else {
			forceRight = -s.stiffness[i+1] * (pos - x[i+1])
		}

		totalForce := forceLeft + forceRight - s.damping[i]*vel
		if i == 0 {
			totalForce += s.force
		}
		dx[n+i] = totalForce / s.masses[i]
	}

	return dx
}

func (s *springSystem) Energy(x dynamo.State) float64 {
	n := s.n
	energy := 0.0

	for i := 0; i < n; i++ {
		v := x[n+i]
		energy += 0.5 * s.masses[i] * v * v
	}

	for i := 0; i < n; i++ {
		pos := x[i]
		if i == 0 {
			energy += 0.5 * s.stiffness[0] * pos * pos
		} else {
			stretch := pos - x[i-1]
			energy += 0.5 * s.stiffness[i] * stretch * stretch
		}
	}

	if len(s.stiffness) > n {
		energy += 0.5 * s.stiffness[n] * x[n-1] * x[n-1]
	}

	return energy
}
