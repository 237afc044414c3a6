package dynamo

import (
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/exp/constraints"
)

// Real is the scalar type used for time and magnitude arithmetic inside
// models and steppers.
type Real interface {
	constraints.Float
}

// Quantity is a duration counted in integer ticks of a fixed resolution.
// Ordering and addition come from the integer representation; Seconds
// converts a tick count to a real number of seconds. time.Duration satisfies
// it.
type Quantity interface {
	~int64
	Seconds() float64
}

// System evaluates the right-hand side of dX/dt = f(X, t).
type System[S, D any, R Real] interface {
	Derive(x S, t R) D
}

// Model builds the System for a given input. Transition must be deterministic
// and free of side effects.
type Model[S, U, D any, R Real] interface {
	Transition(u U) System[S, D, R]
}

// Stepper advances x in place by one increment dt starting at time t.
type Stepper[S, D any, R Real] interface {
	Step(sys System[S, D, R], x *S, t, dt R)
}

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// AddScaled computes s += factor*d in place.
func (s State) AddScaled(factor float64, d State) {
	for i := range s {
		if i < len(d) {
			s[i] += factor * d[i]
		}
	}
}

// Params is the input of the built-in vector models: named constants that
// stay fixed for the lifetime of one generator.
type Params map[string]float64

// Get returns the value stored under name, or def when it is absent.
func (p Params) Get(name string, def float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return def
}

func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// Merge returns a copy of p with every entry of over applied on top.
func (p Params) Merge(over Params) Params {
	c := p.Clone()
	for k, v := range over {
		c[k] = v
	}
	return c
}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type (
	VectorSystem    = System[State, State, float64]
	VectorModel     = Model[State, Params, State, float64]
	VectorStepper   = Stepper[State, State, float64]
	VectorGenerator = Generator[State, State, float64, time.Duration]
	VectorRange     = Range[State, State, float64, time.Duration]
)

// Hamiltonian is implemented by systems with a conserved energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Dimensioned is implemented by systems with a fixed state length.
type Dimensioned interface {
	StateDim() int
}

// SecondOrder is implemented by systems whose state is laid out as
// [positions..., velocities...] and whose derivative carries the
// accelerations in its second half.
type SecondOrder interface {
	SecondOrder()
}

// SplitStepper is implemented by steppers that only work on SecondOrder
// systems.
type SplitStepper interface {
	RequiresSecondOrder()
}

// CheckLayout returns ErrStateLayout when st needs a SecondOrder system and
// sys is not one, or x cannot be split into equal halves.
func CheckLayout(sys VectorSystem, st VectorStepper, x State) error {
	if _, ok := st.(SplitStepper); !ok {
		return nil
	}
	if _, ok := sys.(SecondOrder); !ok {
		return fmt.Errorf("system %T: %w", sys, ErrStateLayout)
	}
	if len(x)%2 != 0 {
		return fmt.Errorf("state of %d components: %w", len(x), ErrStateLayout)
	}
	return nil
}

// NewVectorGenerator instantiates NewGenerator for the vector domain.
func NewVectorGenerator(m VectorModel, st VectorStepper, x0 State, u Params, span, step time.Duration) (*VectorGenerator, error) {
	return NewGenerator[State, Params, State, float64, time.Duration](m, st, x0, u, span, step)
}
