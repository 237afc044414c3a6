package dynamo

import (
	"fmt"
	"iter"
	"math"
)

// Generator lazily produces the (elapsed, state) sequence of one simulation
// run. It owns the state and the System built from the model input; both live
// exactly as long as the Generator.
//
// The zero Generator is the terminal sentinel: its span and elapsed time are
// both zero, so it is at end and compares equal to every exhausted Generator.
// A Generator is single-pass and cannot be rewound.
type Generator[S, D any, R Real, Q Quantity] struct {
	stepper Stepper[S, D, R]
	system  System[S, D, R]
	state   S
	span    Q
	step    Q
	elapsed Q
	steps   int
}

// NewGenerator builds the System for u once and positions the generator at
// elapsed zero with state x0. A non-positive span is valid and yields an
// already exhausted generator; a non-positive step is rejected since the span
// would never be covered.
func NewGenerator[S, U, D any, R Real, Q Quantity](m Model[S, U, D, R], st Stepper[S, D, R], x0 S, u U, span, step Q) (*Generator[S, D, R, Q], error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if st == nil {
		return nil, ErrNilStepper
	}
	if step <= 0 {
		return nil, fmt.Errorf("new generator: step of %d ticks: %w", int64(step), ErrNonPositiveStep)
	}

	sys := m.Transition(u)
	if sys == nil {
		return nil, ErrNilSystem
	}

	return &Generator[S, D, R, Q]{
		stepper: st,
		system:  sys,
		state:   snapshot(x0),
		span:    span,
		step:    step,
	}, nil
}

// Sentinel returns the terminal marker used to detect completion.
func Sentinel[S, D any, R Real, Q Quantity]() *Generator[S, D, R, Q] {
	return &Generator[S, D, R, Q]{}
}

// Advance runs the stepper once over [elapsed, elapsed+step) and moves the
// clock forward by one step. Elapsed is not clamped to the span, so the last
// advance may carry it past the span; it only saturates at the largest value
// Q can hold. Advancing the sentinel does nothing.
func (g *Generator[S, D, R, Q]) Advance() {
	if g == nil || g.system == nil {
		return
	}

	t := R(g.elapsed.Seconds())
	dt := R(g.step.Seconds())

	g.stepper.Step(g.system, &g.state, t, dt)

	// Saturate instead of wrapping: an elapsed time that no longer fits in Q
	// is past every span.
	if g.elapsed > Q(math.MaxInt64)-g.step {
		g.elapsed = Q(math.MaxInt64)
	} else {
		g.elapsed += g.step
	}
	g.steps++
}

// Observe returns the elapsed time and a copy of the current state. States
// that implement Clone are deep-copied, so the result stays valid across
// later advances.
func (g *Generator[S, D, R, Q]) Observe() (Q, S) {
	if g == nil {
		var (
			t Q
			x S
		)
		return t, x
	}
	return g.elapsed, snapshot(g.state)
}

// AtEnd reports whether elapsed has reached the span.
func (g *Generator[S, D, R, Q]) AtEnd() bool {
	if g == nil {
		return true
	}
	return g.elapsed >= g.span
}

// Equal reports whether g and other denote the same position. Any two
// exhausted generators are equal, an exhausted generator never equals a live
// one, and two live generators are equal when span, step and elapsed all
// match. A nil generator behaves as the sentinel.
func (g *Generator[S, D, R, Q]) Equal(other *Generator[S, D, R, Q]) bool {
	if other.AtEnd() {
		return g.AtEnd()
	}
	if g.AtEnd() {
		return false
	}
	return g.span == other.span && g.step == other.step && g.elapsed == other.elapsed
}

func (g *Generator[S, D, R, Q]) Span() Q    { return g.span }
func (g *Generator[S, D, R, Q]) Step() Q    { return g.step }
func (g *Generator[S, D, R, Q]) Elapsed() Q { return g.elapsed }

// Steps returns the number of advances performed so far.
func (g *Generator[S, D, R, Q]) Steps() int { return g.steps }

// System returns the System built at construction, or nil for the sentinel.
func (g *Generator[S, D, R, Q]) System() System[S, D, R] { return g.system }

// Seq yields samples until the generator is exhausted. Each sample is
// observed before the advance that follows it. Breaking out of the loop
// leaves the generator on the last yielded sample, so a later Seq starts by
// yielding it again.
func (g *Generator[S, D, R, Q]) Seq() iter.Seq2[Q, S] {
	return g.until(nil)
}

func (g *Generator[S, D, R, Q]) until(end *Generator[S, D, R, Q]) iter.Seq2[Q, S] {
	return func(yield func(Q, S) bool) {
		for !g.Equal(end) {
			t, x := g.Observe()
			if !yield(t, x) {
				return
			}
			g.Advance()
		}
	}
}

func snapshot[S any](x S) S {
	if c, ok := any(x).(interface{ Clone() S }); ok {
		return c.Clone()
	}
	return x
}
