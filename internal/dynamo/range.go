package dynamo

import "iter"

// Range pairs a running generator with the position it stops at.
type Range[S, D any, R Real, Q Quantity] struct {
	begin *Generator[S, D, R, Q]
	end   *Generator[S, D, R, Q]
}

func NewRange[S, D any, R Real, Q Quantity](begin, end *Generator[S, D, R, Q]) Range[S, D, R, Q] {
	return Range[S, D, R, Q]{begin: begin, end: end}
}

// MakeRange builds a generator for (x0, u, span, step) paired with the
// sentinel, so that ranging over it covers the whole span.
func MakeRange[S, U, D any, R Real, Q Quantity](m Model[S, U, D, R], st Stepper[S, D, R], x0 S, u U, span, step Q) (Range[S, D, R, Q], error) {
	g, err := NewGenerator[S, U, D, R, Q](m, st, x0, u, span, step)
	if err != nil {
		return Range[S, D, R, Q]{}, err
	}
	return NewRange(g, Sentinel[S, D, R, Q]()), nil
}

func (r Range[S, D, R, Q]) Begin() *Generator[S, D, R, Q] { return r.begin }
func (r Range[S, D, R, Q]) End() *Generator[S, D, R, Q]   { return r.end }

// All advances Begin until it equals End, yielding every sample on the way.
func (r Range[S, D, R, Q]) All() iter.Seq2[Q, S] {
	return r.begin.until(r.end)
}
