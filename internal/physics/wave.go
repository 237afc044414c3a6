package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/dynseq/internal/dynamo"
)

// Wave is a string with fixed ends discretized into points by finite
// differences.
// State: [u_1..u_n, v_1..v_n]
type Wave struct {
	Points  int
	Length  float64
	Speed   float64
	Damping float64
}

func NewWave(n int) *Wave {
	return &Wave{Points: max(n, 3), Length: 1.0, Speed: 1.0, Damping: 0.01}
}

func (w *Wave) Name() string { return "wave" }

func (w *Wave) Params() dynamo.Params {
	return dynamo.Params{
		"points":  float64(w.Points),
		"length":  w.Length,
		"speed":   w.Speed,
		"damping": w.Damping,
	}
}

func (w *Wave) Validate(u dynamo.Params) error {
	if err := checkParams(w.Name(), u, w.Params(), "length", "speed"); err != nil {
		return err
	}
	if n := u.Get("points", float64(w.Points)); n != math.Trunc(n) || n < 3 {
		return fmt.Errorf("%s: points=%g must be a whole number of at least 3: %w", w.Name(), n, dynamo.ErrParameterBounds)
	}
	return nil
}

// count keeps at least three points, the fewest with an interior point.
func (w *Wave) count(u dynamo.Params) int {
	return max(int(u.Get("points", float64(w.Points))), 3)
}

// DefaultState plucks the string at its midpoint.
func (w *Wave) DefaultState(u dynamo.Params) dynamo.State {
	n := w.count(u)
	s, c, amp := make(dynamo.State, 2*n), n/2, 0.5
	for i := 0; i < n; i++ {
		if i <= c {
			s[i] = amp * float64(i) / float64(c)
		} else {
			s[i] = amp * float64(n-1-i) / float64(n-1-c)
		}
	}
	return s
}

func (w *Wave) Transition(u dynamo.Params) dynamo.VectorSystem {
	n := w.count(u)
	h := u.Get("length", w.Length) / float64(n-1)
	c := u.Get("speed", w.Speed)
	return waveSystem{n: n, h: h, c2: c * c, damping: u.Get("damping", w.Damping)}
}

type waveSystem struct {
	n       int
	h, c2   float64
	damping float64
}

func (w waveSystem) StateDim() int { return 2 * w.n }
func (waveSystem) SecondOrder()    {}

func (w waveSystem) Derive(s dynamo.State, _ float64) dynamo.State {
	n := w.n
	d := make(dynamo.State, 2*n)
	h2 := w.h * w.h
	for i := 0; i < n; i++ {
		d[i] = s[n+i]
		if i == 0 || i == n-1 {
			d[n+i] = -w.damping * s[n+i]
			continue
		}
		d[n+i] = w.c2*(s[i-1]-2*s[i]+s[i+1])/h2 - w.damping*s[n+i]
	}
	return d
}

// Energy is conserved only without damping.
func (w waveSystem) Energy(s dynamo.State) float64 {
	n := w.n
	var ke, pe float64
	for i := 0; i < n; i++ {
		v := s[n+i]
		ke += 0.5 * v * v
		if i < n-1 {
			slope := (s[i+1] - s[i]) / w.h
			pe += 0.5 * w.c2 * slope * slope
		}
	}
	return ke + pe
}
