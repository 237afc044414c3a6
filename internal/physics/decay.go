package physics

import "github.com/san-kum/dynseq/internal/dynamo"

// Decay relaxes every state component towards zero at a fixed rate.
//
//	dx/dt = -rate * x
type Decay struct {
	Rate float64
}

func NewDecay() *Decay {
	return &Decay{Rate: 1.0}
}

func (d *Decay) Name() string { return "decay" }

func (d *Decay) Params() dynamo.Params {
	return dynamo.Params{"rate": d.Rate}
}

func (d *Decay) DefaultState(dynamo.Params) dynamo.State { return dynamo.State{1.0} }

func (d *Decay) Validate(u dynamo.Params) error {
	return checkParams(d.Name(), u, d.Params())
}

func (d *Decay) Transition(u dynamo.Params) dynamo.VectorSystem {
	return decaySystem{rate: u.Get("rate", d.Rate)}
}

type decaySystem struct{ rate float64 }

func (s decaySystem) Derive(x dynamo.State, _ float64) dynamo.State {
	return x.Scale(-s.rate)
}
