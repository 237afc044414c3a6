package metrics

import (
	"math"
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/sim"
)

var _ sim.Metric = (*Peak)(nil)

// Peak tracks the largest absolute component seen across all samples.
type Peak struct {
	name string
	max  float64
	at   time.Duration
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t time.Duration) {
	for _, v := range x {
		if a := math.Abs(v); a > p.max {
			p.max = a
			p.at = t
		}
	}
}

func (p *Peak) Value() float64 { return p.max }

// At returns the elapsed time of the sample that set the peak.
func (p *Peak) At() time.Duration { return p.at }

func (p *Peak) Reset() {
	p.max = 0
	p.at = 0
}
