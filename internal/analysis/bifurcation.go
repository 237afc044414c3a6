package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/viz"
)

// BifurcationPoint holds the distinct local maxima of one component for a
// single parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

type Sweep struct {
	Param      string
	Min, Max   float64
	Steps      int
	StateIndex int
	Step       time.Duration
	// Transient is skipped before maxima are recorded over Record.
	Transient time.Duration
	Record    time.Duration
}

// Bifurcation sweeps one parameter and records the stable maxima reached
// after the transient. This is useful for visualizing transitions to chaos.
// A fresh generator is built for each parameter value with u overridden by
// the swept value; newStepper supplies its stepper.
func Bifurcation(m dynamo.VectorModel, newStepper func() dynamo.VectorStepper, x0 dynamo.State, u dynamo.Params, sw Sweep) ([]BifurcationPoint, error) {
	if sw.StateIndex < 0 || sw.StateIndex >= len(x0) {
		return nil, fmt.Errorf("bifurcation: state index %d of %d components: %w", sw.StateIndex, len(x0), dynamo.ErrDimensionMismatch)
	}
	steps := max(sw.Steps, 2)
	delta := (sw.Max - sw.Min) / float64(steps-1)

	results := make([]BifurcationPoint, 0, steps)
	for i := 0; i < steps; i++ {
		param := sw.Min + float64(i)*delta
		g, err := dynamo.NewVectorGenerator(m, newStepper(), x0, u.Merge(dynamo.Params{sw.Param: param}), sw.Transient+sw.Record, sw.Step)
		if err != nil {
			return nil, fmt.Errorf("bifurcation %s=%g: %w", sw.Param, param, err)
		}

		var values []float64
		seen := make(map[int64]bool)
		var prev2, prev1 float64
		n := 0
		for t, x := range g.Seq() {
			v := x[sw.StateIndex]
			if n >= 2 && t > sw.Transient && prev1 > prev2 && prev1 >= v {
				// Quantize to find distinct values
				key := int64(math.Round(prev1 * 1000))
				if !seen[key] {
					seen[key] = true
					values = append(values, prev1)
				}
			}
			prev2, prev1 = prev1, v
			n++
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results, nil
}

// RenderBifurcation draws one column of maxima per parameter value.
func RenderBifurcation(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, p := range data {
		for _, v := range p.Values {
			minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	c := viz.NewCanvas(width, height)
	w, h := c.Dots()
	for i, p := range data {
		col := min(i*w/len(data), w-1)
		for _, v := range p.Values {
			row := h - 1 - int((v-minVal)/(maxVal-minVal)*float64(h-1))
			c.Set(col, row)
		}
	}
	return c.String()
}
