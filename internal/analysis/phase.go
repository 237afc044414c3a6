package analysis

import (
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/viz"
)

type Point struct{ X, Y float64 }

// Portrait is a set of points in a plane of phase space.
type Portrait struct {
	XIndex, YIndex int
	Points         []Point
}

// PhasePortrait projects every sample of seq onto components (xIdx, yIdx).
func PhasePortrait(seq iter.Seq2[time.Duration, dynamo.State], xIdx, yIdx int) (*Portrait, error) {
	portrait := &Portrait{XIndex: xIdx, YIndex: yIdx}
	for _, x := range seq {
		if xIdx >= len(x) || yIdx >= len(x) {
			return nil, fmt.Errorf("phase portrait: axes (%d, %d) of %d components: %w", xIdx, yIdx, len(x), dynamo.ErrDimensionMismatch)
		}
		portrait.Points = append(portrait.Points, Point{x[xIdx], x[yIdx]})
	}
	return portrait, nil
}

// PoincareSection records (recordX, recordY) each time component crossIdx
// passes threshold going upwards, interpolating linearly between the two
// samples around the crossing.
func PoincareSection(seq iter.Seq2[time.Duration, dynamo.State], crossIdx int, threshold float64, recordX, recordY int) (*Portrait, error) {
	section := &Portrait{XIndex: recordX, YIndex: recordY}

	var prev dynamo.State
	for _, x := range seq {
		if crossIdx >= len(x) || recordX >= len(x) || recordY >= len(x) {
			return nil, fmt.Errorf("poincare section: index out of %d components: %w", len(x), dynamo.ErrDimensionMismatch)
		}
		if prev != nil && prev[crossIdx] < threshold && x[crossIdx] >= threshold {
			frac := (threshold - prev[crossIdx]) / (x[crossIdx] - prev[crossIdx])
			if math.IsNaN(frac) || math.IsInf(frac, 0) {
				frac = 0.5
			}
			section.Points = append(section.Points, Point{
				X: prev[recordX] + frac*(x[recordX]-prev[recordX]),
				Y: prev[recordY] + frac*(x[recordY]-prev[recordY]),
			})
		}
		prev = x
	}
	return section, nil
}

// Bounds returns the smallest box holding every finite point.
func (p *Portrait) Bounds() (minX, maxX, minY, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			continue
		}
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
		ok = true
	}
	return
}

// Render draws the portrait on a Braille canvas of width x height cells,
// padded by a tenth of the range on each side.
func (p *Portrait) Render(width, height int) string {
	if p == nil || len(p.Points) == 0 {
		return ""
	}
	minX, maxX, minY, maxY, ok := p.Bounds()
	if !ok {
		return ""
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	c := viz.NewCanvas(width, height)
	w, h := c.Dots()
	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(w-1))
		row := h - 1 - int((pt.Y-minY)/rangeY*float64(h-1))
		c.Set(col, row)
	}
	return c.String()
}
