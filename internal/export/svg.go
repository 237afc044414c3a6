// Package export renders analysis results as standalone SVG documents.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/dynseq/internal/analysis"
)

var ErrTooFewPoints = errors.New("export: portrait needs at least two points")

const background = "#0a0a0a"

// Style selects how portrait points are drawn.
type Style int

const (
	// Trajectory joins consecutive points with a polyline.
	Trajectory Style = iota
	// Scatter draws each point as a dot, for sections.
	Scatter
)

// PortraitSVG writes p as an SVG of the given pixel size. The y axis points
// up and the bounds are padded by a tenth of their range.
func PortraitSVG(w io.Writer, p *analysis.Portrait, width, height int, style Style, color string) error {
	minX, maxX, minY, maxY, ok := p.Bounds()
	if !ok || (style == Trajectory && len(p.Points) < 2) {
		return ErrTooFewPoints
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
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

	finite := func(pt analysis.Point) bool {
		return !math.IsNaN(pt.X+pt.Y) && !math.IsInf(pt.X+pt.Y, 0)
	}
	project := func(pt analysis.Point) (float64, float64) {
		x := (pt.X - minX) / rangeX * float64(width)
		y := float64(height) - (pt.Y-minY)/rangeY*float64(height)
		return x, y
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	switch style {
	case Scatter:
		fmt.Fprintf(bw, "<g fill=\"%s\">\n", color)
		for _, pt := range p.Points {
			if !finite(pt) {
				continue
			}
			x, y := project(pt)
			fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"1.5\"/>\n", x, y)
		}
		bw.WriteString("</g>\n")
	default:
		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color)
		first := true
		for _, pt := range p.Points {
			if !finite(pt) {
				continue
			}
			x, y := project(pt)
			if first {
				fmt.Fprintf(bw, "%.1f,%.1f", x, y)
				first = false
			} else {
				fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
			}
		}
		bw.WriteString("\"/>\n")
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}
