package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dynseq/internal/dynamo"
)

const maxPlots = 6

var stateLabels = map[string][]string{
	"decay":             {"x"},
	"pendulum":          {"theta (angle)", "omega (angular velocity)"},
	"spring_mass":       {"position", "velocity"},
	"lorenz":            {"x", "y", "z"},
	"rossler":           {"x", "y", "z"},
	"vanderpol":         {"x", "dx/dt"},
	"duffing":           {"x", "v", "forcing phase"},
	"doublewell":        {"x", "v"},
	"coupled_pendulums": {"theta1", "omega1", "theta2", "omega2"},
	"double_pendulum":   {"theta1", "theta2", "omega1", "omega2"},
	"drone":             {"x", "y", "theta", "vx", "vy", "omega"},
}

// Label names component i of a state of the given model.
func Label(model string, i int) string {
	if labels, ok := stateLabels[model]; ok && i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("x%d", i)
}

// Component extracts one state component over all samples. Non-finite
// values become NaN so the chart leaves a gap.
func Component(states []dynamo.State, i int) []float64 {
	out := make([]float64, len(states))
	for k, x := range states {
		v := math.NaN()
		if i < len(x) && !math.IsInf(x[i], 0) {
			v = x[i]
		}
		out[k] = v
	}
	return out
}

// PlotComponents charts each state component against time, at most
// maxPlots of them.
func PlotComponents(model string, states []dynamo.State, width, height int) string {
	if len(states) == 0 {
		return ""
	}

	n := min(len(states[0]), maxPlots)
	charts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		charts = append(charts, asciigraph.Plot(Component(states, i),
			asciigraph.Height(height),
			asciigraph.Width(width),
			asciigraph.Caption(Label(model, i)),
		))
	}
	return strings.Join(charts, "\n\n")
}

// PlotHistory charts a rolling history, or returns an empty string while
// there are fewer than two points.
func PlotHistory(values []float64, caption string, width, height int) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
