package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/dynseq/internal/config"
	"github.com/san-kum/dynseq/internal/sim"
)

// Run is the JSON form of one finished simulation. Times are in seconds.
type Run struct {
	Model   string             `json:"model"`
	Stepper string             `json:"stepper"`
	Step    float64            `json:"step"`
	Span    float64            `json:"span"`
	Params  map[string]float64 `json:"params,omitempty"`
	Steps   int                `json:"steps"`
	Times   []float64          `json:"times"`
	States  [][]float64        `json:"states"`
	Final   []float64          `json:"final"`
	Metrics map[string]float64 `json:"metrics"`
}

func NewRun(cfg *config.Config, spec sim.Spec, result *sim.Result) Run {
	run := Run{
		Model:   spec.Name,
		Stepper: cfg.Stepper,
		Step:    spec.Step.Seconds(),
		Span:    spec.Span.Seconds(),
		Params:  spec.Params,
		Steps:   result.Steps,
		Times:   make([]float64, len(result.Times)),
		States:  make([][]float64, len(result.States)),
		Final:   result.Final,
		Metrics: result.Metrics,
	}
	for i, t := range result.Times {
		run.Times[i] = t.Seconds()
	}
	for i, x := range result.States {
		run.States[i] = x
	}
	return run
}

// WriteJSON encodes run as indented JSON.
func WriteJSON(w io.Writer, run Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
