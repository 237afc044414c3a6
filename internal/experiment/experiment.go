package experiment

import (
	"context"

	"github.com/san-kum/dynseq/internal/config"
	"github.com/san-kum/dynseq/internal/sim"
)

// Experiment is one configured run with the default metrics of its model.
type Experiment struct {
	cfg       *config.Config
	spec      sim.Spec
	simulator *sim.Simulator
}

func New(reg *Registry, cfg *config.Config) (*Experiment, error) {
	spec, err := reg.Build(cfg)
	if err != nil {
		return nil, err
	}

	s := sim.New()
	for _, m := range reg.DefaultMetrics(cfg.Model) {
		s.AddMetric(m)
	}

	return &Experiment{cfg: cfg.Clone(), spec: spec, simulator: s}, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, e.spec)
}

func (e *Experiment) Spec() sim.Spec { return e.spec }

// Config returns the configuration the experiment was built from.
func (e *Experiment) Config() *config.Config { return e.cfg }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
