// Package automation runs batches of experiments: scripted scenarios read
// from YAML and Monte Carlo trials around an initial state.
package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/san-kum/dynseq/internal/config"
	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/experiment"
	"github.com/san-kum/dynseq/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrNoTrials = errors.New("automation: trial count must be positive")

// Scenario is a named sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run of a scenario. Fields left out take the config
// defaults.
type ScenarioStep struct {
	Name          string `yaml:"name"`
	config.Config `yaml:",inline"`
}

// Label names the step by its own name or, failing that, its model.
func (s ScenarioStep) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Model
}

type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i := range scenario.Steps {
		scenario.Steps[i].FillDefaults()
	}
	return &scenario, nil
}

// RunScenario executes the steps in order. The results of the steps that
// completed are returned with the first error.
func RunScenario(ctx context.Context, scenario *Scenario, reg *experiment.Registry, progress func(i int, step ScenarioStep)) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if progress != nil {
			progress(i, step)
		}

		exp, err := experiment.New(reg, &step.Config)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Label(), err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Label(), err)
		}
		results = append(results, StepResult{Step: step, Result: result})
	}

	return results, nil
}

// MonteCarlo perturbs every component of the base initial state uniformly
// within ±Perturbation for each trial.
type MonteCarlo struct {
	Base         *config.Config
	Perturbation float64
	Trials       int
	Seed         int64
	// Bound is the largest magnitude a final component may reach for the
	// trial to count as stable.
	Bound float64
}

type TrialResult struct {
	Trial  int
	X0     dynamo.State
	Final  dynamo.State
	Stable bool
}

func (mc *MonteCarlo) Run(ctx context.Context, reg *experiment.Registry) ([]TrialResult, error) {
	if mc.Trials <= 0 {
		return nil, ErrNoTrials
	}

	base, err := reg.Build(mc.Base)
	if err != nil {
		return nil, err
	}
	bound := mc.Bound
	if bound <= 0 {
		bound = 1e6
	}

	rng := rand.New(rand.NewSource(mc.Seed))
	results := make([]TrialResult, 0, mc.Trials)

	for trial := 0; trial < mc.Trials; trial++ {
		x0 := base.X0.Clone()
		for i := range x0 {
			x0[i] += (rng.Float64()*2 - 1) * mc.Perturbation
		}

		cfg := mc.Base.Clone()
		cfg.InitState = x0
		exp, err := experiment.New(reg, cfg)
		if err != nil {
			return results, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			var simErr *dynamo.SimulationError
			if !errors.As(err, &simErr) {
				return results, err
			}
			results = append(results, TrialResult{Trial: trial, X0: x0, Final: simErr.State})
			continue
		}

		results = append(results, TrialResult{
			Trial:  trial,
			X0:     x0,
			Final:  result.Final,
			Stable: bounded(result.Final, bound),
		})
	}

	return results, nil
}

func bounded(x dynamo.State, bound float64) bool {
	if !x.IsValid() {
		return false
	}
	for _, v := range x {
		if math.Abs(v) > bound {
			return false
		}
	}
	return true
}

// Stats counts stable and unstable trials.
func Stats(results []TrialResult) (stable, unstable int) {
	for _, r := range results {
		if r.Stable {
			stable++
		} else {
			unstable++
		}
	}
	return
}
