package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/dynseq/internal/config"
	"github.com/san-kum/dynseq/internal/dynamo"
	"github.com/san-kum/dynseq/internal/integrators"
	"github.com/san-kum/dynseq/internal/metrics"
	"github.com/san-kum/dynseq/internal/physics"
	"github.com/san-kum/dynseq/internal/sim"
)

var (
	ErrUnknownModel   = errors.New("experiment: unknown model")
	ErrUnknownStepper = errors.New("experiment: unknown stepper")
)

const stabilityThreshold = 100.0

type Registry struct {
	models   map[string]func() physics.Model
	steppers map[string]func() dynamo.VectorStepper
}

func NewRegistry() *Registry {
	r := &Registry{
		models:   make(map[string]func() physics.Model),
		steppers: make(map[string]func() dynamo.VectorStepper),
	}

	r.models["decay"] = func() physics.Model { return physics.NewDecay() }
	r.models["pendulum"] = func() physics.Model { return physics.NewPendulum() }
	r.models["spring_mass"] = func() physics.Model { return physics.NewSpringMass() }
	r.models["spring_chain"] = func() physics.Model { return physics.NewSpringMassChain(3) }
	r.models["lorenz"] = func() physics.Model { return physics.NewLorenz() }
	r.models["rossler"] = func() physics.Model { return physics.NewRossler() }
	r.models["vanderpol"] = func() physics.Model { return physics.NewVanDerPol() }
	r.models["duffing"] = func() physics.Model { return physics.NewDuffing() }
	r.models["doublewell"] = func() physics.Model { return physics.NewDoubleWell() }
	r.models["coupled_pendulums"] = func() physics.Model { return physics.NewCoupledPendulums() }
	r.models["double_pendulum"] = func() physics.Model { return physics.NewDoublePendulum() }
	r.models["nbody"] = func() physics.Model { return physics.NewNBody(3) }
	r.models["drone"] = func() physics.Model { return physics.NewDrone() }
	r.models["cartpole"] = func() physics.Model { return physics.NewCartPole() }
	r.models["magnetic_pendulum"] = func() physics.Model { return physics.NewMagneticPendulum() }
	r.models["wave"] = func() physics.Model { return physics.NewWave(21) }

	r.steppers["euler"] = func() dynamo.VectorStepper { return integrators.NewEuler() }
	r.steppers["midpoint"] = func() dynamo.VectorStepper { return integrators.NewMidpoint() }
	r.steppers["rk4"] = func() dynamo.VectorStepper { return integrators.NewRK4() }
	r.steppers["rk45"] = func() dynamo.VectorStepper { return integrators.NewRK45() }
	r.steppers["verlet"] = func() dynamo.VectorStepper { return integrators.NewVerlet() }
	r.steppers["leapfrog"] = func() dynamo.VectorStepper { return integrators.NewLeapfrog() }

	return r
}

func (r *Registry) GetModel(name string) (physics.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return fn(), nil
}

// GetStepper returns a fresh stepper. Steppers keep stage buffers, so every
// run needs its own.
func (r *Registry) GetStepper(name string) (dynamo.VectorStepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStepper, name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListSteppers() []string {
	return sortedKeys(r.steppers)
}

func (r *Registry) DefaultMetrics(model string) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewStability(stabilityThreshold),
		metrics.NewPeak(),
	}
	switch model {
	case "pendulum", "double_pendulum", "spring_mass", "spring_chain", "duffing", "doublewell", "nbody", "drone",
		"cartpole", "magnetic_pendulum", "wave":
		ms = append(ms, metrics.NewEnergy(), metrics.NewEnergyDrift())
	}
	return ms
}

// Build resolves cfg into a runnable spec. Params are checked against the
// model before anything is constructed, and an empty initial state falls
// back to the model default.
func (r *Registry) Build(cfg *config.Config) (sim.Spec, error) {
	if err := cfg.Validate(); err != nil {
		return sim.Spec{}, err
	}

	model, err := r.GetModel(cfg.Model)
	if err != nil {
		return sim.Spec{}, err
	}
	stepper, err := r.GetStepper(cfg.Stepper)
	if err != nil {
		return sim.Spec{}, err
	}

	params := dynamo.Params(cfg.Params).Clone()
	if err := model.Validate(params); err != nil {
		return sim.Spec{}, err
	}

	def := model.DefaultState(params)
	x0 := dynamo.State(cfg.InitState).Clone()
	if len(x0) == 0 {
		x0 = def
	}
	if len(x0) != len(def) {
		return sim.Spec{}, fmt.Errorf("%s: initial state has %d components, want %d: %w",
			model.Name(), len(x0), len(def), dynamo.ErrDimensionMismatch)
	}
	if err := dynamo.CheckLayout(model.Transition(params), stepper, x0); err != nil {
		return sim.Spec{}, fmt.Errorf("%s with %s: %w", model.Name(), cfg.Stepper, err)
	}

	span, _ := cfg.SpanDuration()
	step, _ := cfg.StepDuration()

	return sim.Spec{
		Name:          model.Name(),
		Model:         model,
		Stepper:       stepper,
		X0:            x0,
		Params:        params,
		Span:          span,
		Step:          step,
		ValidateState: cfg.ValidateState,
	}, nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
