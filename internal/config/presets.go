package config

import "sort"

var Presets = map[string]map[string]*Config{
	"decay": {
		"halving": {
			Model: "decay", Stepper: "euler", Span: "1s", Step: "500ms",
			InitState: []float64{1.0}, Params: map[string]float64{"rate": 1.0},
		},
		"slow": {
			Model: "decay", Stepper: "rk4", Span: "10s", Step: "100ms",
			InitState: []float64{1.0}, Params: map[string]float64{"rate": 0.1},
		},
	},
	"pendulum": {
		"small": {
			Model: "pendulum", Stepper: "rk4", Span: "20s", Step: "10ms",
			InitState: []float64{0.2, 0.0},
		},
		"large": {
			Model: "pendulum", Stepper: "rk4", Span: "20s", Step: "10ms",
			InitState: []float64{2.5, 0.0},
		},
		"spinning": {
			Model: "pendulum", Stepper: "rk4", Span: "30s", Step: "10ms",
			InitState: []float64{0.1, 8.0}, Params: map[string]float64{"damping": 0},
		},
	},
	"double_pendulum": {
		"symmetric": {
			Model: "double_pendulum", Stepper: "rk4", Span: "30s", Step: "5ms",
			InitState: []float64{1.5, 1.5, 0.0, 0.0},
		},
		"chaos": {
			Model: "double_pendulum", Stepper: "rk4", Span: "60s", Step: "5ms",
			InitState: []float64{3.0, 3.0, 0.0, 0.0},
		},
		"gentle": {
			Model: "double_pendulum", Stepper: "rk4", Span: "30s", Step: "10ms",
			InitState: []float64{0.3, 0.3, 0.0, 0.0},
		},
	},
	"drone": {
		"hover": {
			Model: "drone", Stepper: "rk4", Span: "30s", Step: "10ms",
			InitState: []float64{0, 5, 0, 0, 0, 0},
		},
		"tilt": {
			Model: "drone", Stepper: "rk4", Span: "20s", Step: "10ms",
			InitState: []float64{0, 5, 0.3, 0, 0, 0},
		},
		"drop": {
			Model: "drone", Stepper: "rk4", Span: "5s", Step: "10ms",
			InitState: []float64{0, 10, 0, 0, 0, 0},
			Params:    map[string]float64{"thrust_l": 0, "thrust_r": 0},
		},
	},
	"nbody": {
		"orbit": {
			Model: "nbody", Stepper: "leapfrog", Span: "50s", Step: "1ms",
			Params: map[string]float64{"bodies": 3},
		},
		"binary": {
			Model: "nbody", Stepper: "leapfrog", Span: "30s", Step: "1ms",
			Params: map[string]float64{"bodies": 2},
		},
	},
	"spring_mass": {
		"bounce": {
			Model: "spring_mass", Stepper: "verlet", Span: "20s", Step: "10ms",
			InitState: []float64{2.0, 0.0}, Params: map[string]float64{"damping": 0},
		},
		"fast": {
			Model: "spring_mass", Stepper: "rk4", Span: "10s", Step: "10ms",
			InitState: []float64{1.0, 5.0},
		},
	},
	"spring_chain": {
		"wave": {
			Model: "spring_chain", Stepper: "leapfrog", Span: "20s", Step: "5ms",
			InitState: []float64{1.0, 0, 0, 0, 0, 0},
		},
	},
	"lorenz": {
		"butterfly": {
			Model: "lorenz", Stepper: "rk45", Span: "40s", Step: "5ms",
			InitState: []float64{1.0, 1.0, 1.0},
		},
	},
	"duffing": {
		"chaotic": {
			Model: "duffing", Stepper: "rk4", Span: "100s", Step: "10ms",
			InitState: []float64{1.0, 0.0, 0.0},
		},
	},
	"vanderpol": {
		"relaxation": {
			Model: "vanderpol", Stepper: "rk4", Span: "50s", Step: "5ms",
			InitState: []float64{2.0, 0.0}, Params: map[string]float64{"mu": 5},
		},
	},
	"cartpole": {
		"fall": {
			Model: "cartpole", Stepper: "rk4", Span: "3s", Step: "5ms",
			InitState: []float64{0, 0, 0.05, 0},
		},
		"pushed": {
			Model: "cartpole", Stepper: "rk4", Span: "3s", Step: "5ms",
			InitState: []float64{0, 0, 0, 0}, Params: map[string]float64{"force": 2},
		},
	},
	"magnetic_pendulum": {
		"basins": {
			Model: "magnetic_pendulum", Stepper: "rk4", Span: "30s", Step: "5ms",
			InitState: []float64{-1.2, 0.8, 0, 0},
		},
		"square": {
			Model: "magnetic_pendulum", Stepper: "rk4", Span: "30s", Step: "5ms",
			InitState: []float64{0.3, -1.1, 0, 0}, Params: map[string]float64{"magnets": 4},
		},
	},
	"wave": {
		"pluck": {
			Model: "wave", Stepper: "verlet", Span: "4s", Step: "1ms",
			Params: map[string]float64{"damping": 0},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil when it does not
// exist.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
