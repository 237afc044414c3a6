package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/san-kum/dynseq/internal/config"
	"github.com/spf13/cobra"
)

// runFlags holds the flags shared by every command that builds a run.
type runFlags struct {
	configFile string
	preset     string
	stepper    string
	span       string
	step       string
	x0         []float64
	params     []string
	validate   bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.configFile, "config", "", "config file path (yaml)")
	fl.StringVar(&f.preset, "preset", "", "use preset configuration")
	fl.StringVar(&f.stepper, "stepper", config.DefaultStepper, "integration rule")
	fl.StringVar(&f.span, "span", config.DefaultSpan, "simulated time to cover")
	fl.StringVar(&f.step, "step", config.DefaultStep, "fixed step")
	fl.Float64SliceVar(&f.x0, "x0", nil, "initial state, comma separated (model default when empty)")
	fl.StringArrayVar(&f.params, "param", nil, "model parameter as name=value (repeatable)")
	fl.BoolVar(&f.validate, "validate", false, "fail on NaN or Inf states")
}

// resolve builds the config for model. Later sources override earlier ones:
// preset, config file, DYNSEQ_* environment, then flags set on the command
// line.
func (f *runFlags) resolve(cmd *cobra.Command, model string, logger *log.Logger) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if f.preset != "" {
		p := config.GetPreset(model, f.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", f.preset, config.ListPresets(model))
		}
		logger.Printf("preset %s/%s", model, f.preset)
		cfg = p
	}

	if f.configFile != "" {
		loaded, err := config.Read(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Printf("config %s", f.configFile)
		overlay(cfg, loaded)
		cfg.Model = model
	}

	fromEnv, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	overlay(cfg, fromEnv)

	changed := cmd.Flags().Changed
	if changed("stepper") {
		cfg.Stepper = f.stepper
	}
	if changed("span") {
		cfg.Span = f.span
	}
	if changed("step") {
		cfg.Step = f.step
	}
	if changed("x0") {
		cfg.InitState = append([]float64(nil), f.x0...)
	}
	if changed("validate") {
		cfg.ValidateState = f.validate
	}
	if len(f.params) > 0 {
		params, err := parseParams(f.params)
		if err != nil {
			return nil, err
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(params))
		}
		for k, v := range params {
			cfg.Params[k] = v
		}
	}

	logger.Printf("resolved %s: stepper=%s span=%s step=%s x0=%v params=%v",
		cfg.Model, cfg.Stepper, cfg.Span, cfg.Step, cfg.InitState, cfg.Params)
	return cfg, nil
}

// overlay copies every field set in src onto dst.
func overlay(dst, src *config.Config) {
	if src.Stepper != "" {
		dst.Stepper = src.Stepper
	}
	if src.Span != "" {
		dst.Span = src.Span
	}
	if src.Step != "" {
		dst.Step = src.Step
	}
	if len(src.InitState) > 0 {
		dst.InitState = src.InitState
	}
	for k, v := range src.Params {
		if dst.Params == nil {
			dst.Params = make(map[string]float64, len(src.Params))
		}
		dst.Params[k] = v
	}
	if src.HasValidateState() {
		dst.ValidateState = src.ValidateState
	}
}

func parseParams(raw []string) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("param %q: want name=value", kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("param %q: %w", kv, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}
