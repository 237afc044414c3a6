package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel   = "pendulum"
	DefaultStepper = "rk4"
	DefaultStep    = "10ms"
	DefaultSpan    = "10s"
)

var (
	ErrNoModel   = errors.New("config: model is required")
	ErrBadSpan   = errors.New("config: span must not be negative")
	ErrBadStep   = errors.New("config: step must be positive")
	ErrBadFormat = errors.New("config: malformed duration")
)

// Config describes one run. Span and Step are Go duration strings such as
// "10s" or "250ms". An empty InitState means the model's default state.
type Config struct {
	Model         string             `yaml:"model"`
	Stepper       string             `yaml:"stepper" env:"STEPPER"`
	Span          string             `yaml:"span" env:"SPAN"`
	Step          string             `yaml:"step" env:"STEP"`
	InitState     []float64          `yaml:"init_state,omitempty" env:"INIT_STATE" envSeparator:","`
	Params        map[string]float64 `yaml:"params,omitempty" env:"PARAMS" envSeparator:"," envKeyValSeparator:"="`
	ValidateState bool               `yaml:"validate_state" env:"VALIDATE_STATE"`

	// validateSet records that a file or the environment gave
	// validate_state explicitly, false included.
	validateSet bool
}

func DefaultConfig() *Config {
	return &Config{
		Model:   DefaultModel,
		Stepper: DefaultStepper,
		Span:    DefaultSpan,
		Step:    DefaultStep,
	}
}

// Load reads a config file, filling fields the file leaves out with their
// defaults.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	cfg.FillDefaults()
	return cfg, nil
}

// Read reads a config file as written, leaving absent fields empty so it
// can be layered over another config.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var given struct {
		ValidateState *bool `yaml:"validate_state"`
	}
	if err := yaml.Unmarshal(data, &given); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.validateSet = given.ValidateState != nil
	return cfg, nil
}

// HasValidateState reports whether the config decides ValidateState, so
// that layering it can switch validation off as well as on.
func (c *Config) HasValidateState() bool {
	return c.validateSet || c.ValidateState
}

// FillDefaults sets every empty field that has a default.
func (c *Config) FillDefaults() {
	d := DefaultConfig()
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.Stepper == "" {
		c.Stepper = d.Stepper
	}
	if c.Span == "" {
		c.Span = d.Span
	}
	if c.Step == "" {
		c.Step = d.Step
	}
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) SpanDuration() (time.Duration, error) {
	return parseDuration("span", c.Span)
}

func (c *Config) StepDuration() (time.Duration, error) {
	return parseDuration("step", c.Step)
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return ErrNoModel
	}
	span, err := c.SpanDuration()
	if err != nil {
		return err
	}
	if span < 0 {
		return fmt.Errorf("span %s: %w", span, ErrBadSpan)
	}
	step, err := c.StepDuration()
	if err != nil {
		return err
	}
	if step <= 0 {
		return fmt.Errorf("step %s: %w", step, ErrBadStep)
	}
	return nil
}

// Clone returns a deep copy so presets can be adjusted without touching the
// shared table.
func (c *Config) Clone() *Config {
	out := *c
	if c.InitState != nil {
		out.InitState = append([]float64(nil), c.InitState...)
	}
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	return &out
}

func parseDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, s, errors.Join(ErrBadFormat, err))
	}
	return d, nil
}
