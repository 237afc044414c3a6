package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every variable read by FromEnv.
const EnvPrefix = "DYNSEQ_"

// FromEnv reads DYNSEQ_STEPPER, DYNSEQ_SPAN, DYNSEQ_STEP, DYNSEQ_INIT_STATE
// ("1,0"), DYNSEQ_PARAMS ("mass=2,length=0.5") and DYNSEQ_VALIDATE_STATE.
// Like Read, it leaves unset fields empty so the result can be layered.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	_, cfg.validateSet = os.LookupEnv(EnvPrefix + "VALIDATE_STATE")
	return cfg, nil
}
