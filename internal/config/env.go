package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

const envPrefix = "JOBKEEPER_"

// parseEnv overlays cfg with JOBKEEPER_* variables. Unset variables keep
// the current value.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
