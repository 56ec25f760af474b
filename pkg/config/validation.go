package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Struct tags on Config and
// its sections carry the field-level rules.
var validate = validator.New()

// Validate checks the configuration for correctness.
//
// Field-level rules (ranges, oneof sets, required fields) come from the
// validate struct tags. Cross-field rules that tags cannot express are
// checked explicitly below.
//
// Validate does not mutate the configuration; normalization happens in
// ApplyDefaults.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	// Telemetry needs somewhere to send traces when it is turned on.
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry endpoint is required when telemetry is enabled")
	}

	// Same for continuous profiling.
	if cfg.Telemetry.Profiling.Enabled && cfg.Telemetry.Profiling.Endpoint == "" {
		return fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	return nil
}
