package config

import (
	"strings"
	"time"
)

// Default configuration values.
const (
	// DefaultBind is the default listen address for both servers
	DefaultBind = "0.0.0.0"

	// DefaultGGPort is the default messaging protocol port
	DefaultGGPort = 8074

	// DefaultHTTPPort is the default HTTP server port.
	// Stock clients resolve the hub without a port, so anything other
	// than 80 requires a fronting proxy.
	DefaultHTTPPort = 80

	// DefaultDB is the default database location (SQLite file)
	DefaultDB = "./gg.db"

	// DefaultHostname is the default public hostname
	DefaultHostname = "gg-retro.local"

	// DefaultShutdownTimeout is the default graceful shutdown timeout
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultCleanupInterval is how often the retention sweeper runs
	DefaultCleanupInterval = time.Hour

	// DefaultCleanupRetention is how long delivered messages are kept
	DefaultCleanupRetention = 168 * time.Hour
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// This function is called after loading configuration from file and environment
// variables to fill in any missing values with sensible defaults.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyServerDefaults(cfg)
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyCleanupDefaults(&cfg.Cleanup)
}

// applyServerDefaults sets defaults for the top-level server fields.
func applyServerDefaults(cfg *Config) {
	if cfg.Bind == "" {
		cfg.Bind = DefaultBind
	}

	if cfg.GGPort == 0 {
		cfg.GGPort = DefaultGGPort
	}

	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = DefaultHTTPPort
	}

	if cfg.DB == "" {
		cfg.DB = DefaultDB
	}

	if cfg.Hostname == "" {
		cfg.Hostname = DefaultHostname
	}

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}

	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyTelemetryDefaults sets telemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	// Telemetry is disabled by default (opt-in), so Enabled keeps its
	// zero value. Only connection details get defaults.

	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317" // Standard OTLP gRPC port
	}

	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0 // Sample all traces by default
	}

	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040" // Standard Pyroscope port
	}

	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{
			"cpu",
			"alloc_objects",
			"alloc_space",
			"inuse_objects",
			"inuse_space",
			"goroutines",
		}
	}
}

// applyCleanupDefaults sets retention sweeper defaults.
func applyCleanupDefaults(cfg *CleanupConfig) {
	// The sweeper is disabled by default (opt-in), so Enabled keeps its
	// zero value. Only the cadence gets defaults.

	if cfg.Interval == 0 {
		cfg.Interval = DefaultCleanupInterval
	}

	if cfg.Retention == 0 {
		cfg.Retention = DefaultCleanupRetention
	}
}

// GetDefaultConfig returns a complete configuration with all default values applied.
// This is used when no configuration file exists.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
