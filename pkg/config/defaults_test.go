package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_Logging(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default log output 'stdout', got %q", cfg.Logging.Output)
	}
}

func TestApplyDefaults_ShutdownTimeout(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
}

func TestApplyDefaults_Server(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Bind != "0.0.0.0" {
		t.Errorf("Expected default bind '0.0.0.0', got %q", cfg.Bind)
	}
	if cfg.GGPort != 8074 {
		t.Errorf("Expected default messaging port 8074, got %d", cfg.GGPort)
	}
	if cfg.HTTPPort != 80 {
		t.Errorf("Expected default HTTP port 80, got %d", cfg.HTTPPort)
	}
	if cfg.DB != "./gg.db" {
		t.Errorf("Expected default database './gg.db', got %q", cfg.DB)
	}
	if cfg.Hostname != "gg-retro.local" {
		t.Errorf("Expected default hostname 'gg-retro.local', got %q", cfg.Hostname)
	}
}

func TestApplyDefaults_Cleanup(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Cleanup.Enabled {
		t.Error("Expected cleanup to be disabled by default")
	}
	if cfg.Cleanup.Interval != time.Hour {
		t.Errorf("Expected default cleanup interval 1h, got %v", cfg.Cleanup.Interval)
	}
	if cfg.Cleanup.Retention != 168*time.Hour {
		t.Errorf("Expected default cleanup retention 168h, got %v", cfg.Cleanup.Retention)
	}
}

func TestApplyDefaults_Telemetry(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Telemetry.Enabled {
		t.Error("Expected telemetry to be disabled by default")
	}
	if cfg.Telemetry.Endpoint != "localhost:4317" {
		t.Errorf("Expected default OTLP endpoint 'localhost:4317', got %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("Expected default sample rate 1.0, got %v", cfg.Telemetry.SampleRate)
	}
	if cfg.Telemetry.Profiling.Endpoint != "http://localhost:4040" {
		t.Errorf("Expected default Pyroscope endpoint, got %q", cfg.Telemetry.Profiling.Endpoint)
	}
	if len(cfg.Telemetry.Profiling.ProfileTypes) == 0 {
		t.Error("Expected default profile types to be set")
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "DEBUG",
			Format: "json",
			Output: "/var/log/retrogg.log",
		},
		ShutdownTimeout: 60 * time.Second,
		GGPort:          9074,
		Hostname:        "gg.example.org",
	}

	ApplyDefaults(cfg)

	// Verify explicit values were preserved
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected explicit level 'DEBUG' to be preserved, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected explicit format 'json' to be preserved, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "/var/log/retrogg.log" {
		t.Errorf("Expected explicit output to be preserved, got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 60*time.Second {
		t.Errorf("Expected explicit timeout 60s to be preserved, got %v", cfg.ShutdownTimeout)
	}
	if cfg.GGPort != 9074 {
		t.Errorf("Expected explicit messaging port to be preserved, got %d", cfg.GGPort)
	}
	if cfg.Hostname != "gg.example.org" {
		t.Errorf("Expected explicit hostname to be preserved, got %q", cfg.Hostname)
	}
}

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()

	// The default config should pass validation
	err := Validate(cfg)
	if err != nil {
		t.Errorf("Default config should be valid, got error: %v", err)
	}
}

func TestGetDefaultConfig_HasRequiredFields(t *testing.T) {
	cfg := GetDefaultConfig()

	// Check all required sections are present
	if cfg.Logging.Level == "" {
		t.Error("Default config missing logging level")
	}
	if cfg.GGPort == 0 {
		t.Error("Default config missing messaging port")
	}
	if cfg.HTTPPort == 0 {
		t.Error("Default config missing HTTP port")
	}
	if cfg.DB == "" {
		t.Error("Default config missing database location")
	}
	if cfg.Hostname == "" {
		t.Error("Default config missing hostname")
	}
}
