package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileHeader is prepended to generated configuration files.
const configFileHeader = `# RetroGG Configuration File
#
# This file was generated by 'retrogg init'.
# All values can be overridden with GG_* environment variables,
# e.g. GG_LOGGING_LEVEL=DEBUG or GG_HTTP_PORT=8080.
#
# Durations accept Go syntax ("30s", "5m", "1h") or raw nanoseconds.

`

// InitConfig creates a configuration file with default values at the
// default location ($XDG_CONFIG_HOME/retrogg/config.yaml).
//
// Returns the path of the created file. Fails if a file already exists
// there, unless force is set.
func InitConfig(force bool) (string, error) {
	path := GetDefaultConfigPath()
	if err := InitConfigToPath(path, force); err != nil {
		return "", err
	}
	return path, nil
}

// InitConfigToPath creates a configuration file with default values at
// the given path, creating parent directories as needed.
//
// Fails if the file already exists, unless force is set.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	cfg := GetDefaultConfig()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	content := append([]byte(configFileHeader), data...)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
