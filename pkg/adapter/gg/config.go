package gg

import (
	"fmt"
	"time"
)

// Config holds configuration parameters for the GG server.
//
// Default values (applied by New if zero):
//   - ShutdownTimeout: 30s
//
// Port 0 is valid and means OS-assigned port (useful for testing).
type Config struct {
	// BindAddress is the IP address to bind to.
	// Empty string or "0.0.0.0" binds to all interfaces.
	BindAddress string

	// Port is the TCP port to listen on for GG connections.
	// Gadu-Gadu 6.0 clients connect to 8074.
	Port int

	// MaxConnections limits the number of concurrent client connections.
	// 0 means unlimited.
	MaxConnections int

	// ShutdownTimeout is the maximum duration to wait for active sessions
	// to complete during graceful shutdown.
	ShutdownTimeout time.Duration
}

// applyDefaults replaces zero values with defaults.
func (c *Config) applyDefaults() {
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 30 * time.Second
	}
}

// validate checks the configuration for invalid values.
func (c *Config) validate() error {
	// Port 0 is valid - it means OS-assigned port (useful for testing)
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be 0-65535", c.Port)
	}
	if c.MaxConnections < 0 {
		return fmt.Errorf("invalid MaxConnections %d: must be >= 0", c.MaxConnections)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid ShutdownTimeout %v: must be > 0", c.ShutdownTimeout)
	}
	return nil
}
