package adapter

import (
	"context"
)

// Adapter represents a protocol-specific server that can be managed by the
// start command.
//
// Each adapter owns one TCP listener and provides a unified interface for
// lifecycle management. Adapters share the same store, presence hub and
// dispatcher, so state stays consistent across listeners.
//
// Lifecycle:
//  1. Creation: Adapter is created with protocol-specific configuration and
//     its collaborators (store, hubs)
//  2. Startup: Serve() starts the protocol server and blocks until shutdown
//  3. Shutdown: Stop() initiates graceful shutdown with timeout
//
// Thread safety:
// Implementations must be safe for concurrent use. Stop() may be called
// concurrently with Serve().
type Adapter interface {
	// Serve starts the protocol server and blocks until the context is cancelled
	// or an unrecoverable error occurs.
	//
	// When the context is cancelled, Serve must initiate graceful shutdown:
	//   - Stop accepting new connections
	//   - Wait for active sessions to complete (with timeout)
	//   - Clean up resources
	//   - Return nil
	//
	// Returns:
	//   - nil on graceful shutdown
	//   - error if startup fails or shutdown is not graceful
	Serve(ctx context.Context) error

	// Stop initiates graceful shutdown.
	//
	// Safe to call multiple times and concurrently with Serve(). If ctx is
	// cancelled before active sessions drain, Stop returns the context error.
	Stop(ctx context.Context) error

	// Protocol returns the human-readable protocol name (e.g., "GG").
	Protocol() string

	// Port returns the TCP port this adapter listens on.
	Port() int
}
