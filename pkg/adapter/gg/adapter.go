// Package gg serves the Gadu-Gadu 6.0 TCP protocol: one listener, one
// session goroutine per connection, shared presence and dispatch hubs.
package gg

import (
	"context"
	"fmt"
	"net"

	"github.com/marmos91/retrogg/pkg/adapter"
	"github.com/marmos91/retrogg/pkg/messenger"
	"github.com/marmos91/retrogg/pkg/metrics"
	"github.com/marmos91/retrogg/pkg/models"
)

// SessionStore is the slice of the persistence layer sessions consume:
// account lookups for authentication and contact filtering, pending
// message reads and delivery marking. pkg/store's Store satisfies it.
type SessionStore interface {
	GetUser(ctx context.Context, uin uint32) (*models.User, error)
	GetUsersByUINs(ctx context.Context, uins []uint32) ([]*models.User, error)
	GetPendingMessages(ctx context.Context, recipient uint32) ([]*models.Message, error)
	GetPendingMessage(ctx context.Context, id uint) (*models.Message, error)
	MarkDelivered(ctx context.Context, ids []uint) error
	MarkMessageDelivered(ctx context.Context, id uint) error
}

// Adapter implements the adapter.Adapter interface for the GG protocol.
//
// Architecture:
// Adapter embeds BaseAdapter for shared TCP lifecycle management (listener,
// shutdown, connection tracking, semaphore). Protocol-specific behavior
// (login handshake, session multiplexing) lives in Session. The
// ConnectionFactory pattern enables BaseAdapter to create GG sessions via
// NewConnection.
//
// Shutdown flow:
//  1. Context cancelled or Stop() called
//  2. Listener closed (no new connections) [BaseAdapter]
//  3. ShutdownCtx cancelled (sessions send Disconnect and end) [BaseAdapter]
//  4. Wait for active sessions to complete (up to ShutdownTimeout) [BaseAdapter]
//  5. Force-close any remaining connections after timeout [BaseAdapter]
type Adapter struct {
	*adapter.BaseAdapter

	// config holds the GG-specific server configuration
	config Config

	// store resolves accounts and offline messages
	store SessionStore

	// presence is the shared presence hub sessions publish to and watch
	presence *messenger.PresenceHub

	// dispatcher routes messages between live sessions
	dispatcher *messenger.Dispatcher

	// metrics provides optional Prometheus metrics collection.
	// If nil, no metrics are collected (zero overhead).
	metrics metrics.GGMetrics
}

// New creates a new Adapter with the specified configuration and
// collaborators. ggMetrics can be nil for zero-overhead disabled
// metrics.
//
// The adapter is created in a stopped state. Call Serve() to start
// accepting connections.
//
// Panics if config validation fails (indicates programmer error).
func New(config Config, st SessionStore, presence *messenger.PresenceHub, dispatcher *messenger.Dispatcher, ggMetrics metrics.GGMetrics) *Adapter {
	config.applyDefaults()

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid GG config: %v", err))
	}

	baseConfig := adapter.BaseConfig{
		BindAddress:     config.BindAddress,
		Port:            config.Port,
		MaxConnections:  config.MaxConnections,
		ShutdownTimeout: config.ShutdownTimeout,
	}

	base := adapter.NewBaseAdapter(baseConfig, "GG")
	base.Metrics = ggMetrics

	return &Adapter{
		BaseAdapter: base,
		config:      config,
		store:       st,
		presence:    presence,
		dispatcher:  dispatcher,
		metrics:     ggMetrics,
	}
}

// Serve starts the GG server and blocks until the context is cancelled
// or an unrecoverable error occurs.
//
// Serve delegates to BaseAdapter.ServeWithFactory() for the shared TCP
// accept loop, providing GG-specific session creation via the
// ConnectionFactory interface.
func (s *Adapter) Serve(ctx context.Context) error {
	return s.ServeWithFactory(ctx, s)
}

// NewConnection creates a session controller for an accepted TCP
// connection. This implements the adapter.ConnectionFactory interface.
func (s *Adapter) NewConnection(conn net.Conn) adapter.ConnectionHandler {
	return newSession(s, conn)
}
