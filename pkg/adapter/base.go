package adapter

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marmos91/retrogg/internal/logger"
)

// ConnectionHandler represents a protocol-specific connection that can serve
// requests. Each protocol adapter creates its own connection type implementing
// this interface. The Serve method blocks until the connection is closed or
// the context is cancelled.
type ConnectionHandler interface {
	Serve(ctx context.Context)
}

// ConnectionFactory creates protocol-specific connection handlers for accepted
// TCP connections. Protocol adapters implement this interface and pass
// themselves to BaseAdapter.ServeWithFactory().
type ConnectionFactory interface {
	NewConnection(conn net.Conn) ConnectionHandler
}

// BaseConfig holds configuration common to all protocol adapters.
// Protocol-specific adapters embed this alongside their own config.
type BaseConfig struct {
	// BindAddress is the IP address to bind to.
	// Empty string or "0.0.0.0" binds to all interfaces.
	BindAddress string

	// Port is the TCP port to listen on.
	Port int

	// MaxConnections limits the number of concurrent client connections.
	// 0 means unlimited.
	MaxConnections int

	// ShutdownTimeout is the maximum duration to wait for active connections
	// to complete during graceful shutdown.
	ShutdownTimeout time.Duration
}

// MetricsRecorder allows protocol adapters to record connection lifecycle
// metrics. A nil recorder disables collection (zero overhead).
type MetricsRecorder interface {
	RecordConnectionAccepted()
	RecordConnectionClosed()
	RecordConnectionForceClosed()
	SetActiveConnections(count int32)
}

// BaseAdapter provides shared TCP lifecycle management for protocol adapters.
//
// Protocol adapters embed this struct and delegate listener management,
// graceful shutdown and connection tracking to it. Protocol-specific behavior
// is injected via ConnectionFactory.
//
// Thread safety:
// All exported methods are safe for concurrent use. The shutdown mechanism
// uses sync.Once to ensure idempotent behavior even if Stop() is called
// multiple times.
type BaseAdapter struct {
	// Config holds the shared configuration (bind address, port, limits, timeouts)
	Config BaseConfig

	// protocolName is the human-readable protocol name for logging (e.g., "GG")
	protocolName string

	// Metrics is an optional recorder for connection lifecycle metrics.
	// If nil, no metrics are collected.
	Metrics MetricsRecorder

	// listener is the TCP listener for accepting connections.
	// Closed during shutdown to stop accepting new connections.
	listener net.Listener

	// activeConns tracks all currently active connections for graceful shutdown.
	// Each connection calls Add(1) when starting and Done() when complete.
	activeConns sync.WaitGroup

	// shutdownOnce ensures shutdown is only initiated once.
	// Protects the shutdown channel close and listener cleanup.
	shutdownOnce sync.Once

	// Shutdown signals that graceful shutdown has been initiated.
	// Closed by initiateShutdown(), monitored by ServeWithFactory().
	Shutdown chan struct{}

	// ConnCount tracks the current number of active connections.
	// Used for metrics and shutdown logging.
	ConnCount atomic.Int32

	// connSemaphore limits the number of concurrent connections if MaxConnections > 0.
	// Connections must acquire a slot before being accepted.
	// nil if MaxConnections is 0 (unlimited).
	connSemaphore chan struct{}

	// ShutdownCtx is cancelled during shutdown to abort in-flight sessions.
	// This context is passed to every connection handler, allowing sessions
	// to detect shutdown and say goodbye to their peer before closing.
	ShutdownCtx context.Context

	// CancelRequests cancels ShutdownCtx during shutdown.
	CancelRequests context.CancelFunc

	// ActiveConnections tracks all active TCP connections for forced closure.
	// Maps connection remote address (string) to net.Conn.
	ActiveConnections sync.Map

	// ListenerReady is closed when the listener is ready to accept connections.
	// Used by tests to synchronize with server startup.
	ListenerReady chan struct{}

	// listenerMu protects access to the listener field.
	listenerMu sync.RWMutex
}

// NewBaseAdapter creates a new BaseAdapter with the specified configuration.
// The adapter is created in a stopped state. Call ServeWithFactory() to start.
//
// Returns a pointer to avoid copying sync primitives (WaitGroup, Once, Map, RWMutex).
func NewBaseAdapter(config BaseConfig, protocol string) *BaseAdapter {
	var connSemaphore chan struct{}
	if config.MaxConnections > 0 {
		connSemaphore = make(chan struct{}, config.MaxConnections)
		logger.Debug(protocol+" connection limit", "max_connections", config.MaxConnections)
	} else {
		logger.Debug(protocol+" connection limit", "max_connections", "unlimited")
	}

	shutdownCtx, cancelRequests := context.WithCancel(context.Background())

	return &BaseAdapter{
		Config:         config,
		protocolName:   protocol,
		Shutdown:       make(chan struct{}),
		connSemaphore:  connSemaphore,
		ShutdownCtx:    shutdownCtx,
		CancelRequests: cancelRequests,
		ListenerReady:  make(chan struct{}),
	}
}

// ServeWithFactory runs the shared TCP accept loop, delegating to factory for
// protocol-specific connection creation.
//
// Parameters:
//   - ctx: Controls the server lifecycle. Cancellation triggers graceful shutdown.
//   - factory: Creates protocol-specific connection handlers for each accepted
//     connection.
//
// Returns:
//   - nil on graceful shutdown
//   - error if listener fails to start or shutdown is not graceful
func (b *BaseAdapter) ServeWithFactory(ctx context.Context, factory ConnectionFactory) error {
	// Create TCP listener
	listenAddr := fmt.Sprintf("%s:%d", b.Config.BindAddress, b.Config.Port)
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("failed to create %s listener on port %d: %w", b.protocolName, b.Config.Port, err)
	}

	// Store listener with mutex protection and signal readiness
	b.listenerMu.Lock()
	b.listener = listener
	b.listenerMu.Unlock()
	close(b.ListenerReady)

	logger.Info(b.protocolName+" server listening", logger.Port(b.Config.Port))

	// Monitor context cancellation in separate goroutine
	go func() {
		<-ctx.Done()
		logger.Info(b.protocolName+" shutdown signal received", logger.Err(ctx.Err()))
		b.initiateShutdown()
	}()

	// Accept connections until shutdown
	for {
		// Acquire connection semaphore if connection limiting is enabled
		if b.connSemaphore != nil {
			select {
			case b.connSemaphore <- struct{}{}:
				// Acquired semaphore slot, proceed with accept
			case <-b.Shutdown:
				// Shutdown initiated while waiting for semaphore
				return b.gracefulShutdown()
			}
		}

		// Accept next connection (blocks until connection arrives or error)
		tcpConn, err := b.listener.Accept()
		if err != nil {
			// Release semaphore on accept error
			if b.connSemaphore != nil {
				<-b.connSemaphore
			}

			// Check if error is due to shutdown (expected) or network error (unexpected)
			select {
			case <-b.Shutdown:
				// Expected error during shutdown (listener was closed)
				return b.gracefulShutdown()
			default:
				// Unexpected error - log but continue
				logger.Debug("Error accepting "+b.protocolName+" connection", logger.Err(err))
				continue
			}
		}

		// Enable TCP_NODELAY to disable Nagle's algorithm
		if tcp, ok := tcpConn.(*net.TCPConn); ok {
			if err := tcp.SetNoDelay(true); err != nil {
				logger.Debug("Failed to set TCP_NODELAY", logger.Err(err))
			}
		}

		// Track connection for graceful shutdown
		b.activeConns.Add(1)
		b.ConnCount.Add(1)

		// Register connection for forced closure capability
		connAddr := tcpConn.RemoteAddr().String()
		b.ActiveConnections.Store(connAddr, tcpConn)

		// Record metrics for connection accepted
		currentConns := b.ConnCount.Load()
		if b.Metrics != nil {
			b.Metrics.RecordConnectionAccepted()
			b.Metrics.SetActiveConnections(currentConns)
		}

		logger.Debug(b.protocolName+" connection accepted",
			logger.Address(connAddr), "active", currentConns)

		// Create protocol-specific connection handler
		conn := factory.NewConnection(tcpConn)

		// Handle connection in separate goroutine
		go func(addr string) {
			defer func() {
				// Unregister connection from tracking map
				b.ActiveConnections.Delete(addr)

				// Cleanup on connection close
				b.activeConns.Done()
				b.ConnCount.Add(-1)
				if b.connSemaphore != nil {
					<-b.connSemaphore
				}

				// Record metrics for connection closed
				if b.Metrics != nil {
					b.Metrics.RecordConnectionClosed()
					b.Metrics.SetActiveConnections(b.ConnCount.Load())
				}

				logger.Debug(b.protocolName+" connection closed",
					logger.Address(addr), "active", b.ConnCount.Load())
			}()

			// Handle connection requests
			conn.Serve(b.ShutdownCtx)
		}(connAddr)
	}
}

// initiateShutdown signals the server to begin graceful shutdown.
//
// Shutdown sequence:
//  1. Close shutdown channel (signals accept loop to stop)
//  2. Close listener (stops accepting new connections)
//  3. Interrupt blocking reads on all active connections
//  4. Cancel shutdownCtx (signals in-flight sessions to say goodbye)
//
// Thread safety:
// Safe to call multiple times and from multiple goroutines.
func (b *BaseAdapter) initiateShutdown() {
	b.shutdownOnce.Do(func() {
		logger.Debug(b.protocolName + " shutdown initiated")

		// Close shutdown channel (signals accept loop)
		close(b.Shutdown)

		// Close listener (stops accepting new connections)
		b.listenerMu.Lock()
		if b.listener != nil {
			if err := b.listener.Close(); err != nil {
				logger.Debug("Error closing "+b.protocolName+" listener", logger.Err(err))
			}
		}
		b.listenerMu.Unlock()

		// Set a short deadline on all connections to unblock any pending reads
		b.interruptBlockingReads()

		// Cancel all in-flight session contexts
		b.CancelRequests()
		logger.Debug(b.protocolName + " cancellation signal sent to all active sessions")
	})
}

// interruptBlockingReads sets a short deadline on all active connections
// to interrupt any blocking read operations during shutdown.
func (b *BaseAdapter) interruptBlockingReads() {
	deadline := time.Now().Add(100 * time.Millisecond)

	b.ActiveConnections.Range(func(key, value any) bool {
		if conn, ok := value.(net.Conn); ok {
			if err := conn.SetReadDeadline(deadline); err != nil {
				logger.Debug("Error setting shutdown deadline on connection",
					"address", key, logger.Err(err))
			}
		}
		return true
	})
	logger.Debug(b.protocolName + " shutdown: interrupted blocking reads on all connections")
}

// gracefulShutdown waits for active connections to complete or timeout.
//
// Returns:
//   - nil if all connections completed gracefully
//   - error if shutdown timeout exceeded (connections were force-closed)
func (b *BaseAdapter) gracefulShutdown() error {
	activeCount := b.ConnCount.Load()
	logger.Info(b.protocolName+" graceful shutdown: waiting for active connections",
		"active", activeCount, "timeout", b.Config.ShutdownTimeout)

	// Create channel that closes when all connections are done
	done := make(chan struct{})
	go func() {
		b.activeConns.Wait()
		close(done)
	}()

	// Wait for completion or timeout
	select {
	case <-done:
		logger.Info(b.protocolName + " graceful shutdown complete: all connections closed")
		return nil

	case <-time.After(b.Config.ShutdownTimeout):
		remaining := b.ConnCount.Load()
		logger.Warn(b.protocolName+" shutdown timeout exceeded - forcing closure",
			"active", remaining, "timeout", b.Config.ShutdownTimeout)

		// Force-close all remaining connections
		b.forceCloseConnections()

		return fmt.Errorf("%s shutdown timeout: %d connections force-closed", b.protocolName, remaining)
	}
}

// forceCloseConnections closes all active TCP connections to accelerate shutdown.
func (b *BaseAdapter) forceCloseConnections() {
	logger.Info("Force-closing active " + b.protocolName + " connections")

	closedCount := 0
	b.ActiveConnections.Range(func(key, value any) bool {
		addr := key.(string)
		conn := value.(net.Conn)

		if err := conn.Close(); err != nil {
			logger.Debug("Error force-closing connection", logger.Address(addr), logger.Err(err))
		} else {
			closedCount++
			logger.Debug("Force-closed connection", logger.Address(addr))
			if b.Metrics != nil {
				b.Metrics.RecordConnectionForceClosed()
			}
		}

		return true
	})

	if closedCount == 0 {
		logger.Debug("No connections to force-close")
	} else {
		logger.Info("Force-closed connections", logger.Count(closedCount))
	}
}

// Stop initiates graceful shutdown of the server.
//
// Stop is safe to call multiple times and safe to call concurrently with
// ServeWithFactory(). It signals the server to begin shutdown and waits for
// active connections to complete up to ShutdownTimeout.
//
// Parameters:
//   - ctx: Controls the shutdown timeout. If cancelled, Stop returns immediately
//     with context error after initiating shutdown.
//
// Returns:
//   - nil on successful graceful shutdown
//   - error if shutdown timeout exceeded or context cancelled
func (b *BaseAdapter) Stop(ctx context.Context) error {
	// Always initiate shutdown first
	b.initiateShutdown()

	// If no context provided, use gracefulShutdown with configured timeout
	if ctx == nil {
		return b.gracefulShutdown()
	}

	// Wait for graceful shutdown with context timeout
	activeCount := b.ConnCount.Load()
	logger.Info(b.protocolName+" graceful shutdown: waiting for active connections (context timeout)",
		"active", activeCount)

	// Create channel that closes when all connections are done
	done := make(chan struct{})
	go func() {
		b.activeConns.Wait()
		close(done)
	}()

	// Wait for completion or context cancellation
	select {
	case <-done:
		logger.Info(b.protocolName + " graceful shutdown complete: all connections closed")
		return nil

	case <-ctx.Done():
		remaining := b.ConnCount.Load()
		logger.Warn(b.protocolName+" shutdown context cancelled",
			"active", remaining, logger.Err(ctx.Err()))
		return ctx.Err()
	}
}

// GetActiveConnections returns the current number of active connections.
func (b *BaseAdapter) GetActiveConnections() int32 {
	return b.ConnCount.Load()
}

// GetListenerAddr returns the address the server is listening on.
// This method blocks until the listener is ready, making it safe for tests.
func (b *BaseAdapter) GetListenerAddr() string {
	<-b.ListenerReady

	b.listenerMu.RLock()
	defer b.listenerMu.RUnlock()

	if b.listener == nil {
		return ""
	}
	return b.listener.Addr().String()
}

// Port returns the configured TCP port.
func (b *BaseAdapter) Port() int {
	return b.Config.Port
}

// Protocol returns the human-readable protocol name (e.g., "GG").
func (b *BaseAdapter) Protocol() string {
	return b.protocolName
}
