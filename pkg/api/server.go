package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/marmos91/retrogg/internal/logger"
	"github.com/marmos91/retrogg/pkg/models"
)

// Store is the slice of the account store the HTTP endpoints use.
// Registration mints captcha tokens and creates accounts; the
// readiness probe pings the backing database.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) (uint32, error)
	CreateToken(ctx context.Context) (*models.Token, error)
	GetToken(ctx context.Context, tokenID string) (*models.Token, error)
	ValidateToken(ctx context.Context, tokenID, answer string) error
	Healthcheck(ctx context.Context) error
}

// PresenceCounter reports how many sessions are currently online. The
// landing page displays the count.
type PresenceCounter interface {
	Online() int
}

// Server provides the HTTP side of the messaging service.
//
// GG 6.0 clients bootstrap over HTTP before they ever touch the
// messaging port: appmsg4.asp hands out the TCP connection point and
// the registration endpoints create accounts. The server also exposes
// a landing page for browsers, health probes, and Prometheus metrics.
//
// Endpoints:
//   - GET  /appsvc/appmsg4.asp: connection point discovery
//   - GET  /appsvc/appmsg3.asp: legacy discovery probe
//   - ANY  /appsvc/regtoken.asp: mint a registration captcha token
//   - GET  /appsvc/tokenpic.asp: captcha image for a token
//   - POST /appsvc/fmregister3.asp: create an account
//   - POST /appsvc/fmsendpwd3.asp: password reminder (always refused)
//   - GET  /: landing page
//   - GET  /health: liveness probe
//   - GET  /health/ready: readiness probe
//   - GET  /metrics: Prometheus metrics
//
// The server supports graceful shutdown with configurable timeout.
type Server struct {
	server       *http.Server
	config       Config
	shutdownOnce sync.Once
}

// NewServer creates a new HTTP server.
//
// The server is created in a stopped state. Call Start() to begin serving requests.
//
// Defaults are applied here to ensure the server works correctly even when
// created directly (e.g., in tests). This is idempotent with the defaults
// applied during config loading. When no advertised address is configured,
// the preferred outbound address of the host is resolved here; resolution
// failure falls back to loopback so the server still comes up on machines
// without a default route.
//
// Parameters:
//   - config: Server configuration (port, timeouts, advertised endpoint)
//   - store: Account store backing registration and the readiness probe
//   - presence: Source of the online user count (may be nil)
//
// Returns a configured but not yet started Server.
func NewServer(config Config, store Store, presence PresenceCounter) *Server {
	config.applyDefaults()

	if config.HostIP == "" {
		ip, err := LocalIP()
		if err != nil {
			logger.Warn("Could not resolve outbound address, advertising loopback", "error", err)
			config.HostIP = "127.0.0.1"
		} else {
			config.HostIP = ip.String()
		}
	}

	router := NewRouter(config, store, presence)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Bind, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		server: server,
		config: config,
	}
}

// Start starts the HTTP server and blocks until the context is cancelled
// or an error occurs.
//
// When the context is cancelled, Start initiates graceful shutdown and returns.
//
// Parameters:
//   - ctx: Controls the server lifecycle. Cancellation triggers graceful shutdown.
//
// Returns:
//   - nil on graceful shutdown
//   - error if the server fails to start or shutdown encounters an error
func (s *Server) Start(ctx context.Context) error {
	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.server.Addr, "advertised", s.config.HostIP)
		logger.Debug("HTTP endpoints available",
			"hub", fmt.Sprintf("http://%s:%d/appsvc/appmsg4.asp", s.config.Hostname, s.config.Port),
			"registration", fmt.Sprintf("http://%s:%d/appsvc/fmregister3.asp", s.config.Hostname, s.config.Port),
			"health", fmt.Sprintf("http://%s:%d/health", s.config.Hostname, s.config.Port),
		)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
				// Context was cancelled, error is not needed
			}
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		logger.Info("HTTP server shutdown signal received")
		// Create new context with timeout for graceful shutdown
		// Don't use the cancelled ctx as it would cause immediate shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("HTTP server failed: %w", err)
	}
}

// Stop initiates graceful shutdown of the HTTP server.
//
// Stop is safe to call multiple times and safe to call concurrently with Start().
//
// Parameters:
//   - ctx: Controls the shutdown timeout. If cancelled, shutdown aborts immediately.
//
// Returns:
//   - nil on successful shutdown
//   - error if shutdown fails or times out
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		logger.Debug("HTTP server shutdown initiated")

		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("HTTP server shutdown error: %w", err)
			logger.Error("HTTP server shutdown error", "error", err)
		} else {
			logger.Info("HTTP server stopped gracefully")
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server is listening on.
func (s *Server) Port() int {
	return s.config.Port
}
