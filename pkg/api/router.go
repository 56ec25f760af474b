package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/retrogg/internal/logger"
	"github.com/marmos91/retrogg/pkg/metrics"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET  /appsvc/appmsg4.asp - connection point discovery
//   - GET  /appsvc/appmsg3.asp - legacy discovery probe
//   - ANY  /appsvc/regtoken.asp - mint a registration captcha token
//   - GET  /appsvc/tokenpic.asp - captcha image for a token
//   - POST /appsvc/fmregister3.asp - create an account
//   - POST /appsvc/fmsendpwd3.asp - password reminder (always refused)
//   - GET  / - landing page
//   - GET  /health - liveness probe
//   - GET  /health/ready - readiness probe
//   - GET  /metrics - Prometheus metrics
func NewRouter(cfg Config, store Store, presence PresenceCounter) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	hub := newHubHandler(cfg)
	reg := newRegisterHandler(cfg, store)
	pic := newCaptchaHandler(store)
	web := newWebHandler(cfg, store, presence)

	// Client bootstrap endpoints. The paths are baked into the GG 6.0
	// client binaries.
	r.Route("/appsvc", func(r chi.Router) {
		r.Get("/appmsg4.asp", hub.ConnectionPoint)
		r.Get("/appmsg3.asp", hub.Probe)
		// Client versions disagree on the token minting method, so the
		// route accepts any.
		r.HandleFunc("/regtoken.asp", reg.Token)
		r.Get("/tokenpic.asp", pic.Image)
		r.Post("/fmregister3.asp", reg.Register)
		r.Post("/fmsendpwd3.asp", reg.SendPassword)
	})

	// Landing page for browsers
	r.Get("/", web.Landing)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", web.Liveness)
		r.Get("/ready", web.Readiness)
	})

	// Prometheus scrape endpoint. The handler is resolved per request:
	// the metrics registry may be initialized after the router is built.
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	return r
}

// isProbePath returns true if the request path is polled by monitoring.
func isProbePath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/") || path == "/metrics"
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Health and metrics probes are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("HTTP request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		if isProbePath(r.URL.Path) {
			logger.Debug("HTTP request completed", logArgs...)
		} else {
			logger.Info("HTTP request completed", logArgs...)
		}
	})
}
