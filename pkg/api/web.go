package api

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/marmos91/retrogg/internal/logger"
)

// healthCheckTimeout bounds the database ping performed by the
// readiness probe.
const healthCheckTimeout = 5 * time.Second

// landingTemplate is the page shown to browsers that open the hub
// address directly.
var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Hostname}}</title>
</head>
<body>
  <h1>{{.Hostname}}</h1>
  <p>A Gadu-Gadu 6.0 server. Point your client at this host and chat like it is 2004.</p>
  <p>Users online: <strong>{{.Online}}</strong></p>
  <p>Messaging endpoint: <code>{{.Hostname}}:{{.GGPort}}</code></p>
  <hr>
  <p><small>retrogg {{.Version}}</small></p>
</body>
</html>
`))

// webHandler serves the landing page and the health probes.
type webHandler struct {
	config    Config
	store     Store
	presence  PresenceCounter
	startTime time.Time
}

func newWebHandler(cfg Config, store Store, presence PresenceCounter) *webHandler {
	return &webHandler{
		config:    cfg,
		store:     store,
		presence:  presence,
		startTime: time.Now(),
	}
}

// online returns the current session count, tolerating a missing hub.
func (h *webHandler) online() int {
	if h.presence == nil {
		return 0
	}
	return h.presence.Online()
}

// Landing handles GET / - the human facing front page.
func (h *webHandler) Landing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := landingTemplate.Execute(w, map[string]any{
		"Hostname": h.config.Hostname,
		"GGPort":   h.config.GGPort,
		"Online":   h.online(),
		"Version":  h.config.Version,
	})
	if err != nil {
		logger.Error("Landing page render failed", "error", err)
	}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. This endpoint should
// always succeed as long as the HTTP server is responsive.
func (h *webHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	writeJSON(w, http.StatusOK, healthyResponse(map[string]any{
		"service":    "retrogg",
		"started_at": h.startTime.UTC().Format(time.RFC3339),
		"uptime":     uptime.Round(time.Second).String(),
		"online":     h.online(),
	}))
}

// Readiness handles GET /health/ready - readiness probe.
//
// Pings the backing database. Returns 503 Service Unavailable when the
// store is missing or unreachable.
func (h *webHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse("store not initialized"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.store.Healthcheck(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, unhealthyResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, healthyResponse(map[string]any{
		"online": h.online(),
	}))
}
