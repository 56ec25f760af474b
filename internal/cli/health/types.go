// Package health provides shared types for health check responses.
package health

// Response represents the HTTP health response structure.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Data      struct {
		Service   string `json:"service"`
		StartedAt string `json:"started_at"`
		Uptime    string `json:"uptime"`
		Online    int    `json:"online"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}

// Healthy reports whether the response carries a passing status.
func (r *Response) Healthy() bool {
	return r.Status == "healthy"
}
