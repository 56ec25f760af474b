// Package prometheus contains the Prometheus-backed implementations of
// the collector interfaces in pkg/metrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/retrogg/pkg/metrics"
)

// ggMetrics is the Prometheus implementation for GG adapter metrics.
type ggMetrics struct {
	activeConnections prometheus.Gauge
	connectionsTotal  *prometheus.CounterVec
	loginsTotal       *prometheus.CounterVec
	kicksTotal        prometheus.Counter
	packetsTotal      *prometheus.CounterVec
	messagesTotal     *prometheus.CounterVec
	offlineDelivered  prometheus.Counter
	onlineUsers       prometheus.Gauge
}

var _ metrics.GGMetrics = (*ggMetrics)(nil)

// NewGGMetrics creates a new Prometheus-backed GGMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewGGMetrics() *ggMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &ggMetrics{
		activeConnections: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "retrogg_active_connections",
				Help: "Current number of open GG client connections",
			},
		),
		connectionsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrogg_connections_total",
				Help: "Total GG connections by lifecycle event",
			},
			[]string{"event"}, // "accepted", "closed", "force_closed"
		),
		loginsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrogg_logins_total",
				Help: "Total login attempts by outcome",
			},
			[]string{"outcome"}, // "success", "bad_credentials", "unknown_user"
		),
		kicksTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "retrogg_kicks_total",
				Help: "Total sessions evicted by a newer login for the same UIN",
			},
		),
		packetsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrogg_packets_total",
				Help: "Total inbound packets handled by running sessions, by kind",
			},
			[]string{"kind"},
		),
		messagesTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "retrogg_messages_total",
				Help: "Total relayed messages by ack outcome",
			},
			[]string{"outcome"}, // "delivered", "queued", "not_delivered"
		),
		offlineDelivered: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "retrogg_offline_messages_delivered_total",
				Help: "Total messages drained from the offline queue",
			},
		),
		onlineUsers: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "retrogg_online_users",
				Help: "Current number of signed-in users",
			},
		),
	}
}

// SetActiveConnections updates the current connection count.
func (m *ggMetrics) SetActiveConnections(count int32) {
	if m == nil {
		return
	}
	m.activeConnections.Set(float64(count))
}

// RecordConnectionAccepted increments the accepted connections counter.
func (m *ggMetrics) RecordConnectionAccepted() {
	if m == nil {
		return
	}
	m.connectionsTotal.WithLabelValues("accepted").Inc()
}

// RecordConnectionClosed increments the closed connections counter.
func (m *ggMetrics) RecordConnectionClosed() {
	if m == nil {
		return
	}
	m.connectionsTotal.WithLabelValues("closed").Inc()
}

// RecordConnectionForceClosed increments the force-closed connections counter.
func (m *ggMetrics) RecordConnectionForceClosed() {
	if m == nil {
		return
	}
	m.connectionsTotal.WithLabelValues("force_closed").Inc()
}

// RecordLogin records a finished login attempt by outcome.
func (m *ggMetrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.loginsTotal.WithLabelValues(outcome).Inc()
}

// RecordKick records a session evicted by a newer login.
func (m *ggMetrics) RecordKick() {
	if m == nil {
		return
	}
	m.kicksTotal.Inc()
}

// RecordPacket records one handled inbound packet by kind.
func (m *ggMetrics) RecordPacket(kind string) {
	if m == nil {
		return
	}
	m.packetsTotal.WithLabelValues(kind).Inc()
}

// RecordMessageDispatched records a relayed message by ack outcome.
func (m *ggMetrics) RecordMessageDispatched(outcome string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(outcome).Inc()
}

// RecordOfflineDelivered counts messages drained from the offline queue.
func (m *ggMetrics) RecordOfflineDelivered(count int) {
	if m == nil {
		return
	}
	m.offlineDelivered.Add(float64(count))
}

// SetOnlineUsers updates the signed-in user gauge.
func (m *ggMetrics) SetOnlineUsers(count int) {
	if m == nil {
		return
	}
	m.onlineUsers.Set(float64(count))
}
