package metrics

// GGMetrics provides observability for the GG adapter and its sessions.
//
// This interface is optional - pass nil to disable metrics collection
// with zero overhead.
//
// Example usage:
//
//	// With metrics enabled
//	metrics.InitRegistry()
//	ggMetrics := prometheus.NewGGMetrics()
//	adapter := gg.New(config, store, presence, dispatcher, ggMetrics)
//
//	// Without metrics (pass nil for zero overhead)
//	adapter := gg.New(config, store, presence, dispatcher, nil)
type GGMetrics interface {
	// SetActiveConnections updates the current connection count.
	SetActiveConnections(count int32)

	// RecordConnectionAccepted increments the total accepted connections counter.
	RecordConnectionAccepted()

	// RecordConnectionClosed increments the total closed connections counter.
	RecordConnectionClosed()

	// RecordConnectionForceClosed increments the force-closed connections
	// counter. Called when connections are forcibly closed after the
	// shutdown timeout.
	RecordConnectionForceClosed()

	// RecordLogin records a finished login attempt.
	//
	// Parameters:
	//   - outcome: "success", "bad_credentials" or "unknown_user"
	RecordLogin(outcome string)

	// RecordKick records a session evicted by a newer login for the same
	// UIN.
	RecordKick()

	// RecordPacket records one inbound packet handled by a running
	// session, labelled by packet kind.
	RecordPacket(kind string)

	// RecordMessageDispatched records a relayed message by its ack
	// outcome.
	//
	// Parameters:
	//   - outcome: "delivered", "queued" or "not_delivered"
	RecordMessageDispatched(outcome string)

	// RecordOfflineDelivered counts messages drained from the offline
	// queue.
	RecordOfflineDelivered(count int)

	// SetOnlineUsers updates the signed-in user gauge.
	SetOnlineUsers(count int)
}
