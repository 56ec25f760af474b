package logger

import "log/slog"

// Standard field keys for structured logging.
// These keys are shared by the GG session layer, the messenger, the stores,
// and the HTTP service. Use them consistently across all log statements for
// log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Protocol & Operation
	// ========================================================================
	KeyProtocol = "protocol" // Protocol surface: gg, http
	KeyPacket   = "packet"   // Wire packet name: LOGIN60, SEND_MESSAGE, etc.
	KeyStatus   = "status"   // Presence status name: AVAILABLE, BUSY, etc.
	KeyAck      = "ack"      // Delivery ack outcome: DELIVERED, QUEUED, etc.

	// ========================================================================
	// Messaging
	// ========================================================================
	KeyUIN       = "uin"       // User identification number
	KeySender    = "sender"    // Sending UIN of a message
	KeyRecipient = "recipient" // Receiving UIN of a message
	KeySeq       = "seq"       // Client-assigned message sequence number
	KeyCount     = "count"     // Generic cardinality: contacts, batch size, rows

	// ========================================================================
	// Client Identification
	// ========================================================================
	KeyClientIP   = "client_ip"   // Client IP address
	KeyClientPort = "client_port" // Client source port
	KeyEmail      = "email"       // Account email address

	// ========================================================================
	// Session & Connection
	// ========================================================================
	KeySessionID = "session_id" // Per-connection session identifier
	KeyRequestID = "request_id" // HTTP request ID from chi middleware

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyPort       = "port"        // Listening port
	KeyAddress    = "address"     // Bind or remote address
	KeyDatabase   = "database"    // Database driver: sqlite, postgres
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Protocol returns a slog.Attr for the protocol surface (gg, http)
func Protocol(proto string) slog.Attr {
	return slog.String(KeyProtocol, proto)
}

// Packet returns a slog.Attr for a wire packet name
func Packet(name string) slog.Attr {
	return slog.String(KeyPacket, name)
}

// Status returns a slog.Attr for a presence status name
func Status(name string) slog.Attr {
	return slog.String(KeyStatus, name)
}

// Ack returns a slog.Attr for a delivery ack outcome
func Ack(outcome string) slog.Attr {
	return slog.String(KeyAck, outcome)
}

// UIN returns a slog.Attr for a user identification number
func UIN(uin uint32) slog.Attr {
	return slog.Any(KeyUIN, uin)
}

// Sender returns a slog.Attr for the sending UIN of a message
func Sender(uin uint32) slog.Attr {
	return slog.Any(KeySender, uin)
}

// Recipient returns a slog.Attr for the receiving UIN of a message
func Recipient(uin uint32) slog.Attr {
	return slog.Any(KeyRecipient, uin)
}

// Seq returns a slog.Attr for a message sequence number
func Seq(seq uint32) slog.Attr {
	return slog.Any(KeySeq, seq)
}

// Count returns a slog.Attr for a generic cardinality
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}

// ClientIP returns a slog.Attr for client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// ClientPort returns a slog.Attr for client source port
func ClientPort(port int) slog.Attr {
	return slog.Int(KeyClientPort, port)
}

// Email returns a slog.Attr for an account email address
func Email(addr string) slog.Attr {
	return slog.String(KeyEmail, addr)
}

// SessionID returns a slog.Attr for a session identifier
func SessionID(id string) slog.Attr {
	return slog.String(KeySessionID, id)
}

// RequestID returns a slog.Attr for an HTTP request ID
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Port returns a slog.Attr for a listening port
func Port(port int) slog.Attr {
	return slog.Int(KeyPort, port)
}

// Address returns a slog.Attr for a bind or remote address
func Address(addr string) slog.Attr {
	return slog.String(KeyAddress, addr)
}

// Database returns a slog.Attr for the database driver name
func Database(driver string) slog.Attr {
	return slog.String(KeyDatabase, driver)
}
