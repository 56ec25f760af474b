package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for protocol operations.
// These follow OpenTelemetry semantic conventions where applicable.
// Protocol-specific keys use the "gg." prefix.
const (
	// ========================================================================
	// Client attributes (protocol-agnostic)
	// ========================================================================
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"
	AttrClientPort = "client.port"

	// ========================================================================
	// Protocol attributes
	// ========================================================================
	AttrPacket    = "gg.packet"    // Decoded packet type name
	AttrUIN       = "gg.uin"       // Session owner's user number
	AttrSender    = "gg.sender"    // Message sender UIN
	AttrRecipient = "gg.recipient" // Message recipient UIN
	AttrSeq       = "gg.seq"       // Client-chosen message sequence number
	AttrStatus    = "gg.status"    // Presence status name
	AttrAck       = "gg.ack"       // Message acknowledgement outcome
	AttrMessageID = "gg.message_id"
	AttrContacts  = "gg.contacts" // Contact list entry count

	// ========================================================================
	// Auth attributes
	// ========================================================================
	AttrAuthResult = "auth.result" // success, bad_credentials, unknown_user

	// ========================================================================
	// Store attributes
	// ========================================================================
	AttrStoreOp = "store.operation"
	AttrRows    = "store.rows"
)

// Span names for fixed operations. Packet handling spans take their
// name from the decoded packet type instead.
const (
	// SpanLogin covers the login handshake from Login60 to the verdict.
	SpanLogin = "gg.login"

	// SpanDeliverPending covers an offline mailbox drain.
	SpanDeliverPending = "gg.deliver_pending"

	// SpanStoreSweep covers one retention sweeper pass.
	SpanStoreSweep = "store.sweep"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for full client address
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// PacketName returns an attribute for the decoded packet type
func PacketName(name string) attribute.KeyValue {
	return attribute.String(AttrPacket, name)
}

// UIN returns an attribute for the session owner's user number
func UIN(uin uint32) attribute.KeyValue {
	return attribute.Int64(AttrUIN, int64(uin))
}

// Sender returns an attribute for a message sender
func Sender(uin uint32) attribute.KeyValue {
	return attribute.Int64(AttrSender, int64(uin))
}

// Recipient returns an attribute for a message recipient
func Recipient(uin uint32) attribute.KeyValue {
	return attribute.Int64(AttrRecipient, int64(uin))
}

// Seq returns an attribute for a message sequence number
func Seq(seq uint32) attribute.KeyValue {
	return attribute.Int64(AttrSeq, int64(seq))
}

// StatusName returns an attribute for a presence status name
func StatusName(name string) attribute.KeyValue {
	return attribute.String(AttrStatus, name)
}

// Ack returns an attribute for a message acknowledgement outcome
func Ack(outcome string) attribute.KeyValue {
	return attribute.String(AttrAck, outcome)
}

// MessageID returns an attribute for a stored message ID
func MessageID(id uint) attribute.KeyValue {
	return attribute.Int64(AttrMessageID, int64(id))
}

// ContactCount returns an attribute for a contact list entry count
func ContactCount(n int) attribute.KeyValue {
	return attribute.Int(AttrContacts, n)
}

// AuthResult returns an attribute for a login verdict
func AuthResult(result string) attribute.KeyValue {
	return attribute.String(AttrAuthResult, result)
}

// StoreOp returns an attribute for a persistence operation name
func StoreOp(op string) attribute.KeyValue {
	return attribute.String(AttrStoreOp, op)
}

// Rows returns an attribute for an affected row count
func Rows(n int) attribute.KeyValue {
	return attribute.Int(AttrRows, n)
}

// StartPacketSpan starts a span for handling one decoded client packet.
// The packet type name becomes the span name, so traces group by
// operation the same way the packet counter metrics do.
func StartPacketSpan(ctx context.Context, packet string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		PacketName(packet),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, packet, trace.WithAttributes(allAttrs...))
}

// StartStoreSpan starts a span for a persistence operation.
func StartStoreSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		StoreOp(operation),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "store."+operation, trace.WithAttributes(allAttrs...))
}
