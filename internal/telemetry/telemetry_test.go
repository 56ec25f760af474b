package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"

	"github.com/marmos91/retrogg/internal/logger"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, "retrogg", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.ServiceVersion)
	assert.Equal(t, "localhost:4317", cfg.Endpoint)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, 1.0, cfg.SampleRate)
}

func TestInitDisabled(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.Enabled = false

	shutdown, err := Init(ctx, cfg)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Should be able to call shutdown without error
	err = shutdown(ctx)
	assert.NoError(t, err)

	// Should not be enabled
	assert.False(t, IsEnabled())
}

func TestTracerReturnsNoOp(t *testing.T) {
	// Reset state
	tracer = nil
	enabled = false

	// Without initialization, should return no-op tracer
	tr := Tracer()
	require.NotNil(t, tr)
}

func TestStartSpan(t *testing.T) {
	ctx := context.Background()

	// Even without initialization, StartSpan should work (no-op)
	newCtx, span := StartSpan(ctx, "test.operation")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)

	// Should be able to end the span
	span.End()
}

func TestSpanFromContext(t *testing.T) {
	ctx := context.Background()

	// Should return a span even without active span
	span := SpanFromContext(ctx)
	require.NotNil(t, span)
}

func TestInjectTraceContext(t *testing.T) {
	ctx := context.Background()

	// Without an active span there is nothing to inject; the context
	// passes through untouched.
	out := InjectTraceContext(ctx)
	assert.Equal(t, ctx, out)
	assert.Nil(t, logger.FromContext(out))

	// A no-op span has no trace ID either.
	spanCtx, span := StartSpan(ctx, "test.operation")
	defer span.End()
	out = InjectTraceContext(spanCtx)
	assert.Nil(t, logger.FromContext(out))
}

func TestAddEvent(t *testing.T) {
	ctx := context.Background()

	// Should not panic with no active span
	require.NotPanics(t, func() {
		AddEvent(ctx, "test.event")
	})
}

func TestRecordError(t *testing.T) {
	ctx := context.Background()

	// Should not panic with nil error
	require.NotPanics(t, func() {
		RecordError(ctx, nil)
	})

	// Should not panic with error
	require.NotPanics(t, func() {
		RecordError(ctx, errors.New("test error"))
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Ok, "success")
	})

	require.NotPanics(t, func() {
		SetStatus(ctx, codes.Error, "failed")
	})
}

func TestSetAttributes(t *testing.T) {
	ctx := context.Background()

	// Should not panic
	require.NotPanics(t, func() {
		SetAttributes(ctx, ClientIP("192.168.1.1"))
	})
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	traceID := TraceID(ctx)
	assert.Equal(t, "", traceID)
}

func TestSpanID(t *testing.T) {
	ctx := context.Background()

	// Without active span, should return empty string
	spanID := SpanID(ctx)
	assert.Equal(t, "", spanID)
}

func TestAttributeHelpers(t *testing.T) {
	t.Run("ClientIP", func(t *testing.T) {
		attr := ClientIP("192.168.1.100")
		assert.Equal(t, AttrClientIP, string(attr.Key))
		assert.Equal(t, "192.168.1.100", attr.Value.AsString())
	})

	t.Run("ClientAddr", func(t *testing.T) {
		attr := ClientAddr("192.168.1.100:12345")
		assert.Equal(t, AttrClientAddr, string(attr.Key))
		assert.Equal(t, "192.168.1.100:12345", attr.Value.AsString())
	})

	t.Run("PacketName", func(t *testing.T) {
		attr := PacketName("gg.SendMessage")
		assert.Equal(t, AttrPacket, string(attr.Key))
		assert.Equal(t, "gg.SendMessage", attr.Value.AsString())
	})

	t.Run("UIN", func(t *testing.T) {
		attr := UIN(1_500_000)
		assert.Equal(t, AttrUIN, string(attr.Key))
		assert.Equal(t, int64(1_500_000), attr.Value.AsInt64())
	})

	t.Run("Sender", func(t *testing.T) {
		attr := Sender(1_500_001)
		assert.Equal(t, AttrSender, string(attr.Key))
		assert.Equal(t, int64(1_500_001), attr.Value.AsInt64())
	})

	t.Run("Recipient", func(t *testing.T) {
		attr := Recipient(1_500_002)
		assert.Equal(t, AttrRecipient, string(attr.Key))
		assert.Equal(t, int64(1_500_002), attr.Value.AsInt64())
	})

	t.Run("Seq", func(t *testing.T) {
		attr := Seq(0x12345678)
		assert.Equal(t, AttrSeq, string(attr.Key))
		assert.Equal(t, int64(0x12345678), attr.Value.AsInt64())
	})

	t.Run("StatusName", func(t *testing.T) {
		attr := StatusName("Busy")
		assert.Equal(t, AttrStatus, string(attr.Key))
		assert.Equal(t, "Busy", attr.Value.AsString())
	})

	t.Run("Ack", func(t *testing.T) {
		attr := Ack("queued")
		assert.Equal(t, AttrAck, string(attr.Key))
		assert.Equal(t, "queued", attr.Value.AsString())
	})

	t.Run("MessageID", func(t *testing.T) {
		attr := MessageID(42)
		assert.Equal(t, AttrMessageID, string(attr.Key))
		assert.Equal(t, int64(42), attr.Value.AsInt64())
	})

	t.Run("ContactCount", func(t *testing.T) {
		attr := ContactCount(7)
		assert.Equal(t, AttrContacts, string(attr.Key))
		assert.Equal(t, int64(7), attr.Value.AsInt64())
	})

	t.Run("AuthResult", func(t *testing.T) {
		attr := AuthResult("bad_credentials")
		assert.Equal(t, AttrAuthResult, string(attr.Key))
		assert.Equal(t, "bad_credentials", attr.Value.AsString())
	})

	t.Run("StoreOp", func(t *testing.T) {
		attr := StoreOp("mark_delivered")
		assert.Equal(t, AttrStoreOp, string(attr.Key))
		assert.Equal(t, "mark_delivered", attr.Value.AsString())
	})

	t.Run("Rows", func(t *testing.T) {
		attr := Rows(12)
		assert.Equal(t, AttrRows, string(attr.Key))
		assert.Equal(t, int64(12), attr.Value.AsInt64())
	})
}

func TestStartPacketSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartPacketSpan(ctx, "gg.SendMessage")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// With additional attributes
	newCtx2, span2 := StartPacketSpan(ctx, "gg.NewStatus",
		ClientAddr("192.168.1.100:12345"), UIN(1_500_000))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}

func TestStartStoreSpan(t *testing.T) {
	ctx := context.Background()

	newCtx, span := StartStoreSpan(ctx, "sweep")
	require.NotNil(t, newCtx)
	require.NotNil(t, span)
	span.End()

	// With additional attributes
	newCtx2, span2 := StartStoreSpan(ctx, "mark_delivered", Rows(3))
	require.NotNil(t, newCtx2)
	require.NotNil(t, span2)
	span2.End()
}
