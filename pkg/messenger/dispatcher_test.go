package messenger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/retrogg/internal/protocol/gg"
	"github.com/marmos91/retrogg/pkg/models"
)

// fakeMessageStore is a map-backed MessageStore for dispatcher tests.
type fakeMessageStore struct {
	mu     sync.Mutex
	users  map[uint32]bool
	stored []models.Message
	nextID uint
}

func newFakeMessageStore(uins ...uint32) *fakeMessageStore {
	s := &fakeMessageStore{users: make(map[uint32]bool)}
	for _, uin := range uins {
		s.users[uin] = true
	}
	return s
}

func (s *fakeMessageStore) UserExists(_ context.Context, uin uint32) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[uin], nil
}

func (s *fakeMessageStore) StoreMessage(_ context.Context, msg *models.Message) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	msg.ID = s.nextID
	s.stored = append(s.stored, *msg)
	return msg.ID, nil
}

func (s *fakeMessageStore) storedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stored)
}

func (s *fakeMessageStore) lastStored() models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stored[len(s.stored)-1]
}

// recvSessionMessage reads one dispatcher wake with a short timeout.
func recvSessionMessage(t *testing.T, ch <-chan SessionMessage) (SessionMessage, bool) {
	t.Helper()
	select {
	case sm := <-ch:
		return sm, true
	case <-time.After(100 * time.Millisecond):
		return SessionMessage{}, false
	}
}

func TestDispatchUnknownParties(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown recipient", func(t *testing.T) {
		st := newFakeMessageStore(1_000_000)
		d := NewDispatcher(st)

		ack, err := d.Dispatch(ctx, 1_000_000, gg.SendMessage{Recipient: 2_000_000, Seq: 1, Message: "czesc"})
		require.NoError(t, err)
		assert.Equal(t, gg.AckNotDelivered, ack)
		assert.Zero(t, st.storedCount(), "nothing may be persisted for unknown parties")
	})

	t.Run("unknown sender", func(t *testing.T) {
		st := newFakeMessageStore(2_000_000)
		d := NewDispatcher(st)

		ack, err := d.Dispatch(ctx, 1_000_000, gg.SendMessage{Recipient: 2_000_000, Seq: 1, Message: "czesc"})
		require.NoError(t, err)
		assert.Equal(t, gg.AckNotDelivered, ack)
		assert.Zero(t, st.storedCount())
	})
}

func TestDispatchOfflineRecipientQueues(t *testing.T) {
	st := newFakeMessageStore(1_000_000, 2_000_000)
	d := NewDispatcher(st)

	before := uint32(time.Now().Unix())
	ack, err := d.Dispatch(context.Background(), 1_000_000, gg.SendMessage{
		Recipient: 2_000_000,
		Seq:       7,
		Class:     gg.ClassChat,
		Message:   "jestes tam?",
	})
	require.NoError(t, err)
	assert.Equal(t, gg.AckQueued, ack)

	require.Equal(t, 1, st.storedCount())
	msg := st.lastStored()
	assert.Equal(t, uint32(2_000_000), msg.RecipientUIN)
	assert.Equal(t, uint32(1_000_000), msg.SenderUIN)
	assert.Equal(t, uint32(7), msg.Seq)
	assert.Equal(t, uint32(gg.ClassChat), msg.Class)
	assert.Equal(t, "jestes tam?", msg.Message)
	assert.GreaterOrEqual(t, msg.Time, before, "time is stamped by the server")
	assert.Nil(t, msg.DeliveredAt)
}

func TestDispatchOnlineRecipientWakesSession(t *testing.T) {
	st := newFakeMessageStore(1_000_000, 2_000_000)
	d := NewDispatcher(st)

	wake := d.Register(2_000_000)

	ack, err := d.Dispatch(context.Background(), 1_000_000, gg.SendMessage{
		Recipient: 2_000_000,
		Seq:       1,
		Message:   "siema",
	})
	require.NoError(t, err)
	assert.Equal(t, gg.AckDelivered, ack)

	sm, ok := recvSessionMessage(t, wake)
	require.True(t, ok, "recipient session should be woken")
	assert.Equal(t, QueuedMessage, sm.Kind)
	assert.Equal(t, st.lastStored().ID, sm.MessageID)

	_, ok = recvSessionMessage(t, wake)
	assert.False(t, ok, "exactly one wake per dispatch")

	assert.Equal(t, 1, st.storedCount(), "live delivery is persisted too")
}

func TestDispatchPersistsFormatting(t *testing.T) {
	st := newFakeMessageStore(1_000_000, 2_000_000)
	d := NewDispatcher(st)

	formats := []gg.RichTextFormat{{Position: 0, Bold: true}}
	_, err := d.Dispatch(context.Background(), 1_000_000, gg.SendMessage{
		Recipient:  2_000_000,
		Message:    "pogrubione",
		Formatting: formats,
	})
	require.NoError(t, err)

	assert.Equal(t, gg.EncodeRichText(formats), st.lastStored().Formatting)
}

func TestDispatchFullChannelRespectsContext(t *testing.T) {
	st := newFakeMessageStore(1_000_000, 2_000_000)
	d := NewDispatcher(st)

	_ = d.Register(2_000_000)
	ch := d.sessions[2_000_000]
	for i := 0; i < dispatcherBuffer; i++ {
		ch <- SessionMessage{Kind: QueuedMessage, MessageID: uint(i)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dispatch(ctx, 1_000_000, gg.SendMessage{Recipient: 2_000_000, Message: "pelno"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, st.storedCount(), "message is persisted before the delivery attempt")
}

func TestKick(t *testing.T) {
	st := newFakeMessageStore(1_000_000, 2_000_000)
	d := NewDispatcher(st)

	t.Run("kick of unknown uin is a no-op", func(t *testing.T) {
		d.Kick(9_999_999)
	})

	t.Run("kick delivers one disconnect and unroutes", func(t *testing.T) {
		wake := d.Register(2_000_000)

		d.Kick(2_000_000)

		sm, ok := recvSessionMessage(t, wake)
		require.True(t, ok)
		assert.Equal(t, Disconnect, sm.Kind)

		_, ok = recvSessionMessage(t, wake)
		assert.False(t, ok, "exactly one disconnect per kick")

		ack, err := d.Dispatch(context.Background(), 1_000_000, gg.SendMessage{Recipient: 2_000_000, Message: "halo"})
		require.NoError(t, err)
		assert.Equal(t, gg.AckQueued, ack, "kicked session must no longer be routable")
	})
}

func TestUnregisterStopsRouting(t *testing.T) {
	st := newFakeMessageStore(1_000_000, 2_000_000)
	d := NewDispatcher(st)

	wake := d.Register(2_000_000)
	d.Unregister(2_000_000)

	ack, err := d.Dispatch(context.Background(), 1_000_000, gg.SendMessage{Recipient: 2_000_000, Message: "halo"})
	require.NoError(t, err)
	assert.Equal(t, gg.AckQueued, ack)

	_, ok := recvSessionMessage(t, wake)
	assert.False(t, ok)
}
