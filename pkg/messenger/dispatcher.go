package messenger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/marmos91/retrogg/internal/logger"
	"github.com/marmos91/retrogg/internal/protocol/gg"
	"github.com/marmos91/retrogg/pkg/models"
)

// MessageStore is the slice of the persistence layer the dispatcher needs.
// pkg/store's Store satisfies it.
type MessageStore interface {
	UserExists(ctx context.Context, uin uint32) (bool, error)
	StoreMessage(ctx context.Context, msg *models.Message) (uint, error)
}

// ErrSendTimeout means a recipient session did not accept a delivery wake
// within the dispatch timeout. The message is already persisted when this
// happens and will be delivered as a pending message later.
var ErrSendTimeout = errors.New("timed out handing message to recipient session")

const (
	// dispatcherBuffer is the per-session delivery channel capacity.
	dispatcherBuffer = 100

	// sendTimeout bounds how long Dispatch waits for a recipient session
	// to accept a wake.
	sendTimeout = 5 * time.Second

	// kickYield gives an evicted session time to finish its teardown
	// before the new session registers.
	kickYield = 10 * time.Millisecond
)

// SessionMessageKind discriminates dispatcher wakes.
type SessionMessageKind int

const (
	// Disconnect tells a session another login took over and it must end.
	Disconnect SessionMessageKind = iota

	// QueuedMessage tells a session a stored message awaits delivery.
	QueuedMessage
)

// SessionMessage is one wake delivered to a session's dispatcher channel.
type SessionMessage struct {
	Kind SessionMessageKind

	// MessageID identifies the stored message when Kind is QueuedMessage.
	MessageID uint
}

// Dispatcher routes messages between live sessions and persists every
// message before any delivery attempt, so a crash mid-delivery downgrades
// to offline delivery instead of losing the message.
type Dispatcher struct {
	mu       sync.RWMutex
	sessions map[uint32]chan SessionMessage
	store    MessageStore
}

// NewDispatcher creates a dispatcher backed by the given store.
func NewDispatcher(st MessageStore) *Dispatcher {
	return &Dispatcher{
		sessions: make(map[uint32]chan SessionMessage),
		store:    st,
	}
}

// Register creates the delivery channel for a session.
func (d *Dispatcher) Register(uin uint32) <-chan SessionMessage {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch := make(chan SessionMessage, dispatcherBuffer)
	d.sessions[uin] = ch
	return ch
}

// Unregister unroutes a session's delivery channel.
func (d *Dispatcher) Unregister(uin uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, uin)
}

// Kick evicts a prior session for the UIN: it sends one Disconnect wake,
// unroutes the channel, and yields briefly so the evicted session can run
// its teardown before the caller registers anew.
func (d *Dispatcher) Kick(uin uint32) {
	d.mu.Lock()
	ch, ok := d.sessions[uin]
	if ok {
		delete(d.sessions, uin)
	}
	d.mu.Unlock()

	if !ok {
		return
	}

	logger.Info("user already signed in, kicking other session", logger.UIN(uin))
	select {
	case ch <- SessionMessage{Kind: Disconnect}:
	default:
	}
	time.Sleep(kickYield)
}

// Dispatch persists a message from sender and hands it to the recipient's
// session when one is registered.
//
// The returned AckStatus mirrors what the sender's client is told:
// NotDelivered when either party has no account (nothing is persisted),
// Delivered when a live session accepted the wake, Queued otherwise.
func (d *Dispatcher) Dispatch(ctx context.Context, sender uint32, msg gg.SendMessage) (gg.AckStatus, error) {
	senderExists, err := d.store.UserExists(ctx, sender)
	if err != nil {
		return 0, fmt.Errorf("failed to look up sender: %w", err)
	}
	recipientExists, err := d.store.UserExists(ctx, msg.Recipient)
	if err != nil {
		return 0, fmt.Errorf("failed to look up recipient: %w", err)
	}
	if !senderExists || !recipientExists {
		logger.Error("message dispatch failed: one or both users do not exist",
			logger.Sender(sender),
			logger.Recipient(msg.Recipient))
		return gg.AckNotDelivered, nil
	}

	// Persistence precedes delivery.
	id, err := d.store.StoreMessage(ctx, &models.Message{
		RecipientUIN: msg.Recipient,
		SenderUIN:    sender,
		Seq:          msg.Seq,
		Time:         uint32(time.Now().Unix()),
		Class:        uint32(msg.Class),
		Message:      msg.Message,
		Formatting:   gg.EncodeRichText(msg.Formatting),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to store message: %w", err)
	}

	d.mu.RLock()
	ch := d.sessions[msg.Recipient]
	d.mu.RUnlock()

	if ch == nil {
		logger.Info("message queued, recipient offline",
			logger.Sender(sender),
			logger.Recipient(msg.Recipient))
		return gg.AckQueued, nil
	}

	timer := time.NewTimer(sendTimeout)
	defer timer.Stop()
	select {
	case ch <- SessionMessage{Kind: QueuedMessage, MessageID: id}:
		logger.Debug("message handed to recipient session",
			logger.Sender(sender),
			logger.Recipient(msg.Recipient))
		return gg.AckDelivered, nil
	case <-timer.C:
		return 0, ErrSendTimeout
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
