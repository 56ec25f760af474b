package gg

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/marmos91/retrogg/internal/logger"
	"github.com/marmos91/retrogg/internal/protocol/gg"
	"github.com/marmos91/retrogg/internal/telemetry"
	"github.com/marmos91/retrogg/pkg/messenger"
	"github.com/marmos91/retrogg/pkg/models"
)

const (
	// authTimeout bounds the whole login handshake, measured from the
	// Welcome frame.
	authTimeout = 60 * time.Second

	// idleTimeout ends sessions with no traffic, no wake and no delivery.
	// Every handled event re-arms it.
	idleTimeout = 5 * time.Minute

	// contactListSettle separates the NotifyReply60 roster from the
	// presence refresh that follows it.
	contactListSettle = 100 * time.Millisecond

	// readBufferSize is the socket read chunk size. Frames are small.
	readBufferSize = 4096
)

// Login seeds are drawn from [seedMin, seedMin+seedSpan).
const (
	seedMin  uint32 = 100_000
	seedSpan uint32 = 900_000
)

// loginSeed draws the hash seed announced in the Welcome frame.
func loginSeed() uint32 {
	var buf [8]byte
	_, _ = rand.Read(buf[:])
	return seedMin + uint32(binary.LittleEndian.Uint64(buf[:])%uint64(seedSpan))
}

// readResult is one decoded inbound frame, or the read error that ended
// the stream.
type readResult struct {
	pkt gg.Packet
	err error
}

// Session drives one client connection through the protocol phases:
// greeting, login, hub registration, the running multiplex loop, and
// cleanup. It implements adapter.ConnectionHandler.
//
// A dedicated goroutine owns all socket reads and feeds decoded packets
// through the inbound channel; the session goroutine owns all writes
// and every piece of session state, so neither needs locking.
type Session struct {
	server   *Adapter
	conn     net.Conn
	peerAddr string

	seed          uint32
	uin           uint32
	authenticated bool

	// initialPresence is the status carried inside Login60, published
	// once after registration and then dropped.
	initialPresence *messenger.Presence

	contacts contactBook

	// notifyBatch accumulates NotifyFirst chunks until NotifyLast.
	notifyBatch []gg.Contact

	// watched collects every UIN this session subscribed to, so cleanup
	// can withdraw exactly those subscriptions.
	watched []uint32

	inbound    chan readResult
	readerStop chan struct{}

	presenceWake <-chan uint32
	sessionWake  <-chan messenger.SessionMessage
}

// newSession creates a session controller for an accepted connection.
func newSession(server *Adapter, conn net.Conn) *Session {
	return &Session{
		server:     server,
		conn:       conn,
		peerAddr:   conn.RemoteAddr().String(),
		seed:       loginSeed(),
		inbound:    make(chan readResult),
		readerStop: make(chan struct{}),
	}
}

// Serve runs the session to completion. The context comes from the
// adapter and is cancelled on server shutdown.
func (c *Session) Serve(ctx context.Context) {
	defer c.handleClose()

	go c.readLoop()

	err := c.establish(ctx)
	if err == nil {
		c.sync()
		err = c.run(ctx)
	}
	if err != nil {
		logger.Error("Session failed", logger.Address(c.peerAddr), logger.Err(err))
	}
}

// handleClose releases the session when Serve exits for any reason,
// including a panic in a handler. Cleanup lives here so that it also
// runs on the panic path.
func (c *Session) handleClose() {
	if r := recover(); r != nil {
		logger.Error("Panic in GG session handler", logger.Address(c.peerAddr), "error", r)
	}

	c.cleanup()
	close(c.readerStop)
	_ = c.conn.Close()
	logger.Debug("GG session closed", logger.Address(c.peerAddr))
}

// readLoop decodes frames off the socket and hands them to the serve
// loop. Buffered frames are drained before any read error surfaces, the
// way a framed stream yields its items before EOF.
func (c *Session) readLoop() {
	dec := gg.NewDecoder(gg.ModeServer)
	buf := make([]byte, 0, readBufferSize)
	chunk := make([]byte, readBufferSize)

	var readErr error
	for {
		for {
			pkt, n, err := dec.Decode(buf)
			if errors.Is(err, gg.ErrNeedMore) {
				break
			}
			if err != nil {
				c.report(readResult{err: err})
				return
			}
			rest := copy(buf, buf[n:])
			buf = buf[:rest]
			if !c.report(readResult{pkt: pkt}) {
				return
			}
		}

		if readErr != nil {
			c.report(readResult{err: readErr})
			return
		}

		n, err := c.conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		readErr = err
	}
}

// report hands one result to the serve loop, giving up when the session
// is already tearing down.
func (c *Session) report(res readResult) bool {
	select {
	case c.inbound <- res:
		return true
	case <-c.readerStop:
		return false
	}
}

// send writes one encoded frame. The session goroutine is the only
// writer, so writes need no locking.
func (c *Session) send(pkt gg.Packet) error {
	if _, err := c.conn.Write(gg.Encode(pkt)); err != nil {
		return fmt.Errorf("failed to send %T: %w", pkt, err)
	}
	return nil
}

// readFailure maps a broken read to the session-ending condition it
// reflects. Shutdown interrupts blocking reads with a short deadline, so
// a read error under a cancelled context is the shutdown path.
func (c *Session) readFailure(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		_ = c.send(gg.Disconnect{})
		return ErrServerShutdown
	}
	if errors.Is(err, io.EOF) {
		logger.Info("Connection closed by peer", logger.Address(c.peerAddr), logger.UIN(c.uin))
		return ErrClientDisconnected
	}
	logger.Error("Error reading packet", logger.Address(c.peerAddr), logger.Err(err))
	return err
}

// establish runs the login handshake: Welcome with the seed, then wait
// for a Login60 whose hash matches the account password keyed with that
// seed. The whole exchange must finish inside authTimeout. Packets
// other than Login60 are ignored.
func (c *Session) establish(ctx context.Context) error {
	logger.Info("Sending welcome packet", logger.Address(c.peerAddr))
	if err := c.send(gg.Welcome{Seed: c.seed}); err != nil {
		return err
	}

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Connection closing due to shutdown", logger.Address(c.peerAddr))
			if err := c.send(gg.Disconnect{}); err != nil {
				return err
			}
			return ErrServerShutdown

		case <-timeout.C:
			logger.Error("Authentication timed out", logger.Address(c.peerAddr))
			if err := c.send(gg.Disconnect{}); err != nil {
				return err
			}
			return ErrAuthTimeout

		case in := <-c.inbound:
			if in.err != nil {
				return c.readFailure(ctx, in.err)
			}
			login, ok := in.pkt.(gg.Login60)
			if !ok {
				logger.Warn("Ignoring packet before login", logger.Packet(fmt.Sprintf("%T", in.pkt)))
				continue
			}
			return c.authenticate(ctx, login)
		}
	}
}

// authenticate resolves the Login60 against the account store. On
// success the session keeps the login's status fields as its initial
// presence and answers LoginOK.
func (c *Session) authenticate(ctx context.Context, login gg.Login60) error {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanLogin, trace.WithAttributes(
		telemetry.ClientAddr(c.peerAddr),
		telemetry.UIN(login.UIN)))
	defer span.End()
	ctx = telemetry.InjectTraceContext(ctx)

	logger.Info("Received login", logger.UIN(login.UIN), logger.Address(c.peerAddr))

	user, err := c.server.store.GetUser(ctx, login.UIN)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			logger.Error("User not found", logger.UIN(login.UIN))
			telemetry.SetAttributes(ctx, telemetry.AuthResult("unknown_user"))
			if c.server.metrics != nil {
				c.server.metrics.RecordLogin("unknown_user")
			}
			if sendErr := c.send(gg.LoginFailed{}); sendErr != nil {
				return sendErr
			}
			return ErrInvalidCredentials
		}
		telemetry.RecordError(ctx, err)
		return fmt.Errorf("failed to look up user %d: %w", login.UIN, err)
	}

	if gg.LoginHash(user.Password, c.seed) != login.Hash {
		logger.Error("Invalid password", logger.UIN(login.UIN))
		telemetry.SetAttributes(ctx, telemetry.AuthResult("bad_credentials"))
		if c.server.metrics != nil {
			c.server.metrics.RecordLogin("bad_credentials")
		}
		if sendErr := c.send(gg.LoginFailed{}); sendErr != nil {
			return sendErr
		}
		return ErrInvalidCredentials
	}

	logger.Info("Authentication successful", logger.UIN(login.UIN), logger.Address(c.peerAddr))
	telemetry.SetAttributes(ctx, telemetry.AuthResult("success"))
	if c.server.metrics != nil {
		c.server.metrics.RecordLogin("success")
	}
	c.uin = login.UIN
	c.authenticated = true
	c.initialPresence = &messenger.Presence{
		UIN:         login.UIN,
		Status:      login.Status,
		Description: login.Description,
		Time:        login.Time,
	}

	return c.send(gg.LoginOK{})
}

// sync joins the shared hubs: evict any previous session for this UIN,
// register for presence and dispatch wakes, then publish the presence
// carried by the login.
func (c *Session) sync() {
	c.server.dispatcher.Kick(c.uin)
	c.presenceWake = c.server.presence.Register(c.uin)
	c.sessionWake = c.server.dispatcher.Register(c.uin)

	presence := messenger.Available(c.uin)
	if c.initialPresence != nil {
		presence = *c.initialPresence
		c.initialPresence = nil
	}
	c.server.presence.Notify(presence)

	if c.server.metrics != nil {
		c.server.metrics.SetOnlineUsers(c.server.presence.Online())
	}
}

// run multiplexes the authenticated session: inbound frames, dispatcher
// wakes, presence wakes, the idle timer and server shutdown.
func (c *Session) run(ctx context.Context) error {
	logger.Info("Starting user session", logger.UIN(c.uin))

	idle := time.NewTimer(idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("User session shutting down", logger.UIN(c.uin))
			if err := c.send(gg.Disconnect{}); err != nil {
				return err
			}
			return nil

		case <-idle.C:
			logger.Error("User timeout", logger.UIN(c.uin))
			return ErrSessionTimeout

		case wake := <-c.sessionWake:
			stop, err := c.handleWake(ctx, wake)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}

		case contact, ok := <-c.presenceWake:
			if !ok {
				// A newer session replaced the wake channel; the
				// dispatcher Disconnect is on its way.
				c.presenceWake = nil
				break
			}
			p := c.server.presence.Find(contact)
			logger.Info("Presence changed, sending new presence to client",
				logger.UIN(c.uin), "contact", contact, logger.Status(p.Status.String()))
			if err := c.send(gg.Status60{Contact: p.ContactStatus()}); err != nil {
				return err
			}

		case in := <-c.inbound:
			if in.err != nil {
				err := c.readFailure(ctx, in.err)
				if errors.Is(err, ErrServerShutdown) {
					return nil
				}
				return err
			}
			stop, err := c.handleInbound(ctx, in.pkt)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}

		// Any handled event re-arms the inactivity window.
		if !idle.Stop() {
			select {
			case <-idle.C:
			default:
			}
		}
		idle.Reset(idleTimeout)
	}
}

// handleWake processes one dispatcher wake. A true stop means the
// session ends gracefully.
func (c *Session) handleWake(ctx context.Context, wake messenger.SessionMessage) (bool, error) {
	switch wake.Kind {
	case messenger.Disconnect:
		logger.Info("Already signed in elsewhere, ending this session", logger.UIN(c.uin))
		if c.server.metrics != nil {
			c.server.metrics.RecordKick()
		}
		if err := c.send(gg.Disconnect{}); err != nil {
			return false, err
		}
		return true, nil

	case messenger.QueuedMessage:
		logger.Info("Delivering message", "message_id", wake.MessageID, logger.UIN(c.uin))

		msg, err := c.server.store.GetPendingMessage(ctx, wake.MessageID)
		if err != nil {
			if errors.Is(err, models.ErrMessageNotFound) {
				logger.Error("Message already delivered", "message_id", wake.MessageID)
				return false, nil
			}
			return false, err
		}

		if c.contacts.isBlocked(msg.SenderUIN) {
			logger.Error("Sender is blocked, skipping message delivery",
				logger.Sender(msg.SenderUIN), logger.UIN(c.uin))
		} else if err := c.send(recvMessage(msg)); err != nil {
			return false, err
		}

		if err := c.server.store.MarkMessageDelivered(ctx, wake.MessageID); err != nil {
			return false, err
		}
	}
	return false, nil
}

// handleInbound counts and traces one decoded client frame, then hands
// it to the packet dispatch. A true stop means the session ends
// gracefully.
func (c *Session) handleInbound(ctx context.Context, pkt gg.Packet) (bool, error) {
	name := fmt.Sprintf("%T", pkt)
	if c.server.metrics != nil {
		c.server.metrics.RecordPacket(name)
	}

	ctx, span := telemetry.StartPacketSpan(ctx, name,
		telemetry.ClientAddr(c.peerAddr),
		telemetry.UIN(c.uin))
	defer span.End()
	ctx = telemetry.InjectTraceContext(ctx)

	stop, err := c.dispatchPacket(ctx, pkt)
	if err != nil && !errors.Is(err, ErrClientDisconnected) {
		// A Disconnect frame is a normal ending, not a failure.
		telemetry.RecordError(ctx, err)
	}
	return stop, err
}

// dispatchPacket processes one decoded client frame in the running
// phase.
func (c *Session) dispatchPacket(ctx context.Context, pkt gg.Packet) (bool, error) {
	switch p := pkt.(type) {
	case gg.Disconnect:
		logger.Info("Connection closed", logger.UIN(c.uin))
		return false, ErrClientDisconnected

	case gg.SendMessage:
		logger.Info("Received message, relaying it to recipient",
			logger.UIN(c.uin), logger.Recipient(p.Recipient), logger.Seq(p.Seq))
		telemetry.SetAttributes(ctx, telemetry.Recipient(p.Recipient), telemetry.Seq(p.Seq))
		status, err := c.server.dispatcher.Dispatch(ctx, c.uin, p)
		if err != nil {
			return false, err
		}
		telemetry.SetAttributes(ctx, telemetry.Ack(strings.ToLower(status.String())))
		if c.server.metrics != nil {
			c.server.metrics.RecordMessageDispatched(strings.ToLower(status.String()))
		}
		if err := c.send(gg.SendMsgAck{Status: status, Recipient: p.Recipient, Seq: p.Seq}); err != nil {
			return false, err
		}

	case gg.NewStatus:
		logger.Info("Client changed status, sending info to other contacts",
			logger.UIN(c.uin), logger.Status(p.Status.String()))
		c.server.presence.Notify(messenger.Presence{
			UIN:         c.uin,
			Status:      p.Status,
			Description: p.Description,
			Time:        p.Time,
		})

	case gg.Ping:
		logger.Info("Received ping, sending pong", logger.UIN(c.uin))
		if err := c.send(gg.Pong{}); err != nil {
			return false, err
		}

	case gg.ListEmpty:
		logger.Info("Client has empty contact list", logger.UIN(c.uin))
		if err := c.deliverPendingMessages(ctx); err != nil {
			return false, err
		}

	case gg.NotifyFirst:
		logger.Info("Received first batch of contacts", logger.UIN(c.uin), logger.Count(len(p.Contacts)))
		c.notifyBatch = append(c.notifyBatch, p.Contacts...)

	case gg.NotifyLast:
		logger.Info("Received last batch of contacts, processing contact list",
			logger.UIN(c.uin), logger.Count(len(c.notifyBatch)+len(p.Contacts)))
		c.notifyBatch = append(c.notifyBatch, p.Contacts...)
		if err := c.handleContactList(ctx, c.notifyBatch); err != nil {
			return false, err
		}
		c.notifyBatch = c.notifyBatch[:0]
		if err := c.deliverPendingMessages(ctx); err != nil {
			return false, err
		}

	default:
		logger.Info("Ignoring packet", logger.UIN(c.uin), logger.Packet(fmt.Sprintf("%T", pkt)))
	}
	return false, nil
}

// handleContactList processes a complete contact-list upload: remember
// the book, subscribe to the uploaded contacts that have accounts, and
// answer with their current statuses. The trailing refresh re-announces
// this user so mutual contacts that uploaded earlier see them come up.
func (c *Session) handleContactList(ctx context.Context, contacts []gg.Contact) error {
	friends := make([]uint32, 0, len(contacts))
	for _, entry := range contacts {
		if entry.Type != gg.ContactBlocked {
			friends = append(friends, entry.UIN)
		}
	}

	users, err := c.server.store.GetUsersByUINs(ctx, friends)
	if err != nil {
		return fmt.Errorf("failed to resolve contact list: %w", err)
	}
	existing := make([]uint32, 0, len(users))
	for _, user := range users {
		existing = append(existing, user.UIN)
	}

	c.contacts.set(contacts)
	c.watched = append(c.watched, existing...)

	logger.Info("Sending contact list statuses",
		logger.UIN(c.uin), logger.Count(len(existing)), "uploaded", len(friends))

	c.server.presence.Subscribe(c.uin, existing...)

	statuses := make([]gg.ContactStatus, 0, len(existing))
	for _, uin := range existing {
		statuses = append(statuses, c.server.presence.Find(uin).ContactStatus())
	}
	if err := c.send(gg.NotifyReply60{Contacts: statuses}); err != nil {
		return err
	}

	time.Sleep(contactListSettle)
	c.server.presence.Refresh(c.uin)
	return nil
}

// deliverPendingMessages drains the offline mailbox in stored order.
// Messages from blocked senders are skipped but still marked delivered,
// so they never come back.
func (c *Session) deliverPendingMessages(ctx context.Context) error {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanDeliverPending,
		trace.WithAttributes(telemetry.UIN(c.uin)))
	defer span.End()

	logger.Info("Starting pending message synchronization", logger.UIN(c.uin))

	total := 0
	for {
		batch, err := c.server.store.GetPendingMessages(ctx, c.uin)
		if err != nil {
			return fmt.Errorf("failed to load pending messages: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		delivered := make([]uint, 0, len(batch))
		for _, msg := range batch {
			if c.contacts.isBlocked(msg.SenderUIN) {
				logger.Debug("Blocking pending message",
					"message_id", msg.ID, logger.Sender(msg.SenderUIN), logger.UIN(c.uin))
			} else {
				logger.Debug("Delivering pending message",
					"message_id", msg.ID, logger.Sender(msg.SenderUIN), logger.UIN(c.uin))
				if err := c.send(recvMessage(msg)); err != nil {
					return err
				}
			}
			delivered = append(delivered, msg.ID)
		}

		if err := c.server.store.MarkDelivered(ctx, delivered); err != nil {
			return fmt.Errorf("failed to mark batch delivered: %w", err)
		}
		total += len(batch)
	}

	telemetry.SetAttributes(ctx, telemetry.Rows(total))
	if c.server.metrics != nil {
		c.server.metrics.RecordOfflineDelivered(total)
	}
	logger.Info("Pending message synchronization complete", logger.UIN(c.uin), logger.Count(total))
	return nil
}

// cleanup withdraws the session from the shared hubs. Sessions that
// never authenticated have nothing registered.
func (c *Session) cleanup() {
	logger.Info("Cleaning up user session", logger.UIN(c.uin), logger.Address(c.peerAddr))

	c.presenceWake = nil
	if !c.authenticated {
		return
	}

	c.server.dispatcher.Unregister(c.uin)
	c.server.presence.Notify(messenger.Offline(c.uin))
	c.server.presence.Unregister(c.uin, c.watched...)

	if c.server.metrics != nil {
		c.server.metrics.SetOnlineUsers(c.server.presence.Online())
	}
}

// recvMessage shapes a stored message for the wire. Delivery always uses
// the Queued class: every message reaches its recipient through the
// store, whether it was relayed live or waited offline.
func recvMessage(msg *models.Message) gg.RecvMessage {
	return gg.RecvMessage{
		Sender:     msg.SenderUIN,
		Seq:        msg.Seq,
		Time:       msg.Time,
		Class:      gg.ClassQueued,
		Message:    msg.Message,
		Formatting: gg.DecodeRichText(msg.Formatting),
	}
}
