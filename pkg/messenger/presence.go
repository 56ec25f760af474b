// Package messenger coordinates the live sessions of the server: who is
// online, who watches whom, and how messages reach a recipient's session.
//
// The two hubs in this package are purely in-memory. A restart forgets all
// presence (everyone appears offline) but never loses messages, which are
// persisted by the dispatcher before any delivery attempt.
package messenger

import (
	"sync"

	"github.com/marmos91/retrogg/internal/protocol/gg"
)

// presenceBuffer is the wake-channel capacity per session. Wakes carry only
// a UIN and drop on overflow; the session re-reads current state via Find,
// so a dropped wake at worst coalesces with the one already queued.
const presenceBuffer = 10

// Presence is one user's current state as seen by the hub.
type Presence struct {
	UIN    uint32
	Status gg.Status

	// Description is the optional status text, empty when unset.
	Description string

	// Time is the optional return time, zero when unset.
	Time uint32
}

// Offline returns the presence reported for users without any state.
func Offline(uin uint32) Presence {
	return Presence{UIN: uin, Status: gg.StatusNotAvail}
}

// Available returns the default presence of a freshly logged-in user.
func Available(uin uint32) Presence {
	return Presence{UIN: uin, Status: gg.StatusAvail}
}

// ContactStatus projects the presence into the wire record pushed to
// watchers. Direct-connection fields stay zeroed; the server never
// brokers peer-to-peer links.
func (p Presence) ContactStatus() gg.ContactStatus {
	return gg.ContactStatus{
		UIN:         p.UIN,
		Status:      p.Status,
		Description: p.Description,
		Time:        p.Time,
		Version:     uint8(gg.Version60),
	}
}

// PresenceHub tracks the status of every user and fans status changes out
// to the sessions watching them.
//
// Example usage:
//
//	hub := NewPresenceHub()
//	wake := hub.Register(1_000_000)
//	hub.Subscribe(1_000_000, 2_000_000)
//
//	hub.Notify(Available(2_000_000))
//	uin := <-wake                  // 2_000_000
//	current := hub.Find(uin)       // re-read the state the wake points at
//
// Notify never blocks: wakes are dropped when a session's channel is full,
// and sessions always re-read via Find, so the latest state wins.
type PresenceHub struct {
	mu        sync.Mutex
	state     map[uint32]Presence
	observers map[uint32]map[uint32]struct{}
	sessions  map[uint32]chan uint32
}

// NewPresenceHub creates an empty hub.
func NewPresenceHub() *PresenceHub {
	return &PresenceHub{
		state:     make(map[uint32]Presence),
		observers: make(map[uint32]map[uint32]struct{}),
		sessions:  make(map[uint32]chan uint32),
	}
}

// Online returns the number of registered sessions.
func (h *PresenceHub) Online() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Find returns the current presence of a user. Users the hub has never
// seen are reported offline.
func (h *PresenceHub) Find(uin uint32) Presence {
	h.mu.Lock()
	defer h.mu.Unlock()

	if p, ok := h.state[uin]; ok {
		return p
	}
	return Offline(uin)
}

// Register creates the wake channel for a session and seeds its state as
// offline. Registering a UIN that already has a session closes the old
// channel, so a superseded session observes the close and ends.
func (h *PresenceHub) Register(uin uint32) <-chan uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.state[uin] = Offline(uin)
	if old, ok := h.sessions[uin]; ok {
		close(old)
	}
	ch := make(chan uint32, presenceBuffer)
	h.sessions[uin] = ch
	return ch
}

// Subscribe makes watcher observe status changes of every watched UIN.
func (h *PresenceHub) Subscribe(watcher uint32, watched ...uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, uin := range watched {
		set, ok := h.observers[uin]
		if !ok {
			set = make(map[uint32]struct{})
			h.observers[uin] = set
		}
		set[watcher] = struct{}{}
	}
}

// Unsubscribe stops watcher from observing the watched UINs.
func (h *PresenceHub) Unsubscribe(watcher uint32, watched ...uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, uin := range watched {
		if set, ok := h.observers[uin]; ok {
			delete(set, watcher)
		}
	}
}

// Notify records a user's new presence and wakes every watcher. Sends are
// non-blocking; a watcher whose channel is full re-reads the state later
// anyway.
func (h *PresenceHub) Notify(p Presence) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.state[p.UIN] = p

	for watcher := range h.observers[p.UIN] {
		ch, ok := h.sessions[watcher]
		if !ok {
			continue
		}
		select {
		case ch <- p.UIN:
		default:
		}
	}
}

// Refresh re-announces a user's current presence to their watchers.
func (h *PresenceHub) Refresh(uin uint32) {
	h.Notify(h.Find(uin))
}

// Unregister drops a session's wake channel and removes it as a watcher of
// the given UINs. The channel is only unrouted, never closed: a kicked
// session may unregister after its successor already replaced the entry,
// and the successor still owns the current channel. The last known state is
// kept; sessions publish an offline presence before unregistering.
func (h *PresenceHub) Unregister(uin uint32, watched ...uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions, uin)

	for _, w := range watched {
		if set, ok := h.observers[w]; ok {
			delete(set, uin)
		}
	}
}
