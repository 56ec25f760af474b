package gg

import (
	"github.com/marmos91/retrogg/internal/protocol/gg"
)

// contactBook is the client-uploaded contact list, split by entry type.
// The blocked bucket gates message delivery; buddies and friends are
// kept for parity with what the client sent.
//
// The book is owned by its session goroutine and needs no locking.
type contactBook struct {
	buddies []uint32
	friends []uint32
	blocked []uint32
}

// isBlocked reports whether the session's user blocks the given UIN.
func (b *contactBook) isBlocked(uin uint32) bool {
	for _, blocked := range b.blocked {
		if blocked == uin {
			return true
		}
	}
	return false
}

// set replaces the book with a freshly uploaded contact list.
func (b *contactBook) set(contacts []gg.Contact) {
	b.clear()

	for _, contact := range contacts {
		switch contact.Type {
		case gg.ContactBlocked:
			b.blocked = append(b.blocked, contact.UIN)
		case gg.ContactFriend:
			b.friends = append(b.friends, contact.UIN)
		default:
			b.buddies = append(b.buddies, contact.UIN)
		}
	}
}

// clear empties all three buckets.
func (b *contactBook) clear() {
	b.buddies = b.buddies[:0]
	b.friends = b.friends[:0]
	b.blocked = b.blocked[:0]
}
