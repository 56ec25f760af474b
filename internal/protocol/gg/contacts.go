package gg

import (
	"bytes"
	"encoding/binary"
)

// contactEntrySize is the wire size of one contact-list entry.
const contactEntrySize = 5

// contactStatusBaseSize is the fixed prefix of a contact-status record.
const contactStatusBaseSize = 14

// maxSizedDescLen keeps desc+NUL+time within the one-byte size prefix
// of NotifyReply60 records.
const maxSizedDescLen = 250

// Contact is one entry of a client-uploaded contact list.
type Contact struct {
	UIN  uint32
	Type ContactType
}

// ContactStatus is one contact's presence as pushed to clients in
// Status60 and NotifyReply60.
//
//	┌────────┬──────┬──────────────┬─────────────────────────────┐
//	│ Offset │ Size │ Field        │ Description                 │
//	├────────┼──────┼──────────────┼─────────────────────────────┤
//	│   0    │  4   │ UIN + Flags  │ low 24 bits UIN, high byte  │
//	│        │      │              │ flags                       │
//	│   4    │  1   │ Status       │                             │
//	│   5    │  4   │ RemoteIP     │                             │
//	│   9    │  2   │ RemotePort   │                             │
//	│  11    │  1   │ Version      │                             │
//	│  12    │  1   │ ImageSize    │                             │
//	│  13    │  1   │ unknown 0x00 │                             │
//	└────────┴──────┴──────────────┴─────────────────────────────┘
//
// Statuses that carry a description append it after the base record;
// NotifyReply60 prefixes the tail with a one-byte size, Status60 does
// not.
type ContactStatus struct {
	UIN         uint32
	Flags       uint8
	Status      Status
	Description string
	Time        uint32
	RemoteIP    [4]byte
	RemotePort  uint16
	Version     uint8
	ImageSize   uint8
}

// decodeContacts parses NotifyFirst/NotifyLast payloads. Trailing bytes
// shorter than one entry are skipped; unknown types become Buddy.
func decodeContacts(body []byte) []Contact {
	count := len(body) / contactEntrySize
	if count == 0 {
		return nil
	}
	contacts := make([]Contact, 0, count)
	for i := 0; i < count; i++ {
		off := i * contactEntrySize
		contactType := ContactType(body[off+4])
		switch contactType {
		case ContactBuddy, ContactFriend, ContactBlocked:
		default:
			contactType = ContactBuddy
		}
		contacts = append(contacts, Contact{
			UIN:  binary.LittleEndian.Uint32(body[off : off+4]),
			Type: contactType,
		})
	}
	return contacts
}

// encodeContacts serializes a contact list chunk.
func encodeContacts(contacts []Contact) []byte {
	buf := make([]byte, len(contacts)*contactEntrySize)
	for i, c := range contacts {
		off := i * contactEntrySize
		binary.LittleEndian.PutUint32(buf[off:off+4], c.UIN)
		buf[off+4] = byte(c.Type)
	}
	return buf
}

// encodeContactStatusBase fills the 14-byte fixed prefix.
func encodeContactStatusBase(s ContactStatus) []byte {
	rec := make([]byte, contactStatusBaseSize)
	binary.LittleEndian.PutUint32(rec[0:4], s.UIN&MaxUIN|uint32(s.Flags)<<24)
	rec[4] = byte(s.Status)
	copy(rec[5:9], s.RemoteIP[:])
	binary.LittleEndian.PutUint16(rec[9:11], s.RemotePort)
	rec[11] = s.Version
	rec[12] = s.ImageSize
	return rec
}

// encodeContactStatusSized serializes one NotifyReply60 record. Records
// with a description-bearing status always carry the size-prefixed
// tail, even for an empty description, so that following records stay
// parseable.
func encodeContactStatusSized(s ContactStatus) []byte {
	rec := encodeContactStatusBase(s)
	if !s.Status.HasDescription() {
		return rec
	}

	desc := encodeCP1250(s.Description)
	if len(desc) > maxSizedDescLen {
		desc = desc[:maxSizedDescLen]
	}
	descSize := len(desc) + 1
	if s.Time != 0 {
		descSize += 4
	}

	rec = append(rec, byte(descSize))
	rec = append(rec, desc...)
	rec = append(rec, 0)
	if s.Time != 0 {
		var t [4]byte
		binary.LittleEndian.PutUint32(t[:], s.Time)
		rec = append(rec, t[:]...)
	}
	return rec
}

// encodeContactStatusBare serializes the single Status60 record: no
// size prefix, description and time only for description-bearing
// statuses.
func encodeContactStatusBare(s ContactStatus) []byte {
	rec := encodeContactStatusBase(s)
	if !s.Status.HasDescription() {
		return rec
	}

	rec = append(rec, encodeCP1250(s.Description)...)
	rec = append(rec, 0)
	if s.Time != 0 {
		var t [4]byte
		binary.LittleEndian.PutUint32(t[:], s.Time)
		rec = append(rec, t[:]...)
	}
	return rec
}

// decodeContactStatusBase parses the 14-byte fixed prefix.
func decodeContactStatusBase(b []byte) ContactStatus {
	uinAndFlags := binary.LittleEndian.Uint32(b[0:4])
	s := ContactStatus{
		UIN:        uinAndFlags & MaxUIN,
		Flags:      uint8(uinAndFlags >> 24),
		Status:     statusFromWire(uint32(b[4]), StatusNotAvail),
		RemotePort: binary.LittleEndian.Uint16(b[9:11]),
		Version:    b[11],
		ImageSize:  b[12],
	}
	copy(s.RemoteIP[:], b[5:9])
	return s
}

// decodeContactStatusSized parses one NotifyReply60 record and reports
// how many bytes it consumed. Truncated tails are clamped to what is
// present.
func decodeContactStatusSized(b []byte) (ContactStatus, int) {
	s := decodeContactStatusBase(b)
	consumed := contactStatusBaseSize
	if !s.Status.HasDescription() || len(b) < contactStatusBaseSize+1 {
		return s, consumed
	}

	descSize := int(b[contactStatusBaseSize])
	consumed++
	block := b[consumed:]
	if descSize < len(block) {
		block = block[:descSize]
	}
	consumed += len(block)

	if descSize == 0 {
		return s, consumed
	}
	hasTime := descSize >= 5
	descLen := descSize - 1
	if hasTime {
		descLen = descSize - 5
	}
	if descLen > len(block) {
		descLen = len(block)
	}
	s.Description = decodeCP1250(block[:descLen])
	if hasTime && len(block) >= descLen+5 {
		s.Time = binary.LittleEndian.Uint32(block[descLen+1 : descLen+5])
	}
	return s, consumed
}

// decodeContactStatusBare parses the single Status60 record, consuming
// the whole payload.
func decodeContactStatusBare(body []byte) ContactStatus {
	s := decodeContactStatusBase(body)
	rest := body[contactStatusBaseSize:]
	if !s.Status.HasDescription() || len(rest) == 0 {
		return s
	}

	idx := bytes.IndexByte(rest, 0)
	if idx < 0 {
		s.Description = decodeCP1250(rest)
		return s
	}
	s.Description = decodeCP1250(rest[:idx])
	if after := rest[idx+1:]; len(after) >= 4 {
		s.Time = binary.LittleEndian.Uint32(after[:4])
	}
	return s
}
