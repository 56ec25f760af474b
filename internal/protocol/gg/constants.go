// Package gg implements the Gadu-Gadu 6.0 wire protocol: frame parsing,
// bit-exact packet encoding and decoding, CP1250 text conversion,
// rich-text trailers, and the seed-keyed login hash.
//
// # Frame Structure
//
// Every message on the wire is a little-endian header followed by a
// type-specific payload:
//
//	┌────────┬──────┬────────────┬───────────────────────────────┐
//	│ Offset │ Size │ Field      │ Description                   │
//	├────────┼──────┼────────────┼───────────────────────────────┤
//	│   0    │  4   │ PacketType │ Packet type code              │
//	│   4    │  4   │ Length     │ Payload length in bytes       │
//	│   8    │  N   │ Payload    │ Packet-specific body          │
//	└────────┴──────┴────────────┴───────────────────────────────┘
//
// # Direction-Ambiguous Type Codes
//
// Two type codes mean different packets depending on who is reading:
//
//   - 0x000B is SendMessage when read by the server and Disconnect when
//     read by a client.
//   - 0x000F is NotifyFirst when read by the server and Status60 when
//     read by a client.
//
// The Decoder's Mode resolves the ambiguity; payloads are never
// inspected to guess direction.
//
// # Text Encoding
//
// All variable-length strings are Windows-1250 (CP1250) bytes,
// NUL-terminated on the wire. Codepoints with no CP1250 representation
// are replaced on encode.
package gg

// HeaderSize is the fixed size of the frame header (8 bytes).
const HeaderSize = 8

// MaxPayloadSize bounds the declared payload length of a single frame.
// Frames claiming more are rejected before any body is read.
const MaxPayloadSize uint32 = 1 << 16

// MaxUIN is the highest user number representable on the wire. The high
// byte of a uin-bearing u32 carries flags, not identity.
const MaxUIN uint32 = 0x00FFFFFF

// Version60 is the client version code reported by Gadu-Gadu 6.0.
const Version60 uint32 = 0x20

// Packet type codes. SendMessage/Disconnect and NotifyFirst/Status60
// share a code; the decode Mode picks the variant.
const (
	TypeWelcome       uint32 = 0x0001
	TypeNewStatus     uint32 = 0x0002
	TypeLoginOK       uint32 = 0x0003
	TypeSendMsgAck    uint32 = 0x0005
	TypePong          uint32 = 0x0007
	TypePing          uint32 = 0x0008
	TypeLoginFailed   uint32 = 0x0009
	TypeRecvMessage   uint32 = 0x000A
	TypeSendMessage   uint32 = 0x000B // client to server
	TypeDisconnecting uint32 = 0x000B // server to client
	TypeNotifyFirst   uint32 = 0x000F // client to server
	TypeStatus60      uint32 = 0x000F // server to client
	TypeNotifyLast    uint32 = 0x0010
	TypeNotifyReply60 uint32 = 0x0011
	TypeListEmpty     uint32 = 0x0012
	TypeLogin60       uint32 = 0x0015
)

// FriendsMask marks a status as visible to friends only. It is stripped
// from u32 status fields before the code is interpreted.
const FriendsMask uint32 = 0x8000

// Status is a user's advertised availability.
type Status uint8

// Status codes. The *Descr variants carry a description string on the
// wire.
const (
	StatusNotAvail       Status = 0x01
	StatusAvail          Status = 0x02
	StatusBusy           Status = 0x03
	StatusAvailDescr     Status = 0x04
	StatusBusyDescr      Status = 0x05
	StatusBlocked        Status = 0x06
	StatusInvisible      Status = 0x14
	StatusNotAvailDescr  Status = 0x15
	StatusInvisibleDescr Status = 0x16
)

// HasDescription reports whether this status carries a description in
// contact-status records.
func (s Status) HasDescription() bool {
	switch s {
	case StatusAvailDescr, StatusBusyDescr, StatusNotAvailDescr, StatusInvisibleDescr:
		return true
	default:
		return false
	}
}

// String returns a human-readable name for the status code.
func (s Status) String() string {
	switch s {
	case StatusNotAvail:
		return "NOT_AVAILABLE"
	case StatusAvail:
		return "AVAILABLE"
	case StatusBusy:
		return "BUSY"
	case StatusAvailDescr:
		return "AVAILABLE_DESCR"
	case StatusBusyDescr:
		return "BUSY_DESCR"
	case StatusBlocked:
		return "BLOCKED"
	case StatusInvisible:
		return "INVISIBLE"
	case StatusNotAvailDescr:
		return "NOT_AVAILABLE_DESCR"
	case StatusInvisibleDescr:
		return "INVISIBLE_DESCR"
	default:
		return "UNKNOWN"
	}
}

// statusFromWire strips the friends-only mask and maps unknown codes to
// the given fallback.
func statusFromWire(v uint32, fallback Status) Status {
	s := Status(v &^ FriendsMask)
	switch s {
	case StatusNotAvail, StatusAvail, StatusBusy, StatusAvailDescr,
		StatusBusyDescr, StatusBlocked, StatusInvisible,
		StatusNotAvailDescr, StatusInvisibleDescr:
		return s
	default:
		return fallback
	}
}

// AckStatus is the delivery outcome reported by SendMsgAck.
type AckStatus uint32

// Delivery outcomes.
const (
	AckBlocked      AckStatus = 0x0001
	AckDelivered    AckStatus = 0x0002
	AckQueued       AckStatus = 0x0003
	AckMboxFull     AckStatus = 0x0004
	AckNotDelivered AckStatus = 0x0006
)

// String returns a human-readable name for the ack status.
func (a AckStatus) String() string {
	switch a {
	case AckBlocked:
		return "BLOCKED"
	case AckDelivered:
		return "DELIVERED"
	case AckQueued:
		return "QUEUED"
	case AckMboxFull:
		return "MBOX_FULL"
	case AckNotDelivered:
		return "NOT_DELIVERED"
	default:
		return "UNKNOWN"
	}
}

// MessageClass categorizes a message.
type MessageClass uint32

// Message classes.
const (
	ClassQueued MessageClass = 0x0001
	ClassMsg    MessageClass = 0x0004
	ClassChat   MessageClass = 0x0008
	ClassCtcp   MessageClass = 0x0010
	ClassAck    MessageClass = 0x0020
)

// classFromWire maps unknown codes to the default class.
func classFromWire(v uint32) MessageClass {
	switch c := MessageClass(v); c {
	case ClassQueued, ClassMsg, ClassChat, ClassCtcp, ClassAck:
		return c
	default:
		return ClassMsg
	}
}

// ContactType is the bucket a contact-list entry belongs to.
type ContactType uint8

// Contact-list entry types.
const (
	ContactBuddy   ContactType = 0x01
	ContactFriend  ContactType = 0x02
	ContactBlocked ContactType = 0x04
)

// Rich-text font flags.
const (
	FontBold      uint8 = 0x01
	FontItalic    uint8 = 0x02
	FontUnderline uint8 = 0x04
	FontColor     uint8 = 0x08
	FontImage     uint8 = 0x80
)
