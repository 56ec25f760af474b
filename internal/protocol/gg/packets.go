package gg

// Packet is one decoded protocol message. Exactly one struct in this
// package implements it per wire variant; consumers type-switch on the
// concrete type.
type Packet interface {
	packetType() uint32
}

// Welcome opens every connection: the server announces the seed the
// client must hash its password with.
type Welcome struct {
	Seed uint32
}

// Login60 authenticates a session. The fixed header is 31 bytes; an
// optional NUL-terminated description and an optional u32 time follow.
//
//	┌────────┬──────┬──────────────┐
//	│ Offset │ Size │ Field        │
//	├────────┼──────┼──────────────┤
//	│   0    │  4   │ UIN          │
//	│   4    │  4   │ Hash         │
//	│   8    │  4   │ Status       │
//	│  12    │  4   │ Version      │
//	│  16    │  1   │ unknown 0x00 │
//	│  17    │  4   │ LocalIP      │
//	│  21    │  2   │ LocalPort    │
//	│  23    │  4   │ ExternalIP   │
//	│  27    │  2   │ ExternalPort │
//	│  29    │  1   │ ImageSize    │
//	│  30    │  1   │ unknown 0xBE │
//	└────────┴──────┴──────────────┘
type Login60 struct {
	UIN          uint32
	Hash         uint32
	Status       Status
	Description  string
	Time         uint32
	Version      uint32
	LocalIP      [4]byte
	LocalPort    uint16
	ExternalIP   [4]byte
	ExternalPort uint16
	ImageSize    uint8
}

// LoginOK confirms a successful login. Empty payload.
type LoginOK struct{}

// LoginFailed rejects a login attempt. Empty payload.
type LoginFailed struct{}

// NewStatus publishes a status change for the logged-in user. An empty
// Description means none; Time is only meaningful alongside one.
type NewStatus struct {
	Status      Status
	Description string
	Time        uint32
}

// SendMessage carries an outbound message from a client. Formatting is
// the decoded rich-text trailer, nil when the message is plain.
type SendMessage struct {
	Recipient  uint32
	Seq        uint32
	Class      MessageClass
	Message    string
	Formatting []RichTextFormat
}

// RecvMessage delivers a message to a client. Time is the server-side
// Unix timestamp of the original submission.
type RecvMessage struct {
	Sender     uint32
	Seq        uint32
	Time       uint32
	Class      MessageClass
	Message    string
	Formatting []RichTextFormat
}

// SendMsgAck reports the delivery outcome for one SendMessage.
type SendMsgAck struct {
	Status    AckStatus
	Recipient uint32
	Seq       uint32
}

// Ping is the client keepalive. Empty payload.
type Ping struct{}

// Pong answers a Ping. Empty payload.
type Pong struct{}

// Disconnect tells the client the server is closing the session. Empty
// payload; shares its type code with SendMessage.
type Disconnect struct{}

// NotifyFirst carries a non-final chunk of the client's contact list.
type NotifyFirst struct {
	Contacts []Contact
}

// NotifyLast carries the final chunk of the client's contact list.
type NotifyLast struct {
	Contacts []Contact
}

// ListEmpty declares that the client has no contacts.
type ListEmpty struct{}

// Status60 pushes a single contact's presence change to the client.
// Shares its type code with NotifyFirst.
type Status60 struct {
	Contact ContactStatus
}

// NotifyReply60 answers a contact-list upload with the current presence
// of every known contact.
type NotifyReply60 struct {
	Contacts []ContactStatus
}

func (Welcome) packetType() uint32       { return TypeWelcome }
func (Login60) packetType() uint32       { return TypeLogin60 }
func (LoginOK) packetType() uint32       { return TypeLoginOK }
func (LoginFailed) packetType() uint32   { return TypeLoginFailed }
func (NewStatus) packetType() uint32     { return TypeNewStatus }
func (SendMessage) packetType() uint32   { return TypeSendMessage }
func (RecvMessage) packetType() uint32   { return TypeRecvMessage }
func (SendMsgAck) packetType() uint32    { return TypeSendMsgAck }
func (Ping) packetType() uint32          { return TypePing }
func (Pong) packetType() uint32          { return TypePong }
func (Disconnect) packetType() uint32    { return TypeDisconnecting }
func (NotifyFirst) packetType() uint32   { return TypeNotifyFirst }
func (NotifyLast) packetType() uint32    { return TypeNotifyLast }
func (ListEmpty) packetType() uint32     { return TypeListEmpty }
func (Status60) packetType() uint32      { return TypeStatus60 }
func (NotifyReply60) packetType() uint32 { return TypeNotifyReply60 }
