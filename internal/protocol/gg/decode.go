package gg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrNeedMore signals that the buffer does not yet hold a complete
	// frame. Callers read more bytes and retry; it is never a failure.
	ErrNeedMore = errors.New("incomplete frame")
	// ErrUnsupportedPacketType indicates a frame with a type code this
	// decode mode does not know.
	ErrUnsupportedPacketType = errors.New("unsupported packet type")
	// ErrFrameTooLarge indicates a frame header declaring a payload
	// beyond MaxPayloadSize.
	ErrFrameTooLarge = errors.New("frame exceeds maximum payload size")
	// ErrMalformedPacket indicates a payload shorter than the packet's
	// fixed fields.
	ErrMalformedPacket = errors.New("malformed packet payload")
)

// login60HeaderSize is the fixed prefix of a Login60 payload.
const login60HeaderSize = 31

// Mode selects which side of the conversation the decoder is reading,
// resolving the type codes shared between directions.
type Mode int

const (
	// ModeServer decodes client-to-server traffic: 0x000B is
	// SendMessage, 0x000F is NotifyFirst.
	ModeServer Mode = iota
	// ModeClient decodes server-to-client traffic: 0x000B is
	// Disconnect, 0x000F is Status60.
	ModeClient
)

// Decoder incrementally parses frames from a byte stream.
type Decoder struct {
	mode Mode
}

// NewDecoder returns a decoder reading the given direction.
func NewDecoder(mode Mode) *Decoder {
	return &Decoder{mode: mode}
}

// Decode parses the first complete frame in buf and returns the packet
// together with the number of bytes consumed (header plus payload).
// A buffer holding less than one full frame yields ErrNeedMore and
// consumes nothing. Payloads longer than the packet's fields are
// consumed whole; the surplus is skipped.
func (d *Decoder) Decode(buf []byte) (Packet, int, error) {
	if len(buf) < HeaderSize {
		return nil, 0, ErrNeedMore
	}

	packetType := binary.LittleEndian.Uint32(buf[0:4])
	length := binary.LittleEndian.Uint32(buf[4:8])
	if length > MaxPayloadSize {
		return nil, 0, fmt.Errorf("%w: type 0x%04X declares %d bytes", ErrFrameTooLarge, packetType, length)
	}
	if uint32(len(buf)-HeaderSize) < length {
		return nil, 0, ErrNeedMore
	}

	body := buf[HeaderSize : HeaderSize+int(length)]
	consumed := HeaderSize + int(length)

	pkt, err := d.decodePayload(packetType, body)
	if err != nil {
		return nil, 0, err
	}
	return pkt, consumed, nil
}

func (d *Decoder) decodePayload(packetType uint32, body []byte) (Packet, error) {
	switch packetType {
	case TypeWelcome:
		return decodeWelcome(body)
	case TypeLogin60:
		return decodeLogin60(body)
	case TypeLoginOK:
		return LoginOK{}, nil
	case TypeLoginFailed:
		return LoginFailed{}, nil
	case TypeNewStatus:
		return decodeNewStatus(body)
	case TypeRecvMessage:
		return decodeRecvMessage(body)
	case TypeSendMsgAck:
		return decodeSendMsgAck(body)
	case TypePing:
		return Ping{}, nil
	case TypePong:
		return Pong{}, nil
	case TypeSendMessage: // TypeDisconnecting
		if d.mode == ModeServer {
			return decodeSendMessage(body)
		}
		return Disconnect{}, nil
	case TypeNotifyFirst: // TypeStatus60
		if d.mode == ModeServer {
			return NotifyFirst{Contacts: decodeContacts(body)}, nil
		}
		return decodeStatus60(body)
	case TypeNotifyLast:
		return NotifyLast{Contacts: decodeContacts(body)}, nil
	case TypeListEmpty:
		return ListEmpty{}, nil
	case TypeNotifyReply60:
		return decodeNotifyReply60(body), nil
	default:
		return nil, fmt.Errorf("%w: 0x%04X", ErrUnsupportedPacketType, packetType)
	}
}

func decodeWelcome(body []byte) (Packet, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: welcome needs 4 bytes, got %d", ErrMalformedPacket, len(body))
	}
	return Welcome{Seed: binary.LittleEndian.Uint32(body[0:4])}, nil
}

func decodeLogin60(body []byte) (Packet, error) {
	if len(body) < login60HeaderSize {
		return nil, fmt.Errorf("%w: login60 needs %d bytes, got %d", ErrMalformedPacket, login60HeaderSize, len(body))
	}
	pkt := Login60{
		UIN:          binary.LittleEndian.Uint32(body[0:4]),
		Hash:         binary.LittleEndian.Uint32(body[4:8]),
		Status:       statusFromWire(binary.LittleEndian.Uint32(body[8:12]), StatusAvail),
		Version:      binary.LittleEndian.Uint32(body[12:16]),
		LocalPort:    binary.LittleEndian.Uint16(body[21:23]),
		ExternalPort: binary.LittleEndian.Uint16(body[27:29]),
		ImageSize:    body[29],
	}
	copy(pkt.LocalIP[:], body[17:21])
	copy(pkt.ExternalIP[:], body[23:27])
	pkt.Description, pkt.Time = cutDescTime(body[login60HeaderSize:])
	return pkt, nil
}

func decodeNewStatus(body []byte) (Packet, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: new status needs 4 bytes, got %d", ErrMalformedPacket, len(body))
	}
	pkt := NewStatus{
		Status: statusFromWire(binary.LittleEndian.Uint32(body[0:4]), StatusAvail),
	}
	pkt.Description, pkt.Time = cutDescTime(body[4:])
	return pkt, nil
}

func decodeSendMessage(body []byte) (Packet, error) {
	// Truncated bodies read as zero-filled fixed fields; an empty
	// 0x000B frame is a valid SendMessage to UIN 0, not an error.
	var fixed [12]byte
	copy(fixed[:], body)
	pkt := SendMessage{
		Recipient: binary.LittleEndian.Uint32(fixed[0:4]),
		Seq:       binary.LittleEndian.Uint32(fixed[4:8]),
		Class:     classFromWire(binary.LittleEndian.Uint32(fixed[8:12])),
	}
	if len(body) > 12 {
		pkt.Message, pkt.Formatting = cutMessage(body[12:])
	}
	return pkt, nil
}

func decodeRecvMessage(body []byte) (Packet, error) {
	if len(body) < 16 {
		return nil, fmt.Errorf("%w: recv message needs 16 bytes, got %d", ErrMalformedPacket, len(body))
	}
	pkt := RecvMessage{
		Sender: binary.LittleEndian.Uint32(body[0:4]),
		Seq:    binary.LittleEndian.Uint32(body[4:8]),
		Time:   binary.LittleEndian.Uint32(body[8:12]),
		Class:  classFromWire(binary.LittleEndian.Uint32(body[12:16])),
	}
	pkt.Message, pkt.Formatting = cutMessage(body[16:])
	return pkt, nil
}

func decodeSendMsgAck(body []byte) (Packet, error) {
	if len(body) < 12 {
		return nil, fmt.Errorf("%w: message ack needs 12 bytes, got %d", ErrMalformedPacket, len(body))
	}
	return SendMsgAck{
		Status:    AckStatus(binary.LittleEndian.Uint32(body[0:4])),
		Recipient: binary.LittleEndian.Uint32(body[4:8]),
		Seq:       binary.LittleEndian.Uint32(body[8:12]),
	}, nil
}

func decodeStatus60(body []byte) (Packet, error) {
	if len(body) < contactStatusBaseSize {
		return nil, fmt.Errorf("%w: status60 needs %d bytes, got %d", ErrMalformedPacket, contactStatusBaseSize, len(body))
	}
	return Status60{Contact: decodeContactStatusBare(body)}, nil
}

func decodeNotifyReply60(body []byte) NotifyReply60 {
	var pkt NotifyReply60
	for len(body) >= contactStatusBaseSize {
		contact, n := decodeContactStatusSized(body)
		pkt.Contacts = append(pkt.Contacts, contact)
		body = body[n:]
	}
	return pkt
}

// cutDescTime parses the optional description/time tail shared by
// Login60 and NewStatus: text up to NUL, then a u32 time when at least
// four bytes remain. A missing NUL makes the whole tail the
// description.
func cutDescTime(tail []byte) (string, uint32) {
	if len(tail) == 0 {
		return "", 0
	}
	idx := bytes.IndexByte(tail, 0)
	if idx < 0 {
		return decodeCP1250(tail), 0
	}
	desc := decodeCP1250(tail[:idx])
	if after := tail[idx+1:]; len(after) >= 4 {
		return desc, binary.LittleEndian.Uint32(after[:4])
	}
	return desc, 0
}

// cutMessage parses message text up to NUL plus the optional rich-text
// trailer after it.
func cutMessage(tail []byte) (string, []RichTextFormat) {
	idx := bytes.IndexByte(tail, 0)
	if idx < 0 {
		return decodeCP1250(tail), nil
	}
	return decodeCP1250(tail[:idx]), DecodeRichText(tail[idx+1:])
}
