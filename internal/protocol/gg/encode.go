package gg

import "encoding/binary"

// Encode serializes one packet into a complete frame: 8-byte header
// plus payload.
func Encode(p Packet) []byte {
	payload := encodePayload(p)
	frame := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint32(frame[0:4], p.packetType())
	binary.LittleEndian.PutUint32(frame[4:8], uint32(len(payload)))
	copy(frame[HeaderSize:], payload)
	return frame
}

func encodePayload(p Packet) []byte {
	switch pkt := p.(type) {
	case Welcome:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, pkt.Seed)
		return buf

	case Login60:
		return encodeLogin60(pkt)

	case LoginOK, LoginFailed, Ping, Pong, Disconnect, ListEmpty:
		return nil

	case NewStatus:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(pkt.Status))
		return appendDescTime(buf, pkt.Description, pkt.Time)

	case SendMessage:
		buf := make([]byte, 12)
		binary.LittleEndian.PutUint32(buf[0:4], pkt.Recipient)
		binary.LittleEndian.PutUint32(buf[4:8], pkt.Seq)
		binary.LittleEndian.PutUint32(buf[8:12], uint32(pkt.Class))
		buf = append(buf, encodeCP1250(pkt.Message)...)
		buf = append(buf, 0)
		return append(buf, EncodeRichText(pkt.Formatting)...)

	case RecvMessage:
		buf := make([]byte, 16)
		binary.LittleEndian.PutUint32(buf[0:4], pkt.Sender)
		binary.LittleEndian.PutUint32(buf[4:8], pkt.Seq)
		binary.LittleEndian.PutUint32(buf[8:12], pkt.Time)
		binary.LittleEndian.PutUint32(buf[12:16], uint32(pkt.Class))
		buf = append(buf, encodeCP1250(pkt.Message)...)
		buf = append(buf, 0)
		return append(buf, EncodeRichText(pkt.Formatting)...)

	case SendMsgAck:
		buf := make([]byte, 12)
		binary.LittleEndian.PutUint32(buf[0:4], uint32(pkt.Status))
		binary.LittleEndian.PutUint32(buf[4:8], pkt.Recipient)
		binary.LittleEndian.PutUint32(buf[8:12], pkt.Seq)
		return buf

	case NotifyFirst:
		return encodeContacts(pkt.Contacts)

	case NotifyLast:
		return encodeContacts(pkt.Contacts)

	case Status60:
		return encodeContactStatusBare(pkt.Contact)

	case NotifyReply60:
		var buf []byte
		for _, c := range pkt.Contacts {
			buf = append(buf, encodeContactStatusSized(c)...)
		}
		return buf

	default:
		return nil
	}
}

func encodeLogin60(pkt Login60) []byte {
	buf := make([]byte, login60HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], pkt.UIN)
	binary.LittleEndian.PutUint32(buf[4:8], pkt.Hash)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(pkt.Status))
	binary.LittleEndian.PutUint32(buf[12:16], pkt.Version)
	buf[16] = 0x00
	copy(buf[17:21], pkt.LocalIP[:])
	binary.LittleEndian.PutUint16(buf[21:23], pkt.LocalPort)
	copy(buf[23:27], pkt.ExternalIP[:])
	binary.LittleEndian.PutUint16(buf[27:29], pkt.ExternalPort)
	buf[29] = pkt.ImageSize
	buf[30] = 0xBE
	return appendDescTime(buf, pkt.Description, pkt.Time)
}

// appendDescTime writes the optional NUL-terminated description and
// trailing time shared by Login60 and NewStatus. No description means
// no bytes at all; the time is only meaningful after a description.
func appendDescTime(buf []byte, desc string, time uint32) []byte {
	if desc == "" {
		return buf
	}
	buf = append(buf, encodeCP1250(desc)...)
	buf = append(buf, 0)
	if time != 0 {
		var t [4]byte
		binary.LittleEndian.PutUint32(t[:], time)
		buf = append(buf, t[:]...)
	}
	return buf
}
