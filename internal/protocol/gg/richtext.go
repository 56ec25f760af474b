package gg

import "encoding/binary"

// richTextFlag opens every rich-text trailer.
const richTextFlag = 0x02

// RGB is a rich-text color.
type RGB struct {
	R, G, B uint8
}

// RichTextFormat styles the run of message text starting at Position
// (a character offset into the CP1250 message).
type RichTextFormat struct {
	Position  uint16
	Bold      bool
	Italic    bool
	Underline bool
	Color     *RGB
}

func (f RichTextFormat) fontByte() uint8 {
	var font uint8
	if f.Bold {
		font |= FontBold
	}
	if f.Italic {
		font |= FontItalic
	}
	if f.Underline {
		font |= FontUnderline
	}
	if f.Color != nil {
		font |= FontColor
	}
	return font
}

// EncodeRichText serializes formats into the wire trailer appended
// after a message's NUL terminator. Returns nil for no formats.
func EncodeRichText(formats []RichTextFormat) []byte {
	if len(formats) == 0 {
		return nil
	}

	size := 0
	for _, f := range formats {
		size += 3
		if f.Color != nil {
			size += 3
		}
	}

	buf := make([]byte, 3+size)
	buf[0] = richTextFlag
	binary.LittleEndian.PutUint16(buf[1:3], uint16(size))

	off := 3
	for _, f := range formats {
		binary.LittleEndian.PutUint16(buf[off:off+2], f.Position)
		buf[off+2] = f.fontByte()
		off += 3
		if f.Color != nil {
			buf[off] = f.Color.R
			buf[off+1] = f.Color.G
			buf[off+2] = f.Color.B
			off += 3
		}
	}
	return buf
}

// DecodeRichText parses the trailer that may follow a message's NUL
// terminator. Image entries are skipped. Anything malformed is consumed
// and yields nil; callers treat nil as "no formatting".
func DecodeRichText(data []byte) []RichTextFormat {
	if len(data) < 3 || data[0] != richTextFlag {
		return nil
	}

	size := int(binary.LittleEndian.Uint16(data[1:3]))
	if size > len(data)-3 {
		size = len(data) - 3
	}
	body := data[3 : 3+size]

	var formats []RichTextFormat
	off := 0
	for off+3 <= len(body) {
		position := binary.LittleEndian.Uint16(body[off : off+2])
		font := body[off+2]
		off += 3

		// Image entries carry a 10-byte attachment descriptor and no
		// text styling.
		if font&FontImage != 0 {
			off += 10
			continue
		}

		f := RichTextFormat{
			Position:  position,
			Bold:      font&FontBold != 0,
			Italic:    font&FontItalic != 0,
			Underline: font&FontUnderline != 0,
		}
		if font&FontColor != 0 {
			if off+3 > len(body) {
				break
			}
			f.Color = &RGB{R: body[off], G: body[off+1], B: body[off+2]}
			off += 3
		}
		formats = append(formats, f)
	}
	return formats
}
