package gg

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// replacementByte substitutes codepoints that have no CP1250 encoding.
const replacementByte = '?'

// encodeCP1250 converts UTF-8 text to Windows-1250 bytes.
func encodeCP1250(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1250.EncodeRune(r)
		if !ok {
			b = replacementByte
		}
		out = append(out, b)
	}
	return out
}

// decodeCP1250 converts Windows-1250 bytes to a UTF-8 string.
func decodeCP1250(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(charmap.Windows1250.DecodeByte(c))
	}
	return sb.String()
}
