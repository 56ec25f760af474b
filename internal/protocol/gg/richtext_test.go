package gg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRichTextRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		formats []RichTextFormat
	}{
		{"Bold", []RichTextFormat{{Position: 0, Bold: true}}},
		{"Mixed", []RichTextFormat{
			{Position: 0, Bold: true, Italic: true},
			{Position: 4, Underline: true},
		}},
		{"Color", []RichTextFormat{
			{Position: 2, Color: &RGB{R: 0xFF, G: 0x80, B: 0x00}},
		}},
		{"BoldColor", []RichTextFormat{
			{Position: 0, Bold: true, Color: &RGB{R: 0x12, G: 0x34, B: 0x56}},
			{Position: 9},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeRichText(tt.formats)
			require.NotEmpty(t, encoded)
			assert.Equal(t, byte(richTextFlag), encoded[0])
			assert.Equal(t, tt.formats, DecodeRichText(encoded))
		})
	}
}

func TestRichTextEncode_Empty(t *testing.T) {
	assert.Nil(t, EncodeRichText(nil))
	assert.Nil(t, EncodeRichText([]RichTextFormat{}))
}

func TestRichTextDecode_NotRichText(t *testing.T) {
	// A trailer not starting with the rich-text flag is skipped whole.
	assert.Nil(t, DecodeRichText([]byte{0x01, 0x03, 0x00, 0xAA, 0xBB, 0xCC}))
	assert.Nil(t, DecodeRichText([]byte{0x02}))
	assert.Nil(t, DecodeRichText(nil))
}

func TestRichTextDecode_SkipsImages(t *testing.T) {
	// position u16, font with image bit, 10 descriptor bytes, then a
	// plain bold entry that must survive.
	body := []byte{
		0x00, 0x00, FontImage,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10,
		0x05, 0x00, FontBold,
	}
	data := append([]byte{richTextFlag, byte(len(body)), 0x00}, body...)

	got := DecodeRichText(data)
	require.Len(t, got, 1)
	assert.Equal(t, uint16(5), got[0].Position)
	assert.True(t, got[0].Bold)
}

func TestRichTextDecode_TruncatedColor(t *testing.T) {
	// Color flag set but fewer than three bytes remain: the malformed
	// tail is dropped, earlier entries survive.
	body := []byte{
		0x00, 0x00, FontBold,
		0x03, 0x00, FontColor,
		0xFF,
	}
	data := append([]byte{richTextFlag, byte(len(body)), 0x00}, body...)

	got := DecodeRichText(data)
	require.Len(t, got, 1)
	assert.True(t, got[0].Bold)
}

func TestRichTextDecode_SizeBeyondBuffer(t *testing.T) {
	// Declared length larger than the data: clamp, parse what's there.
	data := []byte{richTextFlag, 0xFF, 0x00, 0x01, 0x00, FontItalic}
	got := DecodeRichText(data)
	require.Len(t, got, 1)
	assert.True(t, got[0].Italic)
	assert.Equal(t, uint16(1), got[0].Position)
}
