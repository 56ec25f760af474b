// Package captcha renders registration token images.
//
// The images match what GG 6.0 clients expect from the token picture
// endpoint: a small two color GIF with the code printed near the top
// left corner. The geometry is advertised to clients before they fetch
// the image, so Width, Height, and CodeLength are part of the wire
// contract.
package captcha

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Image geometry advertised by the token endpoint.
const (
	Width  = 60
	Height = 20
)

// CodeLength is how many glyphs a token code carries.
const CodeLength = 4

// Text origin inside the canvas.
const (
	textLeft = 5
	textTop  = 2
)

// Render draws the code onto a Width x Height canvas and encodes it as
// a two color GIF. Rendering is deterministic: the same code always
// produces the same bytes.
func Render(code string) ([]byte, error) {
	if len(code) != CodeLength {
		return nil, fmt.Errorf("captcha code must be %d characters, got %d", CodeLength, len(code))
	}

	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, Width, Height), palette)
	// The zeroed pixel buffer points at palette index 0, which is the
	// white background.

	face := basicfont.Face7x13
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(textLeft, textTop+face.Ascent),
	}
	drawer.DrawString(code)

	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("failed to encode captcha: %w", err)
	}
	return buf.Bytes(), nil
}
