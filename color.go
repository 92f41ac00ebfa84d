package rast

import (
	"fmt"
	"image/color"

	"github.com/gogpu/rast/internal/blend"
)

// RGBA8 is a straight (non-premultiplied) 8-bit color. Painting
// premultiplies it with truncating arithmetic before compositing.
type RGBA8 struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = RGBA8{}
	Black       = RGBA8{0, 0, 0, 255}
	White       = RGBA8{255, 255, 255, 255}
	Red         = RGBA8{255, 0, 0, 255}
	Green       = RGBA8{0, 255, 0, 255}
	Blue        = RGBA8{0, 0, 255, 255}
)

// RGB creates an opaque color.
func RGB(r, g, b uint8) RGBA8 {
	return RGBA8{R: r, G: g, B: b, A: 255}
}

// Premultiply returns the premultiplied channels, each c*a/255 truncated.
func (c RGBA8) Premultiply() (r, g, b, a uint8) {
	return blend.Premultiply(c.R, c.G, c.B, c.A)
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA8) WithAlpha(a uint8) RGBA8 {
	c.A = a
	return c
}

// Color converts c to the standard color.Color interface.
func (c RGBA8) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts a standard color.Color to RGBA8.
func FromColor(c color.Color) RGBA8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA8{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Hex parses a hex color. Supported formats: "RGB", "RGBA", "RRGGBB",
// "RRGGBBAA", each with an optional leading '#'.
func Hex(hex string) (RGBA8, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var r, g, b uint32
	a := uint32(255)
	ok := true

	switch len(s) {
	case 3: // RGB
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(s[0:1], &r) && parseHex(s[1:2], &g) && parseHex(s[2:3], &b) && parseHex(s[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(s[0:2], &r) && parseHex(s[2:4], &g) && parseHex(s[4:6], &b) && parseHex(s[6:8], &a)
	default:
		ok = false
	}
	if !ok {
		return Black, fmt.Errorf("rast: invalid hex color %q", hex)
	}
	return RGBA8{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}, nil
}

// parseHex parses s as hexadecimal into val.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
