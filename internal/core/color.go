package core

import (
	"fmt"
	"image/color"
)

// Color is a packed 24-bit RGB color. The zero value means "use the
// terminal default", so a cleared screen carries no styling.
type Color uint32

const colorSet = 1 << 24

// ColorDefault leaves the terminal's own foreground/background in place.
const ColorDefault Color = 0

// RGB builds a Color from its components.
func RGB(r, g, b uint8) Color {
	return Color(colorSet | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// IsSet reports whether the color overrides the terminal default.
func (c Color) IsSet() bool {
	return c&colorSet != 0
}

// RGBA returns the 8-bit components. Default reports opaque black.
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), 0xff
}

// NRGBA converts to an opaque image color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.RGBA()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts an image color, dropping alpha.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(n.R, n.G, n.B)
}

// Hex returns the color as "#rrggbb", or "" for ColorDefault.
func (c Color) Hex() string {
	if !c.IsSet() {
		return ""
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Fallback colors used when an image asset is unavailable. They follow the
// flat-color placeholders the game has always drawn.
var (
	ColorWall        = RGB(0x44, 0x44, 0x44)
	ColorCarpet      = RGB(0x66, 0xb0, 0x44)
	ColorObject      = RGB(0x80, 0x00, 0x80)
	ColorPlayer      = RGB(0x00, 0x00, 0xff)
	ColorAffordance  = RGB(0xff, 0xff, 0x00)
	ColorDialogueBox = RGB(0x8b, 0x45, 0x13)
	ColorNextButton  = RGB(0x80, 0x80, 0x80)
	ColorBlack       = RGB(0x00, 0x00, 0x00)
	ColorWhite       = RGB(0xff, 0xff, 0xff)
	ColorError       = RGB(0xff, 0x00, 0x00)
	ColorVoid        = RGB(0x00, 0x00, 0x00)
)
