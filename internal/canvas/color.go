package canvas

import "image/color"

// Color is a packed 0xAARRGGBB value, the form page records store.
type Color uint32

const (
	Transparent           Color = 0x00000000
	DefaultPageBackground Color = 0xFFFAF8F5
	DefaultTextColor      Color = 0xFF6B4423
	DefaultStrokeColor    Color = 0xFF8B6914
	DefaultBorderColor    Color = 0xFF8B6914
)

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// NRGBA converts c for drawing.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: uint8(c >> 24)}
}
