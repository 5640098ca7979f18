// Package pixel defines the packed ARGB buffer every stage of the pipeline
// passes around, plus the conversions to and from image.Image.
package pixel

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Buffer is a width x height grid of packed 0xAARRGGBB samples, row-major.
// Colour values are not premultiplied. Every operation in this module
// returns a new Buffer; use Clone to hand a private copy to another owner.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint32
}

// New returns an opaque black buffer.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{Width: width, Height: height, Pix: make([]uint32, width*height)}
	for i := range b.Pix {
		b.Pix[i] = 0xFF000000
	}
	return b
}

// Empty reports whether b is nil or has no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0 || len(b.Pix) < b.Width*b.Height
}

// Clone returns a deep copy of b. Clone of nil is nil.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	c := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]uint32, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Equal reports whether a and b have the same size and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Width != o.Width || b.Height != o.Height || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// ARGB returns the packed sample at (x, y), or 0 outside the buffer.
func (b *Buffer) ARGB(x, y int) uint32 {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

// SetARGB stores v at (x, y). Points outside the buffer are ignored.
func (b *Buffer) SetARGB(x, y int, v uint32) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = v
}

// Pack builds a 0xAARRGGBB sample.
func Pack(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a 0xAARRGGBB sample.
func Unpack(v uint32) (a, r, g, b uint8) {
	return uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Height) }

// At implements image.Image.
func (b *Buffer) At(x, y int) color.Color {
	a, r, g, bl := Unpack(b.ARGB(x, y))
	return color.NRGBA{R: r, G: g, B: bl, A: a}
}

// NRGBA copies b into a standard library image.
func (b *Buffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	for i, v := range b.Pix[:b.Width*b.Height] {
		a, r, g, bl := Unpack(v)
		o := i * 4
		img.Pix[o] = r
		img.Pix[o+1] = g
		img.Pix[o+2] = bl
		img.Pix[o+3] = a
	}
	return img
}

// FromImage converts any image into a Buffer whose origin is the image's
// top-left corner.
func FromImage(src image.Image) *Buffer {
	r := src.Bounds()
	nrgba, ok := src.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != 4*r.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), src, r.Min, draw.Src)
	}
	b := &Buffer{Width: r.Dx(), Height: r.Dy(), Pix: make([]uint32, r.Dx()*r.Dy())}
	for i := range b.Pix {
		o := i * 4
		b.Pix[i] = Pack(nrgba.Pix[o+3], nrgba.Pix[o], nrgba.Pix[o+1], nrgba.Pix[o+2])
	}
	return b
}

// FlipHorizontal mirrors b about its vertical axis. Front-facing captures
// are mirrored by the sensor and need this before display.
func FlipHorizontal(b *Buffer) *Buffer {
	if b.Empty() {
		return nil
	}
	out := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]uint32, b.Width*b.Height)}
	for y := 0; y < b.Height; y++ {
		row := y * b.Width
		for x := 0; x < b.Width; x++ {
			out.Pix[row+x] = b.Pix[row+b.Width-1-x]
		}
	}
	return out
}

// Scale resamples b to width x height with Catmull-Rom filtering.
func Scale(b *Buffer, width, height int) *Buffer {
	if b.Empty() || width <= 0 || height <= 0 {
		return nil
	}
	if b.Width == width && b.Height == height {
		return b.Clone()
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), b.NRGBA(), b.Bounds(), draw.Src, nil)
	return FromImage(dst)
}
