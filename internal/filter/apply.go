package filter

import (
	"snapbook/internal/applog"
	"snapbook/internal/pixel"
)

// Apply returns a new buffer with k applied to every pixel of b. Each output
// channel depends only on the same pixel's red, green and blue; alpha is
// carried over. A nil or empty b yields nil. None returns an equal copy.
func Apply(b *pixel.Buffer, k Kind) *pixel.Buffer {
	if b.Empty() {
		return nil
	}
	fn := transform(k)
	if fn == nil {
		return b.Clone()
	}

	n := b.Width * b.Height
	out := &pixel.Buffer{Width: b.Width, Height: b.Height, Pix: make([]uint32, n)}
	for i, p := range b.Pix[:n] {
		a, r, g, bl := pixel.Unpack(p)
		nr, ng, nb := fn(int(r), int(g), int(bl))
		out.Pix[i] = pixel.Pack(a, nr, ng, nb)
	}
	applog.Logger().Debug("filter: applied", "kind", k.String(), "width", b.Width, "height", b.Height)
	return out
}

type channelFunc func(r, g, b int) (uint8, uint8, uint8)

func transform(k Kind) channelFunc {
	switch k {
	case Sepia:
		return sepia
	case Polaroid:
		return polaroid
	case Kodachrome:
		return kodachrome
	case Vintage:
		return vintage
	case BlackAndWhite:
		return blackAndWhite
	case Cyanotype:
		return cyanotype
	default:
		return nil
	}
}

// Products are converted explicitly so the compiler cannot fuse them into
// multiply-add instructions; results must match on every architecture.

func sepia(r, g, b int) (uint8, uint8, uint8) {
	fr, fg, fb := float64(r), float64(g), float64(b)
	return clamp(float64(fr*0.393) + float64(fg*0.769) + float64(fb*0.189)),
		clamp(float64(fr*0.349) + float64(fg*0.686) + float64(fb*0.168)),
		clamp(float64(fr*0.272) + float64(fg*0.534) + float64(fb*0.131))
}

func polaroid(r, g, b int) (uint8, uint8, uint8) {
	return clamp(float64(float64(r)*0.9) + 20),
		clamp(float64(float64(g)*0.85) + 25),
		clamp(float64(float64(b)*0.95) + 15)
}

func kodachrome(r, g, b int) (uint8, uint8, uint8) {
	return clamp(float64(r) * 1.2), clamp(float64(g) * 1.1), clamp(float64(b) * 0.9)
}

func vintage(r, g, b int) (uint8, uint8, uint8) {
	return clamp(float64(float64(r)*1.15) + 15),
		clamp(float64(float64(g)*0.95) + 10),
		clamp(float64(b) * 0.75)
}

func blackAndWhite(r, g, b int) (uint8, uint8, uint8) {
	gray := clamp(float64(0.299*float64(r)) + float64(0.587*float64(g)) + float64(0.114*float64(b)))
	return gray, gray, gray
}

func cyanotype(r, g, b int) (uint8, uint8, uint8) {
	avg := float64((r + g + b) / 3)
	return clamp(avg * 0.3), clamp(avg * 0.6), clamp(avg * 1.1)
}

// clamp truncates toward zero and limits the result to [0, 255].
func clamp(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 {
		return 0
	}
	return uint8(v)
}
