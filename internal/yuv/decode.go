// Package yuv converts planar 4:2:0 sensor frames into pixel buffers.
//
// The three input planes are first repacked into a VU-interleaved
// semi-planar sequence (the NV21 layout camera pipelines hand out) and then
// converted with fixed-point BT.601 arithmetic.
package yuv

import (
	"errors"
	"fmt"

	"snapbook/internal/applog"
	"snapbook/internal/pixel"
)

// ErrFormat matches every FormatError.
var ErrFormat = errors.New("yuv: malformed frame")

// FormatError describes a frame that cannot be decoded.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string { return "yuv: " + e.Reason }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Plane is one byte plane of a frame. A zero RowStride means rows are packed
// back to back; a zero PixelStride means samples are adjacent.
type Plane struct {
	Data        []byte
	RowStride   int
	PixelStride int
}

// Frame is a planar Y, U, V image with chroma subsampled 2:1 in both
// directions.
type Frame struct {
	Width  int
	Height int
	Planes []Plane
}

func (f Frame) chromaSize() (int, int) {
	return (f.Width + 1) / 2, (f.Height + 1) / 2
}

// sampler reads plane samples honouring the plane's strides.
type sampler struct {
	data        []byte
	rowStride   int
	pixelStride int
}

func newSampler(p Plane, width, height int, name string) (sampler, error) {
	s := sampler{data: p.Data, rowStride: p.RowStride, pixelStride: p.PixelStride}
	if s.pixelStride <= 0 {
		s.pixelStride = 1
	}
	if s.rowStride <= 0 {
		s.rowStride = width * s.pixelStride
	}
	need := (height-1)*s.rowStride + (width-1)*s.pixelStride + 1
	if len(s.data) < need {
		return s, &FormatError{Reason: fmt.Sprintf("%s plane has %d bytes, need %d", name, len(s.data), need)}
	}
	return s, nil
}

func (s sampler) at(x, y int) byte {
	return s.data[y*s.rowStride+x*s.pixelStride]
}

// SemiPlanar repacks f into a VU-interleaved sequence of
// Width*Height + 2*ceil(Width/2)*ceil(Height/2) bytes.
func SemiPlanar(f Frame) ([]byte, error) {
	if len(f.Planes) < 3 {
		return nil, &FormatError{Reason: fmt.Sprintf("insufficient planes: got %d, want 3", len(f.Planes))}
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("invalid size %dx%d", f.Width, f.Height)}
	}
	cw, ch := f.chromaSize()

	ys, err := newSampler(f.Planes[0], f.Width, f.Height, "Y")
	if err != nil {
		return nil, err
	}
	us, err := newSampler(f.Planes[1], cw, ch, "U")
	if err != nil {
		return nil, err
	}
	vs, err := newSampler(f.Planes[2], cw, ch, "V")
	if err != nil {
		return nil, err
	}

	frameSize := f.Width * f.Height
	out := make([]byte, frameSize+2*cw*ch)
	for j := 0; j < f.Height; j++ {
		row := out[j*f.Width : (j+1)*f.Width]
		if ys.pixelStride == 1 {
			copy(row, ys.data[j*ys.rowStride:])
			continue
		}
		for i := range row {
			row[i] = ys.at(i, j)
		}
	}
	uv := frameSize
	for j := 0; j < ch; j++ {
		for i := 0; i < cw; i++ {
			out[uv] = vs.at(i, j)
			out[uv+1] = us.at(i, j)
			uv += 2
		}
	}
	return out, nil
}

// Decode converts f into an opaque buffer of the same size. It fails with a
// FormatError, and returns no buffer, when f is incomplete.
func Decode(f Frame) (*pixel.Buffer, error) {
	nv21, err := SemiPlanar(f)
	if err != nil {
		applog.Logger().Warn("yuv: rejected frame", "width", f.Width, "height", f.Height, "error", err)
		return nil, err
	}
	return DecodeNV21(nv21, f.Width, f.Height)
}

// DecodeNV21 converts a VU-interleaved semi-planar sequence as produced by
// SemiPlanar. Each chroma row holds 2*ceil(width/2) bytes.
func DecodeNV21(data []byte, width, height int) (*pixel.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &FormatError{Reason: fmt.Sprintf("invalid size %dx%d", width, height)}
	}
	frameSize := width * height
	chromaStride := 2 * ((width + 1) / 2)
	if need := frameSize + chromaStride*((height+1)/2); len(data) < need {
		return nil, &FormatError{Reason: fmt.Sprintf("semi-planar data has %d bytes, need %d", len(data), need)}
	}

	pix := make([]uint32, frameSize)
	for j, yp := 0, 0; j < height; j++ {
		uvp := frameSize + (j>>1)*chromaStride
		u, v := 0, 0
		for i := 0; i < width; i++ {
			y := int(data[yp]) - 16
			if y < 0 {
				y = 0
			}
			if i&1 == 0 {
				v = int(data[uvp]) - 128
				u = int(data[uvp+1]) - 128
				uvp += 2
			}

			y1192 := 1192 * y
			r := clamp18(y1192 + 1634*v)
			g := clamp18(y1192 - 833*v - 400*u)
			b := clamp18(y1192 + 2066*u)

			pix[yp] = 0xFF000000 | uint32(r>>10)<<16 | uint32(g>>10)<<8 | uint32(b>>10)
			yp++
		}
	}
	applog.Logger().Debug("yuv: decoded frame", "width", width, "height", height)
	return &pixel.Buffer{Width: width, Height: height, Pix: pix}, nil
}

// clamp18 limits a fixed-point channel to the 18-bit range [0, 262143].
func clamp18(v int) int {
	if v < 0 {
		return 0
	}
	if v > 262143 {
		return 262143
	}
	return v
}
