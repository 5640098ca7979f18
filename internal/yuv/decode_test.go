package yuv

import (
	"errors"
	"testing"
)

func flatFrame(w, h int, y, u, v byte) Frame {
	cw, ch := (w+1)/2, (h+1)/2
	fill := func(n int, b byte) []byte {
		p := make([]byte, n)
		for i := range p {
			p[i] = b
		}
		return p
	}
	return Frame{
		Width:  w,
		Height: h,
		Planes: []Plane{
			{Data: fill(w*h, y)},
			{Data: fill(cw*ch, u)},
			{Data: fill(cw*ch, v)},
		},
	}
}

func TestDecodeSizeAndAlpha(t *testing.T) {
	sizes := [][2]int{{2, 2}, {4, 6}, {16, 8}, {3, 5}}
	for _, sz := range sizes {
		f := flatFrame(sz[0], sz[1], 90, 60, 200)
		b, err := Decode(f)
		if err != nil {
			t.Fatalf("%dx%d: %v", sz[0], sz[1], err)
		}
		if b.Width != sz[0] || b.Height != sz[1] || len(b.Pix) != sz[0]*sz[1] {
			t.Fatalf("%dx%d: got %dx%d (%d px)", sz[0], sz[1], b.Width, b.Height, len(b.Pix))
		}
		for i, p := range b.Pix {
			if p>>24 != 0xFF {
				t.Fatalf("%dx%d: pixel %d alpha = %#x", sz[0], sz[1], i, p>>24)
			}
		}
	}
}

func TestDecodeKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		y, u, v byte
		want    uint32
	}{
		{"black", 16, 128, 128, 0xFF000000},
		{"below black clamps", 0, 128, 128, 0xFF000000},
		{"mid grey", 128, 128, 128, 0xFF828282},
		{"red", 81, 128, 255, 0xFFFF004B},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Decode(flatFrame(2, 2, tt.y, tt.u, tt.v))
			if err != nil {
				t.Fatal(err)
			}
			for i, p := range b.Pix {
				if p != tt.want {
					t.Errorf("pixel %d = %#x, want %#x", i, p, tt.want)
				}
			}
		})
	}
}

func TestDecodeInsufficientPlanes(t *testing.T) {
	f := flatFrame(4, 4, 100, 128, 128)
	f.Planes = f.Planes[:2]
	b, err := Decode(f)
	if b != nil {
		t.Error("expected no buffer on failure")
	}
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %T, want *FormatError", err)
	}
}

func TestDecodeShortPlane(t *testing.T) {
	f := flatFrame(4, 4, 100, 128, 128)
	f.Planes[2].Data = f.Planes[2].Data[:3]
	if _, err := Decode(f); !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
	if _, err := Decode(Frame{Planes: f.Planes}); !errors.Is(err, ErrFormat) {
		t.Fatalf("zero size: err = %v, want ErrFormat", err)
	}
}

func TestSemiPlanarInterleavesVBeforeU(t *testing.T) {
	f := Frame{
		Width:  4,
		Height: 2,
		Planes: []Plane{
			{Data: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
			{Data: []byte{10, 11}},
			{Data: []byte{20, 21}},
		},
	}
	got, err := SemiPlanar(f)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8, 20, 10, 21, 11}
	if string(got) != string(want) {
		t.Errorf("SemiPlanar = %v, want %v", got, want)
	}
}

func TestSemiPlanarHonoursStrides(t *testing.T) {
	packed := Frame{
		Width:  2,
		Height: 2,
		Planes: []Plane{
			{Data: []byte{50, 60, 70, 80}},
			{Data: []byte{100}},
			{Data: []byte{150}},
		},
	}
	strided := Frame{
		Width:  2,
		Height: 2,
		Planes: []Plane{
			{Data: []byte{50, 60, 0, 0, 70, 80}, RowStride: 4},
			{Data: []byte{100, 150}, PixelStride: 2},
			{Data: []byte{150, 100}, PixelStride: 2},
		},
	}
	a, err := SemiPlanar(packed)
	if err != nil {
		t.Fatal(err)
	}
	b, err := SemiPlanar(strided)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Errorf("strided = %v, packed = %v", b, a)
	}
}

func TestChromaSharedAcrossPairs(t *testing.T) {
	f := Frame{
		Width:  4,
		Height: 2,
		Planes: []Plane{
			{Data: []byte{128, 128, 128, 128, 128, 128, 128, 128}},
			{Data: []byte{128, 128}},
			{Data: []byte{128, 255}},
		},
	}
	b, err := Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	for j := 0; j < 2; j++ {
		if b.ARGB(0, j) != b.ARGB(1, j) || b.ARGB(2, j) != b.ARGB(3, j) {
			t.Errorf("row %d: pixel pairs do not share chroma", j)
		}
		if b.ARGB(0, j) == b.ARGB(2, j) {
			t.Errorf("row %d: second chroma sample not used", j)
		}
	}
}
