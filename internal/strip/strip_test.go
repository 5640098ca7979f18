package strip

import (
	"errors"
	"image"
	"testing"
	"time"

	"snapbook/internal/pixel"
)

const red = 0xFFFF0000

func solid(w, h int, v uint32) *pixel.Buffer {
	b := pixel.New(w, h)
	for i := range b.Pix {
		b.Pix[i] = v
	}
	return b
}

func fixedClock() time.Time { return time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC) }

func TestComposeEmpty(t *testing.T) {
	for _, shots := range [][]*pixel.Buffer{nil, {}} {
		if _, err := Compose(shots); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Compose(%v) error = %v, want ErrEmptyInput", shots, err)
		}
	}
}

func TestHeight(t *testing.T) {
	tests := []struct{ n, want int }{
		{1, 550},
		{2, 845},
		{4, 1435},
	}
	for _, tt := range tests {
		if got := Height(tt.n); got != tt.want {
			t.Errorf("Height(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestComposeSingle(t *testing.T) {
	out, err := Compose([]*pixel.Buffer{solid(CellWidth, CellHeight, red)}, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	if out.Width != 400 || out.Height != 550 {
		t.Fatalf("size = %dx%d, want 400x550", out.Width, out.Height)
	}
	if got := out.ARGB(200, 270); got != red {
		t.Errorf("cell centre = %#x", got)
	}
	if got := out.ARGB(40, 40); got != 0xFFFAF8F5 {
		t.Errorf("background = %#x", got)
	}
	if got := out.ARGB(10, 200); got != 0xFF8B6914 {
		t.Errorf("outer border = %#x", got)
	}
}

func TestLayout(t *testing.T) {
	g := Layout(3)
	want := []image.Rectangle{
		image.Rect(25, 130, 375, 410),
		image.Rect(25, 425, 375, 705),
		image.Rect(25, 720, 375, 1000),
	}
	if len(g.Cells) != len(want) {
		t.Fatalf("%d cells", len(g.Cells))
	}
	for i := range want {
		if g.Cells[i] != want[i] {
			t.Errorf("cell %d = %v, want %v", i, g.Cells[i], want[i])
		}
	}
	if g.TitleBaseline != 100 || g.FooterBaseline != float64(g.Height-35) {
		t.Errorf("baselines = %v, %v", g.TitleBaseline, g.FooterBaseline)
	}
}

func TestComposeNilShotKeepsSlot(t *testing.T) {
	out, err := Compose([]*pixel.Buffer{nil, solid(CellWidth, CellHeight, red)}, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	g := Layout(2)
	c0, c1 := g.Cells[0], g.Cells[1]
	if got := out.ARGB((c0.Min.X+c0.Max.X)/2, (c0.Min.Y+c0.Max.Y)/2); got != 0xFFFAF8F5 {
		t.Errorf("empty slot = %#x, want background", got)
	}
	if got := out.ARGB((c1.Min.X+c1.Max.X)/2, (c1.Min.Y+c1.Max.Y)/2); got != red {
		t.Errorf("second slot = %#x, want red", got)
	}
}

func TestComposeScalesShots(t *testing.T) {
	out, err := Compose([]*pixel.Buffer{solid(35, 28, red)}, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	if got := out.ARGB(200, 270); got != red {
		t.Errorf("scaled cell centre = %#x", got)
	}
	if got := out.ARGB(360, 400); got != red {
		t.Errorf("scaled cell corner = %#x", got)
	}
}

func TestComposeDeterministic(t *testing.T) {
	shots := []*pixel.Buffer{solid(CellWidth, CellHeight, 0xFF336699)}
	a, err := Compose(shots, WithClock(fixedClock), WithTitle("HELLO"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compose(shots, WithClock(fixedClock), WithTitle("HELLO"))
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("same input and clock gave different strips")
	}
	c, err := Compose(shots, WithClock(fixedClock))
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("title change did not change the strip")
	}
}
