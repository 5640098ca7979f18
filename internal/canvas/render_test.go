package canvas

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"snapbook/internal/pixel"
)

func TestRenderBackground(t *testing.T) {
	p := NewPage("blank")
	out, err := Render(p, 40, 30)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out.Width != 40 || out.Height != 30 {
		t.Fatalf("size = %dx%d", out.Width, out.Height)
	}
	for _, pt := range [][2]int{{0, 0}, {39, 29}, {20, 15}} {
		if got := out.ARGB(pt[0], pt[1]); got != uint32(DefaultPageBackground) {
			t.Errorf("pixel %v = %#x", pt, got)
		}
	}
}

func TestRenderInvalidSize(t *testing.T) {
	if _, err := Render(NewPage(""), 0, 10); err == nil {
		t.Error("Render with zero width succeeded")
	}
}

func TestRenderBackgroundImage(t *testing.T) {
	p := NewPage("")
	p.BackgroundImage = "bg"
	red := image.NewUniform(color.NRGBA{R: 255, A: 255})
	src := func(string) (image.Image, error) {
		img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				img.Set(x, y, red.C)
			}
		}
		return img, nil
	}
	out, err := Render(p, 20, 20, WithImageSource(src))
	if err != nil {
		t.Fatal(err)
	}
	if got := out.ARGB(10, 10); got != 0xFFFF0000 {
		t.Errorf("centre = %#x, want stretched red", got)
	}
}

// Rendering and hit-testing must agree on where a rotated item is.
func TestRenderMatchesHitTest(t *testing.T) {
	p := NewPage("")
	it := NewImage("")
	it.X, it.Y, it.Width, it.Height = 20, 40, 60, 20
	it.Rotation = 90 // centre (50, 50), covers x 40..60, y 20..80
	p.Items = []*Item{it}
	b := NewBoard(p)

	out, err := Render(p, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		hit  bool
	}{
		{50, 35, true},
		{50, 70, true},
		{30, 50, false},
		{75, 50, false},
	}
	for _, tt := range tests {
		px, py := float64(tt.x)+0.5, float64(tt.y)+0.5
		if got := b.HitTest(px, py) != nil; got != tt.hit {
			t.Errorf("HitTest(%v, %v) = %v, want %v", px, py, got, tt.hit)
		}
		want := uint32(DefaultPageBackground)
		if tt.hit {
			want = uint32(placeholderColor)
		}
		if got := out.ARGB(tt.x, tt.y); got != want {
			t.Errorf("pixel (%d, %d) = %#x, want %#x", tt.x, tt.y, got, want)
		}
	}
}

func TestRenderMissingImageUsesPlaceholder(t *testing.T) {
	p := NewPage("")
	it := NewImage("gone.jpg")
	it.Width, it.Height = 40, 40
	p.Items = []*Item{it}
	fail := func(string) (image.Image, error) { return nil, errors.New("missing") }
	out, err := Render(p, 50, 50, WithImageSource(fail))
	if err != nil {
		t.Fatal(err)
	}
	if got := out.ARGB(20, 20); got != uint32(placeholderColor) {
		t.Errorf("centre = %#x", got)
	}
}

func differs(out *pixel.Buffer, x0, y0, x1, y1 int, bg uint32) bool {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if out.ARGB(x, y) != bg {
				return true
			}
		}
	}
	return false
}

func TestRenderTextAndSelection(t *testing.T) {
	p := NewPage("")
	txt := NewText("Hello")
	txt.X, txt.Y = 20, 20
	p.Items = []*Item{txt}
	bg := uint32(DefaultPageBackground)

	out, err := Render(p, 200, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !differs(out, 28, 22, 80, 40, bg) {
		t.Error("no text drawn")
	}
	if differs(out, 10, 10, 199, 14, bg) {
		t.Error("unselected item drew outside its box")
	}

	out, err = Render(p, 200, 100, WithSelection(txt))
	if err != nil {
		t.Fatal(err)
	}
	// The dashed outline runs 5 units outside the top edge.
	if !differs(out, 25, 13, 165, 17, bg) {
		t.Error("no selection outline drawn")
	}
}
