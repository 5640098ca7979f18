package canvas

import "testing"

func square() *Item {
	it := NewImage("photo.jpg")
	it.X, it.Y = 10, 10
	it.Width, it.Height = 50, 50
	return it
}

func TestNewItemDefaults(t *testing.T) {
	img := NewImage("a.jpg")
	if img.Width != 200 || img.Height != 200 || img.CornerRadius != 8 {
		t.Errorf("image = %vx%v r%v", img.Width, img.Height, img.CornerRadius)
	}
	txt := NewText("")
	tc := txt.Content.(*TextContent)
	if tc.Text != "Add your text here..." || tc.Size != 16 || tc.Family != "serif" || tc.Color != DefaultTextColor {
		t.Errorf("text content = %+v", tc)
	}
	if txt.Width != 150 || txt.Height != 50 {
		t.Errorf("text size = %vx%v", txt.Width, txt.Height)
	}
	d := NewDoodle("")
	dc := d.Content.(*DoodleContent)
	if dc.StrokeWidth != 3 || dc.StrokeColor != DefaultStrokeColor || d.Width != 100 {
		t.Errorf("doodle = %+v width %v", dc, d.Width)
	}
	for _, it := range []*Item{img, txt, d} {
		if it.Scale != 1 || it.BorderWidth != 2 || it.BorderColor != DefaultBorderColor || it.Background != Transparent {
			t.Errorf("%s common defaults = %+v", it.Kind(), it)
		}
		if it.ID == "" {
			t.Errorf("%s has no id", it.Kind())
		}
	}
	if NewItem(Kind(9)) != nil {
		t.Error("NewItem(9) != nil")
	}
}

func TestContainsUntransformed(t *testing.T) {
	it := square()
	tests := []struct {
		x, y float64
		want bool
	}{
		{30, 30, true},
		{100, 100, false},
		{10, 10, true},
		{60, 60, true},
		{9.9, 30, false},
		{30, 60.1, false},
	}
	for _, tt := range tests {
		if got := it.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestContainsHalfTurnMirrors(t *testing.T) {
	it := square()
	before := it.Contains(30, 30)
	beforeFar := it.Contains(100, 100)
	it.Rotation = 180
	// Mirrored about the centre (35, 35).
	if got := it.Contains(40, 40); got != before {
		t.Errorf("Contains(40, 40) = %v, want %v", got, before)
	}
	if got := it.Contains(-30, -30); got != beforeFar {
		t.Errorf("Contains(-30, -30) = %v, want %v", got, beforeFar)
	}
	p, ok := it.Local(40, 40)
	if !ok || !nearPoint(p, Point{20, 20}) {
		t.Errorf("Local(40, 40) = %v, %v; want {20 20}", p, ok)
	}
}

func TestContainsRotated(t *testing.T) {
	it := square()
	it.Rotation = 45
	// The corner of the unrotated square falls outside once it turns.
	if it.Contains(11, 11) {
		t.Error("Contains(11, 11) after 45 degrees")
	}
	// A point beyond the old edge is now covered by a rotated corner.
	if !it.Contains(35, 5) {
		t.Error("Contains(35, 5) after 45 degrees = false")
	}
}

func TestContainsScaled(t *testing.T) {
	it := square()
	it.Scale = 2 // covers [-15, 85] on both axes
	if !it.Contains(80, 80) {
		t.Error("Contains(80, 80) = false at scale 2")
	}
	if it.Contains(90, 90) {
		t.Error("Contains(90, 90) = true at scale 2")
	}
	it.Scale = 0
	if it.Contains(35, 35) {
		t.Error("zero-scale item contains its centre")
	}
}

func TestMoveKeepsTransform(t *testing.T) {
	it := square()
	it.Rotation, it.Scale = 30, 1.5
	it.Move(5, -3)
	if it.X != 15 || it.Y != 7 || it.Rotation != 30 || it.Scale != 1.5 {
		t.Errorf("after Move = %+v", it)
	}
}

func TestResizeClamps(t *testing.T) {
	it := square()
	it.Resize(5, 5)
	if it.Width != 20 || it.Height != 20 {
		t.Errorf("Resize(5, 5) = %vx%v, want 20x20", it.Width, it.Height)
	}
	it.Resize(80, 10)
	if it.Width != 80 || it.Height != 20 {
		t.Errorf("Resize(80, 10) = %vx%v, want 80x20", it.Width, it.Height)
	}
}

func TestCopy(t *testing.T) {
	it := NewText("hello")
	it.X, it.Y, it.Rotation = 40, 60, 12
	cp := it.Copy()
	if cp.X != 60 || cp.Y != 80 {
		t.Errorf("copy at (%v, %v), want (60, 80)", cp.X, cp.Y)
	}
	if cp.ID == it.ID {
		t.Error("copy shares the id")
	}
	if cp.Rotation != it.Rotation || cp.Width != it.Width || cp.BorderColor != it.BorderColor {
		t.Errorf("copy fields differ: %+v vs %+v", cp, it)
	}

	cp.Content.(*TextContent).Text = "changed"
	cp.Move(100, 100)
	if got := it.Content.(*TextContent).Text; got != "hello" {
		t.Errorf("original text = %q", got)
	}
	if it.X != 40 || it.Y != 60 {
		t.Errorf("original moved to (%v, %v)", it.X, it.Y)
	}
}

func TestBounds(t *testing.T) {
	it := square()
	lo, hi := it.Bounds()
	if !nearPoint(lo, Point{10, 10}) || !nearPoint(hi, Point{60, 60}) {
		t.Errorf("Bounds = %v %v", lo, hi)
	}
	it.Width = 100 // 100x50 around centre (60, 35)
	it.Rotation = 90
	lo, hi = it.Bounds()
	if !nearPoint(lo, Point{35, -15}) || !nearPoint(hi, Point{85, 85}) {
		t.Errorf("rotated Bounds = %v %v", lo, hi)
	}
}
