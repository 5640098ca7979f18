package canvas

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func nearPoint(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func TestMatrixMultiplyOrder(t *testing.T) {
	// Scale first, then translate.
	m := Translate(10, 5).Multiply(Scale(2, 3))
	got := m.TransformPoint(Point{1, 1})
	if !nearPoint(got, Point{12, 8}) {
		t.Errorf("TransformPoint = %v, want {12 8}", got)
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	got := Rotate(Radians(90)).TransformPoint(Point{1, 0})
	if !nearPoint(got, Point{0, 1}) {
		t.Errorf("TransformPoint = %v, want {0 1}", got)
	}
}

func TestInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(-4, 9)},
		{"rotate", Rotate(Radians(33))},
		{"chain", Translate(35, 35).Multiply(Rotate(Radians(120))).Multiply(Scale(1.5, 1.5)).Multiply(Translate(-25, -25))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			if !ok {
				t.Fatal("Invert reported singular")
			}
			for _, p := range []Point{{0, 0}, {3, -7}, {120, 44}} {
				if got := inv.TransformPoint(tt.m.TransformPoint(p)); !nearPoint(got, p) {
					t.Errorf("round trip of %v = %v", p, got)
				}
			}
		})
	}
}

func TestInvertSingular(t *testing.T) {
	if _, ok := Scale(0, 0).Invert(); ok {
		t.Error("Invert of zero scale reported ok")
	}
}
