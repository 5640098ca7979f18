package canvas

import "math"

// Matrix is a 2D affine transform in row-major order:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Point is a position in canvas units.
type Point struct {
	X, Y float64
}

func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate rotates by angle radians. With y pointing down this turns
// clockwise on screen.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m * o: o is applied first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// TransformPoint applies m to p.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Invert returns the inverse of m. ok is false when m is singular.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	d := 1 / det
	return Matrix{
		A: m.E * d,
		B: -m.B * d,
		C: (m.B*m.F - m.C*m.E) * d,
		D: -m.D * d,
		E: m.A * d,
		F: (m.C*m.D - m.A*m.F) * d,
	}, true
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
