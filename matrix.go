package photoview

import "math"

// Matrix is a 2D affine transformation.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// All Post* methods return m followed by the new operation, i.e. the
// operation is applied after m when mapping points.
type Matrix [6]float64

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// TranslateMatrix returns a translation by (tx, ty).
func TranslateMatrix(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

// ScaleMatrix returns a scale by (sx, sy) around the pivot (px, py).
func ScaleMatrix(sx, sy, px, py float64) Matrix {
	return Matrix{sx, 0, 0, sy, px - sx*px, py - sy*py}
}

// RotateMatrix returns a rotation by degrees around the pivot (px, py).
// Positive angles rotate clockwise on a Y-down surface.
func RotateMatrix(degrees, px, py float64) Matrix {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Matrix{
		cos, sin,
		-sin, cos,
		px - cos*px + sin*py,
		py - sin*px - cos*py,
	}
}

// Multiply returns m * o. Mapping a point through the result applies o
// first, then m.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// PostTranslate returns m followed by a translation of (dx, dy).
func (m Matrix) PostTranslate(dx, dy float64) Matrix {
	m[4] += dx
	m[5] += dy
	return m
}

// PostScale returns m followed by a scale of (sx, sy) around (px, py).
func (m Matrix) PostScale(sx, sy, px, py float64) Matrix {
	return ScaleMatrix(sx, sy, px, py).Multiply(m)
}

// PostRotate returns m followed by a rotation of degrees around (px, py).
func (m Matrix) PostRotate(degrees, px, py float64) Matrix {
	return RotateMatrix(degrees, px, py).Multiply(m)
}

// Invert returns the inverse of m. ok is false when m is singular
// (determinant ≈ 0), in which case the identity is returned.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity(), false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Matrix{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// TransformPoint applies m to a point.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// MapRect transforms the four corners of r and returns their axis-aligned
// bounding box.
func (m Matrix) MapRect(r Rect) Rect {
	x0, y0 := m.TransformPoint(r.X, r.Y)
	x1, y1 := m.TransformPoint(r.X+r.Width, r.Y)
	x2, y2 := m.TransformPoint(r.X+r.Width, r.Y+r.Height)
	x3, y3 := m.TransformPoint(r.X, r.Y+r.Height)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Scale returns the magnitude of the first column of the linear part,
// sqrt(a² + b²). For a matrix that mixes rotation with a uniform scale this
// is the scale factor regardless of the angle.
func (m Matrix) Scale() float64 {
	return math.Hypot(m[0], m[1])
}

// Rotation returns the rotation angle of the first column in degrees, in
// the range (-180, 180].
func (m Matrix) Rotation() float64 {
	return math.Atan2(m[1], m[0]) * 180 / math.Pi
}

// Translation returns the translation components.
func (m Matrix) Translation() (tx, ty float64) {
	return m[4], m[5]
}

// Values returns m as a row-major 3x3 matrix.
func (m Matrix) Values() [9]float64 {
	return [9]float64{
		m[0], m[2], m[4],
		m[1], m[3], m[5],
		0, 0, 1,
	}
}

// valid reports whether every component is finite and m is invertible.
func (m Matrix) valid() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	_, ok := m.Invert()
	return ok
}
