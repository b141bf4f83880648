package geom

import "math"

// Mat2 is a 2x2 matrix stored row-major:
//
//	| A B |
//	| C D |
type Mat2 struct {
	A, B, C, D float64
}

func Identity() Mat2 {
	return Mat2{1, 0, 0, 1}
}

func Diag(a, d float64) Mat2 {
	return Mat2{A: a, D: d}
}

// Rotation returns the counter-clockwise rotation by theta radians.
func Rotation(theta float64) Mat2 {
	s, c := math.Sincos(theta)
	return Mat2{c, -s, s, c}
}

func (m Mat2) Mul(o Mat2) Mat2 {
	return Mat2{
		A: m.A*o.A + m.B*o.C,
		B: m.A*o.B + m.B*o.D,
		C: m.C*o.A + m.D*o.C,
		D: m.C*o.B + m.D*o.D,
	}
}

func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{m.A*v.X + m.B*v.Y, m.C*v.X + m.D*v.Y}
}

func (m Mat2) Scale(f float64) Mat2 {
	return Mat2{m.A * f, m.B * f, m.C * f, m.D * f}
}

func (m Mat2) Sub(o Mat2) Mat2 {
	return Mat2{m.A - o.A, m.B - o.B, m.C - o.C, m.D - o.D}
}

func (m Mat2) Transpose() Mat2 {
	return Mat2{m.A, m.C, m.B, m.D}
}

func (m Mat2) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Inverse returns the inverse of m and false when m is singular.
func (m Mat2) Inverse() (Mat2, bool) {
	det := m.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Mat2{}, false
	}
	inv := 1 / det
	return Mat2{m.D * inv, -m.B * inv, -m.C * inv, m.A * inv}, true
}

// SingularValues returns the singular values of m with s1 >= s2 >= 0.
//
// Closed form via the decomposition of m into a similarity and an
// anti-similarity part; it stays accurate when the two values are close.
func (m Mat2) SingularValues() (s1, s2 float64) {
	e := (m.A + m.D) / 2
	f := (m.A - m.D) / 2
	g := (m.C + m.B) / 2
	h := (m.C - m.B) / 2
	q := math.Hypot(e, h)
	r := math.Hypot(f, g)
	return q + r, math.Abs(q - r)
}

// Norm is the spectral norm, the largest singular value.
func (m Mat2) Norm() float64 {
	s1, _ := m.SingularValues()
	return s1
}

func (m Mat2) IsFinite() bool {
	for _, v := range [4]float64{m.A, m.B, m.C, m.D} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
