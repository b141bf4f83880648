// Package geom provides the planar linear algebra used by the IFS generator
// and the chaos-game renderer: vectors, 2x2 matrices and affine maps.
package geom

// Affine is the map f(x) = W x + B.
type Affine struct {
	W Mat2
	B Vec2
}

func NewAffine(w Mat2, b Vec2) Affine {
	return Affine{W: w, B: b}
}

func (f Affine) Apply(p Vec2) Vec2 {
	return f.W.MulVec(p).Add(f.B)
}

func (f Affine) Det() float64 {
	return f.W.Det()
}

// Contraction is the Lipschitz constant of f, the spectral norm of W.
// Repeated application converges to a unique fixed point when it is below 1.
func (f Affine) Contraction() float64 {
	return f.W.Norm()
}

// FixedPoint solves x = W x + B. It returns false when I - W is singular.
func (f Affine) FixedPoint() (Vec2, bool) {
	inv, ok := Identity().Sub(f.W).Inverse()
	if !ok {
		return Vec2{}, false
	}
	return inv.MulVec(f.B), true
}

// ScaleToward returns the homothety with ratio s centred on c.
func ScaleToward(c Vec2, s float64) Affine {
	return Affine{W: Diag(s, s), B: c.Scale(1 - s)}
}
