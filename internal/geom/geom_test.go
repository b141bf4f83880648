package geom

import (
	"math"
	"testing"
)

func TestSingularValues(t *testing.T) {
	tests := []struct {
		name   string
		m      Mat2
		s1, s2 float64
	}{
		{"identity", Identity(), 1, 1},
		{"diag", Diag(0.3, -0.7), 0.7, 0.3},
		{"zero", Mat2{}, 0, 0},
		{"rank one", Mat2{1, 1, 1, 1}, 2, 0},
		{"rotation", Rotation(1.234), 1, 1},
		{"shear", Mat2{1, 1, 0, 1}, (1 + math.Sqrt(5)) / 2, (math.Sqrt(5) - 1) / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s1, s2 := tt.m.SingularValues()
			if math.Abs(s1-tt.s1) > 1e-12 || math.Abs(s2-tt.s2) > 1e-12 {
				t.Errorf("SingularValues() = (%v, %v), want (%v, %v)", s1, s2, tt.s1, tt.s2)
			}
		})
	}
}

func TestSingularValuesOfComposition(t *testing.T) {
	// R(theta) diag(s1, s2) R(phi) D keeps the singular values of the diagonal.
	m := Rotation(0.7).Mul(Diag(0.8, 0.25)).Mul(Rotation(2.1)).Mul(Diag(-1, 1))
	s1, s2 := m.SingularValues()
	if math.Abs(s1-0.8) > 1e-12 || math.Abs(s2-0.25) > 1e-12 {
		t.Errorf("got (%v, %v), want (0.8, 0.25)", s1, s2)
	}
	if math.Abs(math.Abs(m.Det())-0.2) > 1e-12 {
		t.Errorf("|det| = %v, want 0.2", math.Abs(m.Det()))
	}
}

func TestInverse(t *testing.T) {
	m := Mat2{2, 1, 1, 3}
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected invertible")
	}
	p := m.Mul(inv)
	if math.Abs(p.A-1) > 1e-12 || math.Abs(p.D-1) > 1e-12 || math.Abs(p.B) > 1e-12 || math.Abs(p.C) > 1e-12 {
		t.Errorf("m * inv = %+v, want identity", p)
	}
	if _, ok := (Mat2{1, 2, 2, 4}).Inverse(); ok {
		t.Error("singular matrix reported invertible")
	}
}

func TestAffineFixedPoint(t *testing.T) {
	c := Vec2{0.25, -0.5}
	f := ScaleToward(c, 0.5)
	fp, ok := f.FixedPoint()
	if !ok {
		t.Fatal("expected fixed point")
	}
	if fp.Sub(c).Norm() > 1e-12 {
		t.Errorf("fixed point = %v, want %v", fp, c)
	}
	if got := f.Apply(Vec2{1, 1}); got.Sub(Vec2{0.625, 0.25}).Norm() > 1e-12 {
		t.Errorf("Apply = %v", got)
	}
	if f.Contraction() != 0.5 {
		t.Errorf("Contraction = %v, want 0.5", f.Contraction())
	}
}

func TestVec2(t *testing.T) {
	a := Vec2{3, 4}
	if a.Norm() != 5 {
		t.Errorf("Norm = %v", a.Norm())
	}
	if a.Cross(Vec2{1, 0}) != -4 {
		t.Errorf("Cross = %v", a.Cross(Vec2{1, 0}))
	}
	if (Vec2{math.NaN(), 0}).IsValid() || !a.IsValid() {
		t.Error("IsValid mismatch")
	}
}
