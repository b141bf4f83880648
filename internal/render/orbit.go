package render

import (
	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/geom"
	"github.com/san-kum/randomlogo/internal/ifs"
)

// Uniform is the randomness an orbit consumes: one draw per step.
type Uniform interface {
	Float64() float64
}

// Orbit is a chaos-game trajectory starting at the origin.
type Orbit struct {
	sys *ifs.SigmaFactorIFS
	src Uniform
	p   geom.Vec2
}

func NewOrbit(sys *ifs.SigmaFactorIFS, src Uniform) *Orbit {
	return &Orbit{sys: sys, src: src}
}

// Step applies a randomly selected map and returns the new point with the
// index of the map.
func (o *Orbit) Step() (geom.Vec2, int) {
	i := o.sys.Select(o.src.Float64())
	o.p = o.sys.Apply(i, o.p)
	return o.p, i
}

// Skip advances n steps without returning the points.
func (o *Orbit) Skip(n int) {
	for ; n > 0; n-- {
		o.Step()
	}
}

func (o *Orbit) Point() geom.Vec2 { return o.p }

// GeneratePoints runs one orbit of n steps and returns the points after the
// first burnIn.
func GeneratePoints(src Uniform, sys *ifs.SigmaFactorIFS, n, burnIn int) ([]geom.Vec2, error) {
	if err := checkSystem(sys); err != nil {
		return nil, err
	}
	if n < 0 || burnIn < 0 {
		return nil, fault.Configf("render", "negative point count %d or burn-in %d", n, burnIn)
	}
	skip := min(burnIn, n)
	o := NewOrbit(sys, src)
	o.Skip(skip)

	points := make([]geom.Vec2, n-skip)
	for i := range points {
		points[i], _ = o.Step()
	}
	return points, nil
}

func checkSystem(sys *ifs.SigmaFactorIFS) error {
	if sys == nil {
		return fault.Configf("render", "no IFS")
	}
	if !(sys.TotalWeight() > 0) {
		return fault.Configf("render", "IFS total weight is zero")
	}
	return nil
}
