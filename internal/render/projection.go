package render

import (
	"math"

	"github.com/san-kum/randomlogo/internal/geom"
)

// Bounds is an axis-aligned box. The zero value is empty.
type Bounds struct {
	Min, Max geom.Vec2
	nonEmpty bool
}

func (b Bounds) Empty() bool { return !b.nonEmpty }

// Extend grows b to contain p.
func (b Bounds) Extend(p geom.Vec2) Bounds {
	if !b.nonEmpty {
		return Bounds{Min: p, Max: p, nonEmpty: true}
	}
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	return b
}

func (b Bounds) Union(o Bounds) Bounds {
	if !o.nonEmpty {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

func (b Bounds) Contains(p geom.Vec2) bool {
	return b.nonEmpty && p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b Bounds) Size() geom.Vec2 {
	return b.Max.Sub(b.Min)
}

// Projection fits a bounding box onto a canvas, keeping margin pixels free on
// every side. Each axis is scaled independently; an axis with zero extent
// maps to the canvas centre. Rows grow downward with y.
type Projection struct {
	bounds        Bounds
	width, height int
	mx, my        int
}

func NewProjection(b Bounds, width, height, margin int) Projection {
	return Projection{
		bounds: b,
		width:  width,
		height: height,
		mx:     min(margin, (width-1)/2),
		my:     min(margin, (height-1)/2),
	}
}

// Project returns the pixel of p and false when it falls outside the canvas.
func (pr Projection) Project(p geom.Vec2) (int, int, bool) {
	x, okx := axis(p.X, pr.bounds.Min.X, pr.bounds.Max.X, pr.width, pr.mx)
	y, oky := axis(p.Y, pr.bounds.Min.Y, pr.bounds.Max.Y, pr.height, pr.my)
	return x, y, okx && oky
}

func axis(v, lo, hi float64, size, margin int) (int, bool) {
	extent := hi - lo
	if !(extent > 0) {
		if v != lo {
			return 0, false
		}
		return (size - 1) / 2, true
	}
	t := (v - lo) / extent
	if !(t >= 0 && t <= 1) {
		return 0, false
	}
	span := float64(size - 1 - 2*margin)
	return margin + int(t*span), true
}
