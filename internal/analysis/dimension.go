package analysis

import (
	"math"

	"github.com/san-kum/randomlogo/internal/render"
)

// BoxCount is the number of boxes of a given side, in pixels, that contain at
// least one visited cell.
type BoxCount struct {
	Size  int
	Boxes int
}

// BoxCounts counts occupied boxes for sides 1, 2, 4, ... up to the shorter
// canvas side.
func BoxCounts(acc *render.Accumulator) []BoxCount {
	w, h := acc.Width(), acc.Height()
	var out []BoxCount
	for size := 1; size <= min(w, h); size *= 2 {
		cols := (w + size - 1) / size
		occupied := make([]bool, cols*((h+size-1)/size))
		n := 0
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if acc.At(x, y).Count == 0 {
					continue
				}
				i := (y/size)*cols + x/size
				if !occupied[i] {
					occupied[i] = true
					n++
				}
			}
		}
		out = append(out, BoxCount{Size: size, Boxes: n})
	}
	return out
}

// BoxDimension estimates the box-counting dimension as the least-squares
// slope of log(boxes) against log(1/size). It returns false when fewer than
// two box sizes have occupied boxes.
func BoxDimension(acc *render.Accumulator) (float64, bool) {
	var xs, ys []float64
	for _, bc := range BoxCounts(acc) {
		if bc.Boxes == 0 {
			continue
		}
		xs = append(xs, -math.Log(float64(bc.Size)))
		ys = append(ys, math.Log(float64(bc.Boxes)))
	}
	if len(xs) < 2 {
		return 0, false
	}
	return slope(xs, ys), true
}

func slope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	return (n*sxy - sx*sy) / (n*sxx - sx*sx)
}

// MoranDimension solves sum(c_i^d) = 1 for d by bisection. It is the
// attractor's dimension when the maps are similarities that do not overlap,
// and an upper bound on it otherwise. Contractions must lie in (0, 1).
func MoranDimension(contractions []float64) float64 {
	f := func(d float64) float64 {
		s := -1.0
		for _, c := range contractions {
			s += math.Pow(c, d)
		}
		return s
	}

	// f is decreasing in d; grow hi until f(hi) <= 0.
	lo, hi := 0.0, 1.0
	for f(hi) > 0 && hi < 64 {
		lo, hi = hi, hi*2
	}
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		if f(mid) > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// Coverage returns the fraction of cells visited at least once.
func Coverage(acc *render.Accumulator) float64 {
	total := acc.Width() * acc.Height()
	if total == 0 {
		return 0
	}
	return float64(acc.Visited()) / float64(total)
}
