package ifs

import (
	"math"

	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/geom"
	"github.com/san-kum/randomlogo/internal/palette"
)

const (
	MinMaps = 2
	MaxMaps = 4

	DefaultMinContraction = 0.05
	DefaultMaxContraction = 0.99

	// maxAttempts bounds the redraws of a system with a degenerate matrix.
	maxAttempts = 8

	// rescaled maps land this far inside the violated bound.
	boundSlack = 1e-6
)

// Source is the randomness the generator consumes. *rng.Rand satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
	Uint64() uint64
}

type Options struct {
	// Maps fixes the number of maps. Zero draws it from [MinMaps, MaxMaps].
	Maps int

	MinContraction float64
	MaxContraction float64

	Palette palette.Kind
}

func DefaultOptions() Options {
	return Options{
		MinContraction: DefaultMinContraction,
		MaxContraction: DefaultMaxContraction,
		Palette:        palette.JuliaKind,
	}
}

func (o Options) validate() error {
	const op = "ifs.Generate"
	switch {
	case o.Maps != 0 && (o.Maps < MinMaps || o.Maps > MaxMaps):
		return fault.Configf(op, "maps must be 0 or in [%d, %d], got %d", MinMaps, MaxMaps, o.Maps)
	case !(o.MinContraction > 0):
		return fault.Configf(op, "min contraction must be positive, got %v", o.MinContraction)
	case !(o.MaxContraction < 1):
		return fault.Configf(op, "max contraction must be below 1, got %v", o.MaxContraction)
	case o.MinContraction >= o.MaxContraction:
		return fault.Configf(op, "min contraction %v not below max %v", o.MinContraction, o.MaxContraction)
	}
	return nil
}

func uniform(src Source, a, b float64) float64 {
	return a + (b-a)*src.Float64()
}

// SampleSVs draws n singular value pairs (s1, s2), s1 >= s2, whose sum
// s1 + 2*s2 over all pairs equals alpha.
func SampleSVs(src Source, alpha float64, n int) [][2]float64 {
	out := make([][2]float64, 0, n)
	lower := alpha - 3*float64(n) + 3
	upper := alpha

	for i := 0; i < n-1; i++ {
		s1 := uniform(src, math.Max(0, lower/3), math.Min(1, upper))
		lower -= s1
		upper -= s1

		s2 := uniform(src, math.Max(0, lower/2), math.Min(s1, upper/2))
		lower = lower - 2*s2 + 3
		upper -= 2 * s2

		out = append(out, [2]float64{s1, s2})
	}

	s2 := uniform(src, math.Max(0, (upper-1)/2), upper/3)
	s1 := upper - 2*s2
	return append(out, [2]float64{s1, s2})
}

// Generate draws a sigma-factor IFS from src.
//
// Every map is W = R(theta) diag(s1, s2) R(phi) D with D a random sign
// diagonal and b uniform in [-1, 1]^2. Maps whose contraction falls outside
// the configured interval are rescaled onto it. Weights are |det W|,
// normalized to sum to 1.
func Generate(src Source, opts Options) (*SigmaFactorIFS, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	n := opts.Maps
	if n == 0 {
		n = MinMaps + src.IntN(MaxMaps-MinMaps+1)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		affines, ok := drawAffines(src, n, opts)
		if !ok {
			continue
		}

		maps := make([]Map, n)
		total := 0.0
		for i, f := range affines {
			maps[i] = Map{Affine: f, Weight: math.Abs(f.Det())}
			total += maps[i].Weight
		}
		if !(total > 0) || math.IsInf(total, 0) {
			continue
		}
		colors := opts.Palette.Colors(src, n)
		for i := range maps {
			maps[i].Weight /= total
			maps[i].Color = colors[i]
		}
		return New(maps)
	}
	return nil, fault.Generationf("ifs.Generate", "no contractive system after %d attempts", maxAttempts)
}

func drawAffines(src Source, n int, opts Options) ([]geom.Affine, bool) {
	alpha := uniform(src, float64(5+n)/2, float64(6+n)/2)
	svs := SampleSVs(src, alpha, n)

	out := make([]geom.Affine, n)
	ok := true
	for i, sv := range svs {
		theta := uniform(src, 0, 2*math.Pi)
		phi := uniform(src, 0, 2*math.Pi)
		d := geom.Diag(sign(src), sign(src))
		w := geom.Rotation(theta).Mul(geom.Diag(sv[0], sv[1])).Mul(geom.Rotation(phi)).Mul(d)
		b := geom.Vec2{X: uniform(src, -1, 1), Y: uniform(src, -1, 1)}

		// Keep drawing after a failure so each attempt consumes the same
		// amount of randomness.
		w, good := normalize(w, opts.MinContraction, opts.MaxContraction)
		ok = ok && good && b.IsValid()
		out[i] = geom.NewAffine(w, b)
	}
	return out, ok
}

func sign(src Source) float64 {
	if src.Uint64()&1 == 1 {
		return 1
	}
	return -1
}

// normalize rescales w so its spectral norm lies strictly inside (lo, hi).
// It reports false for matrices that cannot be rescaled.
func normalize(w geom.Mat2, lo, hi float64) (geom.Mat2, bool) {
	if !w.IsFinite() {
		return w, false
	}
	s := w.Norm()
	switch {
	case !(s > 0) || math.IsInf(s, 0):
		return w, false
	case s >= hi:
		w = w.Scale(hi * (1 - boundSlack) / s)
	case s <= lo:
		w = w.Scale(lo * (1 + boundSlack) / s)
	}
	if c := w.Norm(); !(c > lo && c < hi) {
		return w, false
	}
	return w, true
}
