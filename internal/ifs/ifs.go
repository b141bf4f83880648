package ifs

import (
	"math"
	"sort"

	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/geom"
	"github.com/san-kum/randomlogo/internal/palette"
)

// Map is one entry of an IFS.
type Map struct {
	Affine geom.Affine
	Weight float64
	Color  palette.RGB
}

// SigmaFactorIFS is an immutable weighted list of affine maps. Accessors
// return copies.
type SigmaFactorIFS struct {
	maps       []Map
	cumulative []float64
	total      float64
}

// New validates maps and builds a system from a copy of them. Weights must be
// finite and non-negative but need not sum to 1. A zero total is accepted
// here; renderers reject it.
func New(maps []Map) (*SigmaFactorIFS, error) {
	if len(maps) == 0 {
		return nil, fault.Configf("ifs.New", "an IFS needs at least one map")
	}
	s := &SigmaFactorIFS{
		maps:       make([]Map, len(maps)),
		cumulative: make([]float64, len(maps)),
	}
	copy(s.maps, maps)

	for i, m := range s.maps {
		if math.IsNaN(m.Weight) || math.IsInf(m.Weight, 0) || m.Weight < 0 {
			return nil, fault.Configf("ifs.New", "map %d: invalid weight %v", i, m.Weight)
		}
		if !m.Affine.W.IsFinite() || !m.Affine.B.IsValid() {
			return nil, fault.Configf("ifs.New", "map %d: non-finite coefficients", i)
		}
		s.total += m.Weight
		s.cumulative[i] = s.total
	}
	return s, nil
}

func (s *SigmaFactorIFS) Kind() Kind { return SigmaFactor }

func (s *SigmaFactorIFS) Len() int { return len(s.maps) }

func (s *SigmaFactorIFS) Map(i int) Map { return s.maps[i] }

func (s *SigmaFactorIFS) Maps() []Map {
	out := make([]Map, len(s.maps))
	copy(out, s.maps)
	return out
}

func (s *SigmaFactorIFS) TotalWeight() float64 { return s.total }

func (s *SigmaFactorIFS) Weights() []float64 {
	out := make([]float64, len(s.maps))
	for i, m := range s.maps {
		out[i] = m.Weight
	}
	return out
}

func (s *SigmaFactorIFS) Colors() []palette.RGB {
	out := make([]palette.RGB, len(s.maps))
	for i, m := range s.maps {
		out[i] = m.Color
	}
	return out
}

// Contractions returns the spectral norm of every map's matrix.
func (s *SigmaFactorIFS) Contractions() []float64 {
	out := make([]float64, len(s.maps))
	for i, m := range s.maps {
		out[i] = m.Affine.Contraction()
	}
	return out
}

// Select maps a uniform draw u in [0, 1) to a map index with probability
// proportional to its weight. Zero-weight maps are never selected. The
// result is undefined when TotalWeight is zero.
func (s *SigmaFactorIFS) Select(u float64) int {
	target := u * s.total
	n := len(s.cumulative)
	i := sort.Search(n, func(i int) bool { return s.cumulative[i] > target })
	if i == n {
		// u*total rounded up to total.
		i = n - 1
		for i > 0 && s.maps[i].Weight == 0 {
			i--
		}
	}
	return i
}

// Apply applies map i to p.
func (s *SigmaFactorIFS) Apply(i int, p geom.Vec2) geom.Vec2 {
	return s.maps[i].Affine.Apply(p)
}
