package ifs

import (
	"encoding/json"

	"github.com/san-kum/randomlogo/internal/geom"
	"github.com/san-kum/randomlogo/internal/palette"
)

// Export is the serialized form of an IFS, used by the CLI, the run store and
// the HTTP API.
type Export struct {
	Kind string      `json:"kind" yaml:"kind"`
	Maps []MapExport `json:"maps" yaml:"maps"`
}

type MapExport struct {
	W           [2][2]float64 `json:"w" yaml:"w,flow"`
	B           [2]float64    `json:"b" yaml:"b,flow"`
	Weight      float64       `json:"weight" yaml:"weight"`
	Color       palette.RGB   `json:"color" yaml:"color"`
	Contraction float64       `json:"contraction" yaml:"contraction"`
}

func (s *SigmaFactorIFS) Export() Export {
	e := Export{Kind: s.Kind().String(), Maps: make([]MapExport, len(s.maps))}
	for i, m := range s.maps {
		w := m.Affine.W
		e.Maps[i] = MapExport{
			W:           [2][2]float64{{w.A, w.B}, {w.C, w.D}},
			B:           [2]float64{m.Affine.B.X, m.Affine.B.Y},
			Weight:      m.Weight,
			Color:       m.Color,
			Contraction: m.Affine.Contraction(),
		}
	}
	return e
}

// Import rebuilds a system from its export. Contraction is recomputed and
// the exported value ignored.
func Import(e Export) (*SigmaFactorIFS, error) {
	if _, err := ParseKind(e.Kind); err != nil {
		return nil, err
	}
	maps := make([]Map, len(e.Maps))
	for i, m := range e.Maps {
		maps[i] = Map{
			Affine: geom.NewAffine(
				geom.Mat2{A: m.W[0][0], B: m.W[0][1], C: m.W[1][0], D: m.W[1][1]},
				geom.Vec2{X: m.B[0], Y: m.B[1]},
			),
			Weight: m.Weight,
			Color:  m.Color,
		}
	}
	return New(maps)
}

func (s *SigmaFactorIFS) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Export())
}

func (s *SigmaFactorIFS) MarshalYAML() (any, error) {
	return s.Export(), nil
}
