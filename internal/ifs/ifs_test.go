package ifs

import (
	"encoding/json"
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/geom"
	"github.com/san-kum/randomlogo/internal/palette"
)

func weighted(weights ...float64) []Map {
	maps := make([]Map, len(weights))
	for i, w := range weights {
		maps[i] = Map{
			Affine: geom.ScaleToward(geom.Vec2{X: float64(i)}, 0.5),
			Weight: w,
			Color:  palette.Julia[i%len(palette.Julia)],
		}
	}
	return maps
}

func TestSelect(t *testing.T) {
	sys, err := New(weighted(1, 0, 3))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		u    float64
		want int
	}{
		{0, 0},
		{0.2, 0},
		{0.25, 2},
		{0.5, 2},
		{0.999999, 2},
		{1, 2},
	}
	for _, tt := range tests {
		if got := sys.Select(tt.u); got != tt.want {
			t.Errorf("Select(%v) = %d, want %d", tt.u, got, tt.want)
		}
	}
}

func TestSelectFrequencies(t *testing.T) {
	sys, err := New(weighted(1, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	counts := make([]int, sys.Len())
	const n = 1000
	for i := 0; i < n; i++ {
		counts[sys.Select((float64(i)+0.5)/n)]++
	}
	if counts[0] != 250 || counts[1] != 250 || counts[2] != 500 {
		t.Errorf("unexpected selection counts %v", counts)
	}
}

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name string
		maps []Map
	}{
		{"empty", nil},
		{"negative weight", weighted(1, -1)},
		{"nan weight", weighted(1, math.NaN())},
		{"inf weight", weighted(math.Inf(1))},
		{"nan matrix", []Map{{Affine: geom.NewAffine(geom.Mat2{A: math.NaN()}, geom.Vec2{}), Weight: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.maps); !fault.IsConfiguration(err) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}

	sys, err := New(weighted(0, 0))
	if err != nil {
		t.Fatalf("zero weights should be accepted, got %v", err)
	}
	if sys.TotalWeight() != 0 {
		t.Errorf("total = %v", sys.TotalWeight())
	}
}

func TestImmutable(t *testing.T) {
	maps := weighted(1, 2)
	sys, _ := New(maps)
	maps[0].Weight = 100
	got := sys.Maps()
	got[1].Weight = 100
	if sys.Map(0).Weight != 1 || sys.Map(1).Weight != 2 {
		t.Error("system changed through caller slices")
	}
}

func TestExport(t *testing.T) {
	sys, _ := New(weighted(0.25, 0.75))

	data, err := json.Marshal(sys)
	if err != nil {
		t.Fatal(err)
	}
	var e Export
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatal(err)
	}
	if e.Kind != "SigmaFactorIFS" || len(e.Maps) != 2 || e.Maps[1].Contraction != 0.5 {
		t.Errorf("unexpected export %+v", e)
	}
	back, err := Import(e)
	if err != nil {
		t.Fatal(err)
	}
	for i := range sys.Maps() {
		if back.Map(i) != sys.Map(i) {
			t.Errorf("map %d: got %+v, want %+v", i, back.Map(i), sys.Map(i))
		}
	}

	out, err := yaml.Marshal(sys)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 {
		t.Error("empty yaml")
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("SigmaFactorIFS"); err != nil || k != SigmaFactor {
		t.Errorf("ParseKind = %v, %v", k, err)
	}
	if _, err := ParseKind("sigma"); !fault.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}
