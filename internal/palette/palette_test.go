package palette

import (
	"testing"

	"github.com/san-kum/randomlogo/internal/fault"
)

type fixedSource struct {
	f float64
	n int
}

func (s *fixedSource) Float64() float64 { return s.f }
func (s *fixedSource) IntN(n int) int {
	v := s.n % n
	s.n++
	return v
}

func TestJuliaColors(t *testing.T) {
	colors := JuliaKind.Colors(&fixedSource{}, 5)
	want := []RGB{JuliaRed, JuliaGreen, JuliaBlue, JuliaPurple, JuliaRed}
	for i := range want {
		if colors[i] != want[i] {
			t.Errorf("color %d = %v, want %v", i, colors[i], want[i])
		}
	}
}

func TestHueColorsDistinct(t *testing.T) {
	colors := HueKind.Colors(&fixedSource{f: 0.1}, 4)
	seen := make(map[RGB]bool)
	for _, c := range colors {
		if seen[c] {
			t.Errorf("duplicate hue color %v", c)
		}
		seen[c] = true
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#000000", RGB{}, false},
		{"#cb3c33", JuliaRed, false},
		{"ffffff", RGB{255, 255, 255}, false},
		{"#zzzzzz", RGB{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if tt.wantErr {
			if !fault.IsConfiguration(err) {
				t.Errorf("ParseHex(%q) err = %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseHex(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if JuliaBlue.Hex() != "#4063d8" {
		t.Errorf("Hex = %s", JuliaBlue.Hex())
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("hue"); err != nil || k != HueKind {
		t.Errorf("ParseKind(hue) = %v, %v", k, err)
	}
	if k, err := ParseKind(""); err != nil || k != JuliaKind {
		t.Errorf("ParseKind(\"\") = %v, %v", k, err)
	}
	if _, err := ParseKind("rainbow"); !fault.IsConfiguration(err) {
		t.Errorf("ParseKind(rainbow) err = %v", err)
	}
}
