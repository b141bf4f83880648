// Package palette assigns colors to IFS maps.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/randomlogo/internal/fault"
)

// RGB is an 8-bit color. Accumulators sum these channels as integers.
type RGB struct {
	R, G, B uint8
}

// Colors of the Julia logo.
var (
	JuliaRed    = RGB{203, 60, 51}
	JuliaGreen  = RGB{56, 152, 38}
	JuliaBlue   = RGB{64, 99, 216}
	JuliaPurple = RGB{149, 88, 178}
)

var Julia = []RGB{JuliaRed, JuliaGreen, JuliaBlue, JuliaPurple}

func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *RGB) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHex parses "#rrggbb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fault.Wrap(fault.Configuration, "palette", err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// Source is the randomness a palette consumes.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Kind enumerates the palettes.
type Kind int

const (
	// JuliaKind draws each map's color from the four Julia logo colors.
	JuliaKind Kind = iota
	// HueKind spaces colors evenly around the hue circle from a random phase.
	HueKind
)

func (k Kind) String() string {
	switch k {
	case JuliaKind:
		return "julia"
	case HueKind:
		return "hue"
	default:
		return "unknown"
	}
}

func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "julia", "":
		return JuliaKind, nil
	case "hue":
		return HueKind, nil
	default:
		return 0, fault.Configf("palette", "unknown palette: %q", name)
	}
}

// Colors draws n colors from src.
func (k Kind) Colors(src Source, n int) []RGB {
	out := make([]RGB, n)
	switch k {
	case HueKind:
		phase := src.Float64() * 360
		for i := range out {
			h := math.Mod(phase+float64(i)*360/float64(n), 360)
			r, g, b := colorful.Hsv(h, 0.75, 0.9).Clamped().RGB255()
			out[i] = RGB{r, g, b}
		}
	default:
		for i := range out {
			out[i] = Julia[src.IntN(len(Julia))]
		}
	}
	return out
}
