// Package materialize turns an accumulator into an image.
package materialize

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/palette"
	"github.com/san-kum/randomlogo/internal/render"
)

// Policy decides the color of every cell.
type Policy int

const (
	// Average paints each visited cell with the mean of its map colors.
	Average Policy = iota
	// Density is Average dimmed by log(1+count)/log(1+max count).
	Density
	// Mask paints every visited cell with the foreground color.
	Mask
)

func Policies() []Policy {
	return []Policy{Average, Density, Mask}
}

func (p Policy) String() string {
	switch p {
	case Average:
		return "average"
	case Density:
		return "density"
	case Mask:
		return "mask"
	default:
		return "unknown"
	}
}

func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(name) {
	case "average", "":
		return Average, nil
	case "density":
		return Density, nil
	case "mask":
		return Mask, nil
	default:
		return 0, fault.Configf("materialize", "unknown policy: %q", name)
	}
}

type Options struct {
	Policy     Policy
	Background palette.RGB
	Foreground palette.RGB
}

func DefaultOptions() Options {
	return Options{Policy: Average, Foreground: palette.RGB{R: 255, G: 255, B: 255}}
}

// OptionsFromConfig reads policy, background and foreground from cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	policy, err := ParsePolicy(cfg.Policy)
	if err != nil {
		return Options{}, err
	}
	bg, err := palette.ParseHex(cfg.Background)
	if err != nil {
		return Options{}, err
	}
	fg, err := palette.ParseHex(cfg.Foreground)
	if err != nil {
		return Options{}, err
	}
	return Options{Policy: policy, Background: bg, Foreground: fg}, nil
}

// Materialize maps every cell of acc to an opaque pixel. Unvisited cells take
// the background color.
func Materialize(acc *render.Accumulator, opts Options) *image.RGBA {
	w, h := acc.Width(), acc.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := opts.Background.Color()

	var logMax float64
	if opts.Policy == Density {
		logMax = math.Log1p(float64(acc.MaxCount()))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := acc.At(x, y)
			mean, ok := cell.Mean()
			if !ok {
				img.SetRGBA(x, y, bg)
				continue
			}
			switch opts.Policy {
			case Mask:
				img.SetRGBA(x, y, opts.Foreground.Color())
			case Density:
				img.SetRGBA(x, y, blend(opts.Background, mean, math.Log1p(float64(cell.Count))/logMax).Color())
			default:
				img.SetRGBA(x, y, mean.Color())
			}
		}
	}
	return img
}

// blend interpolates from bg to fg by t in [0, 1].
func blend(bg, fg palette.RGB, t float64) palette.RGB {
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return palette.RGB{R: mix(bg.R, fg.R), G: mix(bg.G, fg.G), B: mix(bg.B, fg.B)}
}

func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// WritePNG writes img to path, replacing any existing file.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := EncodePNG(bw, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
