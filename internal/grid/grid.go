// Package grid renders a montage of logos with consecutive seeds.
package grid

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"runtime"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/randomlogo/internal/cache"
	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/logo"
	"github.com/san-kum/randomlogo/internal/palette"
)

const (
	DefaultRows      = 5
	DefaultCols      = 5
	DefaultSeedStart = 100
	DefaultGap       = 4
)

type Options struct {
	Rows, Cols int
	SeedStart  uint64
	// TileSize scales every tile to a square of this many pixels. Zero
	// keeps the configured canvas size.
	TileSize int
	Gap      int
	// Labels draws "seed N" in the corner of every tile.
	Labels bool
	// Workers bounds the tiles rendered at once. Zero means runtime.NumCPU.
	Workers int

	Cache    cache.Cache
	Logger   *log.Logger
	Progress func(done, total int)
}

func DefaultOptions() Options {
	return Options{Rows: DefaultRows, Cols: DefaultCols, SeedStart: DefaultSeedStart, Gap: DefaultGap}
}

type Tile struct {
	Row, Col int
	Seed     uint64
	Stats    logo.Stats
	image    *image.RGBA
}

func (o *Options) validate() error {
	switch {
	case o.Rows <= 0 || o.Cols <= 0:
		return fault.Configf("grid", "grid must be at least 1x1, got %dx%d", o.Rows, o.Cols)
	case o.TileSize < 0 || o.Gap < 0:
		return fault.Configf("grid", "negative tile size %d or gap %d", o.TileSize, o.Gap)
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Render draws Rows x Cols logos of base with seeds SeedStart,
// SeedStart+1, ... in row-major order. Tiles render concurrently, each
// single-threaded; the first failure cancels the rest.
func Render(ctx context.Context, base *config.Config, opts Options) (*image.RGBA, []Tile, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	if err := base.Validate(); err != nil {
		return nil, nil, err
	}
	bg, err := palette.ParseHex(base.Background)
	if err != nil {
		return nil, nil, err
	}
	fg, err := palette.ParseHex(base.Foreground)
	if err != nil {
		return nil, nil, err
	}

	tiles := make([]Tile, opts.Rows*opts.Cols)
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range tiles {
		tiles[i] = Tile{Row: i / opts.Cols, Col: i % opts.Cols, Seed: opts.SeedStart + uint64(i)}
		g.Go(func() error {
			cfg := base.Clone()
			cfg.Seed = tiles[i].Seed
			cfg.Workers = 1

			res, err := logo.RenderFromConfig(gctx, cfg, logo.Options{Cache: opts.Cache, Logger: opts.Logger})
			if err != nil {
				return fmt.Errorf("tile seed %d: %w", cfg.Seed, err)
			}
			img, err := res.Image()
			if err != nil {
				return err
			}
			tiles[i].Stats = res.Stats
			tiles[i].image = img
			opts.Logger.Debug("tile done", "seed", cfg.Seed, "maps", res.IFS.Len(), "cached", res.Stats.Cached)
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), len(tiles))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return compose(tiles, base, opts, bg, fg), tiles, nil
}

func compose(tiles []Tile, base *config.Config, opts Options, bg, fg palette.RGB) *image.RGBA {
	tw, th := base.Width, base.Height
	if opts.TileSize > 0 {
		tw, th = opts.TileSize, opts.TileSize
	}
	w := opts.Cols*tw + (opts.Cols+1)*opts.Gap
	h := opts.Rows*th + (opts.Rows+1)*opts.Gap

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg.Color()), image.Point{}, draw.Src)

	for _, t := range tiles {
		x := opts.Gap + t.Col*(tw+opts.Gap)
		y := opts.Gap + t.Row*(th+opts.Gap)
		rect := image.Rect(x, y, x+tw, y+th)
		if t.image.Bounds().Size() == rect.Size() {
			draw.Draw(out, rect, t.image, image.Point{}, draw.Src)
		} else {
			draw.CatmullRom.Scale(out, rect, t.image, t.image.Bounds(), draw.Src, nil)
		}
		if opts.Labels {
			label(out, rect, fmt.Sprintf("seed %d", t.Seed), fg.Color())
		}
	}
	return out
}

// label writes text in the bottom-left corner of rect.
func label(dst draw.Image, rect image.Rectangle, text string, c color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(rect.Min.X+3, rect.Max.Y-face.Metrics().Descent.Ceil()-2),
	}
	d.DrawString(text)
}
