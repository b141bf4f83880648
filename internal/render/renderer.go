package render

import (
	"context"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/ifs"
	"github.com/san-kum/randomlogo/internal/rng"
)

// Renderer runs the chaos game. The zero value renders with the defaults.
type Renderer struct {
	// Workers is the pool size. Zero means runtime.NumCPU.
	Workers int
	// ChunkSize is the number of iterations per substream. Zero means
	// config.DefaultChunkSize. The output depends on it, the worker count
	// does not.
	ChunkSize int
	// BurnIn iterations are discarded at the start of every chunk.
	BurnIn int
	// Margin is the number of pixels kept free around the attractor.
	Margin int

	Logger *log.Logger

	// Progress, when set, is called after every finished chunk of each pass
	// with the number of chunks done out of 2 * chunk count. Calls may come
	// from several goroutines.
	Progress func(done, total int)
}

// FromConfig builds a renderer with the tuning fields of cfg.
func FromConfig(cfg *config.Config) *Renderer {
	return &Renderer{
		Workers:   cfg.Workers,
		ChunkSize: cfg.EffectiveChunkSize(),
		BurnIn:    cfg.BurnIn,
		Margin:    cfg.Margin,
	}
}

type chunk struct {
	seed  uint64
	steps int
}

func (r *Renderer) chunkSize() int {
	if r.ChunkSize <= 0 {
		return config.DefaultChunkSize
	}
	return r.ChunkSize
}

func (r *Renderer) workers() int {
	if r.Workers <= 0 {
		return runtime.NumCPU()
	}
	return r.Workers
}

func (r *Renderer) logger() *log.Logger {
	if r.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return r.Logger
}

// Chunks returns the number of substreams a render of npoints uses.
func (r *Renderer) Chunks(npoints int) int {
	size := r.chunkSize()
	return (npoints + size - 1) / size
}

// Recorded returns the number of points a render of npoints records, which is
// npoints minus the burn-in of every chunk.
func (r *Renderer) Recorded(npoints int) int {
	size := r.chunkSize()
	burn := max(0, r.BurnIn)
	total := 0
	for start := 0; start < npoints; start += size {
		n := min(size, npoints-start)
		total += n - min(burn, n)
	}
	return total
}

func (r *Renderer) plan(base uint64, npoints int) []chunk {
	size := r.chunkSize()
	chunks := make([]chunk, 0, r.Chunks(npoints))
	for start := 0; start < npoints; start += size {
		chunks = append(chunks, chunk{
			seed:  rng.Substream(base, len(chunks)),
			steps: min(size, npoints-start),
		})
	}
	return chunks
}

// Render draws npoints of the chaos game for sys onto a cfg.Width x
// cfg.Height accumulator. It consumes one value from src. Invalid canvas
// sizes and systems with zero total weight fail with a configuration error;
// a canceled ctx returns ctx.Err() and no buffer.
func (r *Renderer) Render(ctx context.Context, src *rng.Rand, sys *ifs.SigmaFactorIFS, cfg *config.Config) (*Accumulator, error) {
	const op = "render"
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fault.Configf(op, "canvas must be at least 1x1, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.NPoints < 0 {
		return nil, fault.Configf(op, "npoints must be non-negative, got %d", cfg.NPoints)
	}
	if r.BurnIn < 0 || r.Margin < 0 {
		return nil, fault.Configf(op, "negative burn-in %d or margin %d", r.BurnIn, r.Margin)
	}
	if err := checkSystem(sys); err != nil {
		return nil, err
	}

	acc := NewAccumulator(cfg.Width, cfg.Height)
	if cfg.NPoints == 0 {
		return acc, nil
	}

	chunks := r.plan(src.Uint64(), cfg.NPoints)
	workers := min(r.workers(), len(chunks))
	logger := r.logger()
	logger.Debug("chaos game", "points", cfg.NPoints, "chunks", len(chunks), "workers", workers, "burn_in", r.BurnIn)
	start := time.Now()

	var done atomic.Int64
	report := func() {
		if r.Progress != nil {
			r.Progress(int(done.Add(1)), 2*len(chunks))
		}
	}

	// Bounds first, then a replay of the same streams to accumulate. The
	// projection needs the global box before any point lands, and replaying
	// keeps it independent of how chunks are spread over workers.
	boxes := make([]Bounds, len(chunks))
	err := runPool(ctx, workers, len(chunks), func(_, i int) {
		o := r.start(src, sys, chunks[i])
		var b Bounds
		for n := chunks[i].steps - min(r.BurnIn, chunks[i].steps); n > 0; n-- {
			p, _ := o.Step()
			b = b.Extend(p)
		}
		boxes[i] = b
		report()
	})
	if err != nil {
		return nil, err
	}

	var bounds Bounds
	for _, b := range boxes {
		bounds = bounds.Union(b)
	}
	if bounds.Empty() {
		return acc, nil
	}
	proj := NewProjection(bounds, cfg.Width, cfg.Height, r.Margin)

	partials := make([]*Accumulator, workers)
	for w := range partials {
		partials[w] = NewAccumulator(cfg.Width, cfg.Height)
	}
	dropped := make([]int, workers)
	err = runPool(ctx, workers, len(chunks), func(w, i int) {
		o := r.start(src, sys, chunks[i])
		part := partials[w]
		for n := chunks[i].steps - min(r.BurnIn, chunks[i].steps); n > 0; n-- {
			p, m := o.Step()
			x, y, ok := proj.Project(p)
			if !ok || !part.inBounds(x, y) {
				dropped[w]++
				continue
			}
			part.Add(x, y, sys.Map(m).Color)
		}
		report()
	})
	if err != nil {
		return nil, err
	}

	lost := 0
	for w, part := range partials {
		if err := acc.Merge(part); err != nil {
			return nil, err
		}
		lost += dropped[w]
	}
	logger.Debug("chaos game done", "elapsed", time.Since(start).Round(time.Millisecond), "bounds", bounds.Size(), "dropped", lost)
	return acc, nil
}

func (r *Renderer) start(src *rng.Rand, sys *ifs.SigmaFactorIFS, c chunk) *Orbit {
	o := NewOrbit(sys, src.Derive(c.seed))
	o.Skip(min(r.BurnIn, c.steps))
	return o
}
