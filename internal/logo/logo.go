// Package logo runs the full pipeline: configuration, generator, IFS, chaos
// game and image.
package logo

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/randomlogo/internal/cache"
	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/ifs"
	"github.com/san-kum/randomlogo/internal/materialize"
	"github.com/san-kum/randomlogo/internal/render"
	"github.com/san-kum/randomlogo/internal/rng"
)

// cacheVersion changes whenever the accumulator for a given config would.
const cacheVersion = 1

type Options struct {
	// Cache holds encoded accumulators. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration

	Logger   *log.Logger
	Progress func(done, total int)
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
}

type Stats struct {
	Duration time.Duration
	Chunks   int
	Recorded uint64
	Visited  int
	Cached   bool
}

type Result struct {
	Config      *config.Config
	IFS         *ifs.SigmaFactorIFS
	Accumulator *render.Accumulator
	Stats       Stats
}

// Generate validates cfg, seeds its generator and draws the IFS. The
// returned generator continues the same stream and is what the renderer
// consumes next.
func Generate(cfg *config.Config) (*ifs.SigmaFactorIFS, *rng.Rand, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	kind, err := cfg.IFSKind()
	if err != nil {
		return nil, nil, err
	}
	opts, err := cfg.GeneratorOptions()
	if err != nil {
		return nil, nil, err
	}
	src, err := cfg.NewRand()
	if err != nil {
		return nil, nil, err
	}
	sys, err := kind.Generate(src, opts)
	if err != nil {
		return nil, nil, err
	}
	return sys, src, nil
}

// RenderFromConfig renders the logo described by cfg. Accumulators are looked
// up in and stored to opts.Cache; cache failures are logged and ignored.
func RenderFromConfig(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	opts.setDefaults()
	if _, err := materialize.ParsePolicy(cfg.Policy); err != nil {
		return nil, err
	}
	sys, src, err := Generate(cfg)
	if err != nil {
		return nil, err
	}

	r := render.FromConfig(cfg)
	r.Logger = opts.Logger
	r.Progress = opts.Progress

	res := &Result{Config: cfg, IFS: sys, Stats: Stats{Chunks: r.Chunks(cfg.NPoints)}}
	start := time.Now()
	key := CacheKey(cfg)

	if acc := lookup(ctx, opts, key, cfg); acc != nil {
		opts.Logger.Debug("accumulator cache hit", "key", key)
		res.Accumulator = acc
		res.Stats.Cached = true
	} else {
		acc, err := r.Render(ctx, src, sys, cfg)
		if err != nil {
			return nil, err
		}
		res.Accumulator = acc
		store(ctx, opts, key, acc)
	}

	res.Stats.Duration = time.Since(start)
	res.Stats.Recorded = res.Accumulator.TotalCount()
	res.Stats.Visited = res.Accumulator.Visited()
	return res, nil
}

func lookup(ctx context.Context, opts Options, key string, cfg *config.Config) *render.Accumulator {
	data, ok, err := opts.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	var acc render.Accumulator
	if err := acc.UnmarshalBinary(data); err != nil || acc.Width() != cfg.Width || acc.Height() != cfg.Height {
		opts.Logger.Warn("discarding malformed cache entry", "key", key)
		_ = opts.Cache.Delete(ctx, key)
		return nil
	}
	return &acc
}

func store(ctx context.Context, opts Options, key string, acc *render.Accumulator) {
	data, err := acc.MarshalBinary()
	if err == nil {
		err = opts.Cache.Set(ctx, key, data, opts.CacheTTL)
	}
	if err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
	}
}

// CacheKey identifies the accumulator cfg renders to. Fields that only
// affect scheduling or coloring of the final image are left out.
func CacheKey(cfg *config.Config) string {
	return cache.Key("accumulator", cacheVersion,
		cfg.Width, cfg.Height, cfg.NPoints, cfg.IFSName, cfg.NDims, cfg.RNGName, cfg.Seed,
		cfg.BurnIn, cfg.EffectiveChunkSize(), cfg.Margin, cfg.Maps, cfg.Palette)
}

// Image materializes the result with the policy and colors of its config.
func (r *Result) Image() (*image.RGBA, error) {
	opts, err := materialize.OptionsFromConfig(r.Config)
	if err != nil {
		return nil, err
	}
	return materialize.Materialize(r.Accumulator, opts), nil
}
