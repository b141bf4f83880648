package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/san-kum/randomlogo/internal/cache"
	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/logo"
	"github.com/san-kum/randomlogo/internal/viz"
)

const cacheTTL = 7 * 24 * time.Hour

// overrides are the config flags shared by the commands that render.
type overrides struct {
	seed    uint64
	points  int
	workers int
	policy  string
	palette string
	preset   string
	cacheLoc string
	noCache  bool
}

func (o *overrides) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Uint64Var(&o.seed, "seed", 0, "override the seed")
	f.IntVar(&o.points, "points", 0, "override the number of points")
	f.IntVar(&o.workers, "workers", 0, "render workers (0 = all CPUs)")
	f.StringVar(&o.policy, "policy", "", "coloring policy: average, density or mask")
	f.StringVar(&o.palette, "palette", "", "map colors: julia or hue")
	f.StringVar(&o.preset, "preset", "", "apply a named preset before other overrides")
	f.StringVar(&o.cacheLoc, "cache", "", `accumulator cache: a directory, a redis:// URL or "user" for the user cache directory (default: the config's cache, else none)`)
	f.BoolVar(&o.noCache, "no-cache", false, "skip the accumulator cache")
}

// loadConfig reads path and applies the preset and the flags that were set.
func (o *overrides) loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if o.preset != "" && !cfg.ApplyPreset(o.preset) {
		return nil, fault.Configf("randomlogo", "unknown preset %q (have %v)", o.preset, config.ListPresets())
	}

	f := cmd.Flags()
	if f.Changed("seed") {
		cfg.Seed = o.seed
	}
	if f.Changed("points") {
		cfg.NPoints = o.points
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
	if o.policy != "" {
		cfg.Policy = o.policy
	}
	if o.palette != "" {
		cfg.Palette = o.palette
	}
	return cfg, cfg.Validate()
}

// openCache returns the cache named by --cache, else by cfg. Without either
// renders are not cached.
func (o *overrides) openCache(cfg *config.Config) (cache.Cache, error) {
	if o.noCache {
		return cache.NewNullCache(), nil
	}
	loc := o.cacheLoc
	if loc == "" {
		loc = cfg.Cache
	}
	return cache.Open(resolveCacheLocation(loc))
}

// resolveCacheLocation maps "user" to the user cache directory.
func resolveCacheLocation(loc string) string {
	if loc == "user" {
		return defaultCacheDir()
	}
	return loc
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "randomlogo")
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// withProgress runs work behind a progress bar when stderr is a terminal.
func withProgress(ctx context.Context, title string, work func(ctx context.Context, report func(done, total int)) error) error {
	if !stderrIsTerminal() {
		return work(ctx, func(int, int) {})
	}
	return viz.RunProgress(ctx, os.Stderr, title, work)
}

// render renders cfg with the command's cache and logger.
func (o *overrides) render(ctx context.Context, cfg *config.Config, title string) (*logo.Result, error) {
	c, err := o.openCache(cfg)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	logger := loggerFromContext(ctx)
	var res *logo.Result
	err = withProgress(ctx, title, func(ctx context.Context, report func(done, total int)) error {
		var err error
		res, err = logo.RenderFromConfig(ctx, cfg, logo.Options{
			Cache:    c,
			CacheTTL: cacheTTL,
			Logger:   logger,
			Progress: report,
		})
		return err
	})
	return res, err
}
