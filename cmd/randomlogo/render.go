package main

import (
	"context"
	"fmt"
	"image"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/randomlogo/internal/grid"
	"github.com/san-kum/randomlogo/internal/logo"
	"github.com/san-kum/randomlogo/internal/materialize"
	"github.com/san-kum/randomlogo/internal/store"
)

const defaultOutput = "fractal.png"

func newRenderCmd() *cobra.Command {
	var (
		o    overrides
		save bool
	)
	cmd := &cobra.Command{
		Use:   "render <config> [output]",
		Short: "render a logo to PNG",
		Long:  "Render the logo described by a TOML or YAML config. Without an output path the image is written to fractal.png next to the config.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := o.loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			out := filepath.Join(filepath.Dir(args[0]), defaultOutput)
			if len(args) == 2 {
				out = args[1]
			}

			prog := newProgress(logger)
			res, err := o.render(ctx, cfg, "rendering")
			if err != nil {
				return err
			}
			img, err := res.Image()
			if err != nil {
				return err
			}
			if err := materialize.WritePNG(out, img); err != nil {
				return err
			}
			prog.done("rendered "+out,
				"seed", cfg.Seed,
				"maps", res.IFS.Len(),
				"points", res.Stats.Recorded,
				"cached", res.Stats.Cached,
			)

			if save {
				id, err := saveRun(res, img)
				if err != nil {
					return fmt.Errorf("save run: %w", err)
				}
				logger.Info("saved run", "id", id)
			}
			return nil
		},
	}
	o.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "also store the run in the data directory")
	return cmd
}

func saveRun(res *logo.Result, img image.Image) (string, error) {
	st := store.New(flags.dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	cfg := res.Config
	return st.Save(store.RunMetadata{
		Seed:     cfg.Seed,
		Width:    cfg.Width,
		Height:   cfg.Height,
		NPoints:  cfg.NPoints,
		RNG:      cfg.RNGName,
		Policy:   cfg.Policy,
		Recorded: res.Stats.Recorded,
		Visited:  res.Stats.Visited,
		Duration: res.Stats.Duration.Seconds(),
		IFS:      res.IFS.Export(),
	}, cfg, img)
}

func newGridCmd() *cobra.Command {
	var (
		o    overrides
		gopt = grid.DefaultOptions()
	)
	cmd := &cobra.Command{
		Use:   "grid <config> <output>",
		Short: "render a montage of consecutive seeds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := o.loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			c, err := o.openCache(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			gopt.Workers = cfg.Workers
			gopt.Cache = c
			gopt.Logger = logger

			prog := newProgress(logger)
			var img *image.RGBA
			err = withProgress(ctx, fmt.Sprintf("grid %dx%d", gopt.Rows, gopt.Cols), func(ctx context.Context, report func(done, total int)) error {
				opts := gopt
				opts.Progress = report
				var err error
				img, _, err = grid.Render(ctx, cfg, opts)
				return err
			})
			if err != nil {
				return err
			}
			if err := materialize.WritePNG(args[1], img); err != nil {
				return err
			}
			prog.done("rendered "+args[1], "tiles", gopt.Rows*gopt.Cols, "first seed", gopt.SeedStart)
			return nil
		},
	}
	o.register(cmd)
	f := cmd.Flags()
	f.IntVar(&gopt.Rows, "rows", gopt.Rows, "grid rows")
	f.IntVar(&gopt.Cols, "cols", gopt.Cols, "grid columns")
	f.Uint64Var(&gopt.SeedStart, "seed-start", gopt.SeedStart, "seed of the top-left tile")
	f.IntVar(&gopt.TileSize, "tile-size", 0, "scale tiles to this many pixels (0 = canvas size)")
	f.IntVar(&gopt.Gap, "gap", gopt.Gap, "pixels between tiles")
	f.BoolVar(&gopt.Labels, "labels", false, "label every tile with its seed")
	return cmd
}
