package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/randomlogo/internal/cache"
	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr     string
		cacheLoc string
		opts     server.Options
	)
	cmd := &cobra.Command{
		Use:   "serve [config]",
		Short: "serve logos over HTTP",
		Long:  "Serve /api/render.png, /api/ifs, /api/presets and /api/health. Query parameters override the base config, which is the default config when none is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			base := config.DefaultConfig()
			if len(args) == 1 {
				var err error
				if base, err = config.Load(args[0]); err != nil {
					return err
				}
			}
			if cacheLoc == "" {
				cacheLoc = base.Cache
			}
			c, err := cache.Open(resolveCacheLocation(cacheLoc))
			if err != nil {
				return err
			}
			defer c.Close()
			if rc, ok := c.(*cache.RedisCache); ok {
				if err := rc.Ping(ctx); err != nil {
					logger.Warn("redis unreachable, renders will not be cached", "err", err)
				}
			}

			opts.Cache = c
			opts.Logger = logger
			return server.New(base, opts).ListenAndServe(ctx, addr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":8080", "listen address")
	f.StringVar(&cacheLoc, "cache", "", "cache location: a directory or redis:// URL (default: the config's cache)")
	f.IntVar(&opts.MaxSide, "max-side", server.DefaultMaxSide, "largest width or height a request may ask for")
	f.IntVar(&opts.MaxPoints, "max-points", server.DefaultMaxPoints, "most points a request may ask for")
	f.DurationVar(&opts.Timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	return cmd
}
