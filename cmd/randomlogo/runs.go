package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/san-kum/randomlogo/internal/cache"
	"github.com/san-kum/randomlogo/internal/config"
	"github.com/san-kum/randomlogo/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "manage saved runs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := store.New(flags.dataDir).List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no runs")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTIME\tSEED\tSIZE\tPOINTS\tMAPS\tPOLICY")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%d\t%dx%d\t%d\t%d\t%s\n",
					r.ID, r.Timestamp.Local().Format(time.DateTime), r.Seed, r.Width, r.Height, r.Recorded, len(r.IFS.Maps), r.Policy)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "print a run's metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(flags.dataDir)
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(meta, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			fmt.Fprintln(cmd.OutOrStdout(), "image:", st.ImagePath(meta.ID))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "config <id>",
		Short: "write a run's config to stdout as TOML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.New(flags.dataDir).LoadConfig(args[0])
			if err != nil {
				return err
			}
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(flags.dataDir)
			if _, err := st.Load(args[0]); err != nil {
				return err
			}
			if err := st.Delete(args[0]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("deleted run", "id", args[0])
			return nil
		},
	})
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list config presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tPOINTS\tPOLICY\tPALETTE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%s\t%s\n", name, p.Width, p.Height, p.NPoints, p.Policy, p.Palette)
			}
			return w.Flush()
		},
	}
}

func newInitCmd() *cobra.Command {
	var (
		preset string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "write a default config file (.toml or .yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			cfg := config.DefaultConfig()
			if preset != "" && !cfg.ApplyPreset(preset) {
				return fmt.Errorf("unknown preset %q", preset)
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("wrote config", "path", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "manage a local accumulator cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: `print the user cache directory used by --cache user`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), defaultCacheDir())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear [location]",
		Short: "remove every cached accumulator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openFileCache(args)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("cleared cache", "dir", fc.Dir())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "prune [location]",
		Short: "remove expired and unreadable entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := openFileCache(args)
			if err != nil {
				return err
			}
			n, err := fc.Prune()
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("pruned cache", "dir", fc.Dir(), "removed", n)
			return nil
		},
	})
	return cmd
}

// openFileCache opens the directory cache in args, or the user cache
// directory.
func openFileCache(args []string) (*cache.FileCache, error) {
	loc := defaultCacheDir()
	if len(args) == 1 {
		loc = resolveCacheLocation(args[0])
	}
	if loc == "" {
		return nil, errors.New("no cache directory")
	}
	c, err := cache.Open(loc)
	if err != nil {
		return nil, err
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		c.Close()
		return nil, errors.New("only file caches can be managed here; Redis entries expire on their own")
	}
	return fc, nil
}
