package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/randomlogo/internal/analysis"
	"github.com/san-kum/randomlogo/internal/fault"
	"github.com/san-kum/randomlogo/internal/logo"
	"github.com/san-kum/randomlogo/internal/viz"
)

func newIFSCmd() *cobra.Command {
	var (
		o      overrides
		format string
	)
	cmd := &cobra.Command{
		Use:   "ifs <config>",
		Short: "print the generated IFS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			sys, _, err := logo.Generate(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "yaml", "yml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(sys); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				data, err := json.MarshalIndent(sys.Export(), "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			default:
				return fault.Configf("randomlogo", "unknown format %q (yaml or json)", format)
			}
		},
	}
	o.register(cmd)
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or json")
	return cmd
}

func newPreviewCmd() *cobra.Command {
	var (
		o       overrides
		popt    = viz.DefaultPreviewOptions()
		theme   string
		svgPath string
	)
	cmd := &cobra.Command{
		Use:   "preview <config>",
		Short: "draw the logo in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if popt.Cols < 1 || popt.Rows < 1 {
				return fault.Configf("randomlogo", "preview needs at least 1x1 characters, got %dx%d", popt.Cols, popt.Rows)
			}
			cfg, err := o.loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := o.render(cmd.Context(), cfg, "rendering")
			if err != nil {
				return err
			}

			popt.Theme = viz.GetTheme(theme)
			fmt.Fprintln(cmd.OutOrStdout(), viz.Preview(res, popt))

			if svgPath != "" {
				canvas := viz.FromAccumulator(res.Accumulator, popt.Cols, popt.Rows)
				if err := os.WriteFile(svgPath, []byte(viz.CanvasToSVG(canvas, 4, cfg.Background)), 0644); err != nil {
					return err
				}
				loggerFromContext(cmd.Context()).Info("wrote preview", "path", svgPath)
			}
			return nil
		},
	}
	o.register(cmd)
	f := cmd.Flags()
	f.IntVar(&popt.Cols, "cols", popt.Cols, "preview width in characters")
	f.IntVar(&popt.Rows, "rows", popt.Rows, "preview height in characters")
	f.StringVar(&theme, "theme", "julia", fmt.Sprintf("color theme %v", viz.ThemeNames()))
	f.StringVar(&svgPath, "svg", "", "also write the preview as SVG")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		o     overrides
		width int
	)
	cmd := &cobra.Command{
		Use:   "stats <config>",
		Short: "print accumulator statistics and density profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.loadConfig(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := o.render(cmd.Context(), cfg, "rendering")
			if err != nil {
				return err
			}
			acc := res.Accumulator
			out := cmd.OutOrStdout()

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "maps\t%d\n", res.IFS.Len())
			fmt.Fprintf(w, "recorded\t%d\n", acc.TotalCount())
			fmt.Fprintf(w, "visited\t%d / %d\n", acc.Visited(), acc.Width()*acc.Height())
			fmt.Fprintf(w, "coverage\t%.2f%%\n", 100*analysis.Coverage(acc))
			fmt.Fprintf(w, "max count\t%d\n", acc.MaxCount())
			if d, ok := analysis.BoxDimension(acc); ok {
				fmt.Fprintf(w, "box dimension\t%.4f\n", d)
			} else {
				fmt.Fprintf(w, "box dimension\tn/a\n")
			}
			fmt.Fprintf(w, "similarity dimension\t%.4f\n", analysis.MoranDimension(res.IFS.Contractions()))
			fmt.Fprintf(w, "render\t%s (cached: %v)\n", res.Stats.Duration, res.Stats.Cached)
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(out)
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "box\tboxes\t")
			for _, bc := range analysis.BoxCounts(acc) {
				fmt.Fprintf(w, "%d\t%d\t\n", bc.Size, bc.Boxes)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, viz.Profile(acc.RowProfile(), width, 10, "points per row"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, viz.Profile(acc.ColumnProfile(), width, 10, "points per column"))
			return nil
		},
	}
	o.register(cmd)
	cmd.Flags().IntVar(&width, "plot-width", 72, "profile plot width")
	return cmd
}
