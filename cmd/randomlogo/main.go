package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		newLogger(os.Stderr, charmlog.InfoLevel).Error(err)
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	verbose bool
	dataDir string
}

var flags rootFlags

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "randomlogo",
		Short:         "random IFS fractal logos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if flags.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flags.dataDir, "data", ".randomlogo", "directory for saved runs")

	root.AddCommand(
		newRenderCmd(),
		newGridCmd(),
		newIFSCmd(),
		newPreviewCmd(),
		newStatsCmd(),
		newServeCmd(),
		newRunsCmd(),
		newPresetsCmd(),
		newInitCmd(),
		newCacheCmd(),
	)
	return root
}
