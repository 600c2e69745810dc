// Package cli provides the pedal command line: the HTTP server and
// offline access to the loader, the resolver and the renderers.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pedal/internal/config"
	"pedal/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// app carries what PersistentPreRunE prepares for the subcommands.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "pedal",
		Short: "pedal - exploratory charts for tabular data",
		Long: `pedal serves an HTTP API that turns a dataset and a chart type's role
selections into a chart configuration, and renders it as a JSON figure or SVG.

Without an upload every session works on a seeded sample dataset.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "version" {
				return nil
			}
			cfg, err := config.Load(a.cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./pedal.yaml)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(a),
		newDescribeCmd(a),
		newTypesCmd(),
		newResolveCmd(a),
		newRenderCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pedal v%s (%s)\n", Version, GitCommit)
		},
	}
}
