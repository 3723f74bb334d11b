package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcrobe/landing/config"
	"github.com/vcrobe/landing/console"
)

// app is the state shared by every subcommand once the root has loaded
// configuration.
type app struct {
	configPath string
	cfg        config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "landing",
		Short: "Landing serves the Verdant landing page",
		Long: `Landing renders the Home page from its section components on the server
and serves it over HTTP. Earlier revisions of the page stay reachable
under /revisions/{rev}.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := console.NewLogger(cfg.LogLevel, cfg.Dev)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			console.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "landing.yaml", "Path to the YAML configuration file")

	root.AddCommand(
		newServeCmd(a),
		newRenderCmd(a),
		newSectionsCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
