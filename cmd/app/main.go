package main

import (
	"context"
	"fmt"
	"os"

	"FundPulse/internal/di"
	"FundPulse/pkg/config"
	"FundPulse/pkg/server"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "fundpulse",
		Short:         "Perpetual futures funding and momentum aggregator with a cached news proxy",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file path")

	build := func() (*server.App, func(), error) {
		cfg, err := config.LoadWithEnv(configPath)
		if err != nil {
			return nil, nil, fmt.Errorf("config load failed: %w", err)
		}
		app, cleanup, err := di.InitializeApp(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("app initialization failed: %w", err)
		}
		return app, cleanup, nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the aggregation scheduler and the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := build()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.Run(cmd.Context())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "once",
		Short: "Run a single aggregation cycle and print the summary as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cleanup, err := build()
			if err != nil {
				return err
			}
			defer cleanup()
			return app.RunOnce(cmd.Context(), cmd.OutOrStdout())
		},
	})

	return root
}
