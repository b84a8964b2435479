package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/config"
	"github.com/ukaji3/sheetread-go/pkg/sheetread/server"
)

func newServeCmd() *cobra.Command {
	var configPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the spreadsheet upload API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := cfg.NewLogger(os.Stderr)
			if err != nil {
				return err
			}

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Serve(ctx)
		},
	}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	config.RegisterFlags(serveCmd.Flags())
	return serveCmd
}
