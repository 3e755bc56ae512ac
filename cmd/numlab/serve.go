// SPDX-License-Identifier: MIT

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/numlab/internal/config"
	"github.com/katalvlaran/numlab/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		cfgPath string
		port    int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engines as a JSON HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
				if err = setupLogging(cfg.Log.Level, cfg.Log.Pretty); err != nil {
					return err
				}
			}

			log.Info().
				Str("addr", cfg.Server.Addr()).
				Float64("rate_limit", cfg.Server.RateLimit).
				Dur("request_timeout", cfg.Server.RequestTimeout).
				Msg("numlab server configured")

			return server.New(cfg, log.Logger).ListenAndServe(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a YAML config file")
	cmd.Flags().IntVar(&port, "port", 5000, "listen port (overrides config and environment)")

	return cmd
}
