// SPDX-License-Identifier: MIT

// Command numlab runs the numerical engines from the shell or serves them
// over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const version = "v0.3.0"

var (
	logLevel string
	pretty   bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("numlab failed")
		stop()
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "numlab",
		Short:   "Numerical methods with step-by-step derivations",
		Version: version,
		Long: `numlab solves linear systems (Gauss, Gauss-Jordan, LU, Jacobi, Gauss-Seidel),
fits regression models, integrates sampled data and fits growth trends.

Every command prints the full derivation. 'numlab serve' exposes the same
engines as a JSON API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(logLevel, pretty)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&pretty, "pretty", true, "human-readable console logs")

	root.AddCommand(
		serveCmd(),
		solveCmd(),
		iterateCmd(),
		fitCmd(),
		integrateCmd(),
		growthCmd(),
		blendCmd(),
		bridgeCmd(),
	)

	return root
}

// setupLogging configures the global zerolog logger.
func setupLogging(level string, console bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	return nil
}
