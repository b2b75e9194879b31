package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/stridelabs/coachd/pkg/log"
	"github.com/stridelabs/coachd/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the coachd background services",
	Long:  `Initializes storage and model providers and runs the background workers (audit writer, embedding backfill) until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting coachd")

		app := NewApp(ctx)

		srv.StartServices(ctx, app.Services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, app.Services)
		logger.Info().Msg("coachd has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
