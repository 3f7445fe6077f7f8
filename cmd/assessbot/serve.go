package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jkruckivey/assessments/pkg/log"
	"github.com/jkruckivey/assessments/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web chat (and Telegram when enabled)",
	Long:  `Loads the knowledge base, starts the HTTP server and, with ENABLE_TELEGRAM=true, the Telegram bot.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx, os.Stdout)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting assessbot")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services, srv.DefaultShutdownTimeout)
		logger.Info().Msg("assessbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
