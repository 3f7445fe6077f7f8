package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jkruckivey/assessments/internal/transport/mcp"
	"github.com/jkruckivey/assessments/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the knowledge base over MCP (stdio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// stdout carries the protocol
		ctx, flushLog := setupLogger(ctx, os.Stderr)
		defer flushLog()
		ctx = log.WithComponent(ctx, "mcp")

		c := newComponents(ctx)
		return mcp.NewServer(c.docs, c.pipeline).ServeStdio(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
