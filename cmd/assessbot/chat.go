package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jkruckivey/assessments/internal/transport/tui"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		runtimePath := os.Getenv("ASSESSBOT_RUNTIME_PATH")
		if runtimePath == "" {
			runtimePath = ".assessbot"
		}
		if err := os.MkdirAll(runtimePath, 0o755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}

		// The chat owns the terminal, so logs go to a file.
		logPath := filepath.Join(runtimePath, "chat.log")
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()

		ctx, flushLog := setupLogger(cmd.Context(), logFile)
		defer flushLog()

		c := newComponents(ctx)
		if c.pipeline == nil {
			return errNotInitialized
		}

		summary := fmt.Sprintf("%d documents loaded from %q", c.docs.Len(), c.appCfg.GetKnowledgePath())
		return tui.Run(ctx, c.pipeline, summary)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
