package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var errNotInitialized = errors.New("assistant not initialized: check LLM_PROVIDER and its API key")

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer one question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
		defer flushLog()

		c := newComponents(ctx)
		if c.pipeline == nil {
			return errNotInitialized
		}

		question := strings.Join(args, " ")
		_, err := fmt.Fprintln(cmd.OutOrStdout(), c.pipeline.Respond(ctx, question, nil))
		return err
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
