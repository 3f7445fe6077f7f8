package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jkruckivey/assessments/internal/service/smoke"
	"github.com/jkruckivey/assessments/internal/service/ui"
	"github.com/jkruckivey/assessments/pkg/log"
	"github.com/spf13/cobra"
)

var checkURL string

var checkCmd = &cobra.Command{
	Use:          "check",
	Short:        "Smoke test a running deployment",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ctx, flushLog := setupLogger(ctx, os.Stderr)
		defer flushLog()
		logger := log.FromCtx(ctx)

		checker := smoke.NewChecker(checkURL)
		checker.OnRetry(func(attempt int, err error) {
			logger.Warn().Err(err).Int("attempt", attempt).Msg("health check failed, retrying")
		})

		out := cmd.OutOrStdout()
		report, err := checker.Run(ctx)
		if err != nil {
			fmt.Fprintln(out, ui.ErrorStyle.Render("FAIL"), err)
			return err
		}

		fmt.Fprintln(out, ui.OKStyle.Render("OK"), checkURL)
		fmt.Fprintf(out, "  bot initialized:     %t\n", report.BotInitialized)
		fmt.Fprintf(out, "  knowledge documents: %d\n", report.KnowledgeBaseSize)
		if report.Documents < 0 {
			fmt.Fprintln(out, ui.DescStyle.Render("  knowledge base listing unavailable: bot not initialized"))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkURL, "url", "u", "http://localhost:5000", "base URL of the deployment")
	rootCmd.AddCommand(checkCmd)
}
