package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jkruckivey/assessments/internal/config"
	"github.com/jkruckivey/assessments/internal/service/installer"
	"github.com/jkruckivey/assessments/pkg/env"
	"github.com/jkruckivey/assessments/pkg/log"
	"github.com/spf13/cobra"
)

var (
	initWizard bool
	initForce  bool
	initOutput string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .env file with the current configuration",
	Long: `Writes every setting as KEY=value, using the current environment where set and defaults
otherwise. With --wizard the main settings are asked for interactively first.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
		defer flushLog()
		logger := log.FromCtx(ctx)

		if _, err := os.Stat(initOutput); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", initOutput)
		}

		loadEnv(ctx)

		if initWizard {
			state, err := installer.RunWizard()
			if err != nil {
				return err
			}
			for key, value := range state.EnvVars {
				if err := os.Setenv(key, value); err != nil {
					return fmt.Errorf("failed to set %s: %w", key, err)
				}
			}
		}

		tgCfg, err := config.ParseTelegramConfig()
		if err != nil {
			// no token yet: written commented out
			tgCfg = &config.TelegramConfig{}
		}

		content, err := env.MarshalEnv(
			config.NewAppConfig(ctx),
			config.NewProviderConfig(ctx),
			config.NewServerConfig(ctx),
			tgCfg,
		)
		if err != nil {
			return fmt.Errorf("failed to render .env: %w", err)
		}

		if dir := filepath.Dir(initOutput); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(initOutput, []byte(content), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", initOutput, err)
		}

		logger.Info().Str("path", initOutput).Msg("configuration written")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initWizard, "wizard", "w", false, "ask for the main settings interactively")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", ".env", "file to write")
	rootCmd.AddCommand(initCmd)
}
