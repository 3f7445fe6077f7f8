package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/jkruckivey/assessments/internal/config"
	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/internal/knowledge"
	"github.com/jkruckivey/assessments/internal/providers/llm"
	"github.com/jkruckivey/assessments/internal/service/assistant"
	"github.com/jkruckivey/assessments/internal/service/command"
	"github.com/jkruckivey/assessments/internal/storage/memory"
	"github.com/jkruckivey/assessments/internal/storage/sqlite"
	"github.com/jkruckivey/assessments/internal/transport/telegram"
	"github.com/jkruckivey/assessments/internal/transport/web"
	"github.com/jkruckivey/assessments/pkg/log"
	"github.com/jkruckivey/assessments/pkg/srv"
)

// components holds everything the transports share.
type components struct {
	appCfg *config.AppConfig
	docs   *knowledge.Store
	// pipeline is nil when the model provider could not be configured.
	pipeline *assistant.Pipeline
}

// loadEnv reads .env from the working directory, then the runtime directory, then
// ASSESSBOT_ENV_FILE. Variables already present in the environment are never overridden.
func loadEnv(ctx context.Context) {
	logger := log.FromCtx(ctx)

	files := []string{".env"}
	runtimePath := os.Getenv("ASSESSBOT_RUNTIME_PATH")
	if runtimePath == "" {
		runtimePath = ".assessbot"
	}
	files = append(files, filepath.Join(runtimePath, ".env"))
	if extra := os.Getenv("ASSESSBOT_ENV_FILE"); extra != "" {
		files = append(files, extra)
	}

	for _, envFile := range files {
		if _, err := os.Stat(envFile); err != nil {
			if !os.IsNotExist(err) {
				logger.Warn().Err(err).Str("path", envFile).Msg("failed to stat .env file")
			}
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
			continue
		}
		logger.Debug().Str("path", envFile).Msg("loaded .env file")
	}
}

// newComponents loads configuration, the knowledge base and the model provider.
// A provider that cannot be built leaves the pipeline nil: the knowledge base
// still works and transports report "not initialized".
func newComponents(ctx context.Context) *components {
	logger := log.FromCtx(ctx)
	loadEnv(ctx)

	appCfg := config.NewAppConfig(ctx)
	provCfg := config.NewProviderConfig(ctx)

	docs := knowledge.Load(ctx, appCfg.GetKnowledgePath())
	logger.Info().Int("documents", docs.Len()).Str("path", appCfg.GetKnowledgePath()).Msg("knowledge base loaded")

	c := &components{appCfg: appCfg, docs: docs}

	ai, err := llm.NewProvider(ctx, provCfg)
	if err != nil {
		logger.Error().Err(err).Str("provider", provCfg.Provider).Msg("model provider not configured, assistant disabled")
		return c
	}
	logger.Info().Str("provider", provCfg.Provider).Str("model", provCfg.Model).Msg("model provider ready")

	c.pipeline = assistant.NewPipeline(docs, ai, appCfg.MaxOutputTokens)
	return c
}

// initSessions returns the configured session store and the services that must
// be shut down with it.
func initSessions(ctx context.Context, cfg *config.AppConfig) (core.SessionStore, []srv.Service) {
	logger := log.FromCtx(ctx)

	if !cfg.UsesSQLiteSessions() {
		logger.Debug().Dur("ttl", cfg.SessionTTL).Msg("using in-memory sessions")
		return memory.NewSessionStore(cfg.SessionTTL), nil
	}

	if err := os.MkdirAll(cfg.RuntimePath, 0o755); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.RuntimePath).Msg("failed to create runtime directory")
	}
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	logger.Debug().Str("path", cfg.GetDatabasePath()).Msg("using sqlite sessions")

	return sqlite.NewHistory(db), []srv.Service{srv.NewCleanup(db.Close)}
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Knowledge base and model
	c := newComponents(ctx)

	// 2. Sessions
	sessions, cleanup := initSessions(ctx, c.appCfg)
	services = append(services, cleanup...)

	// 3. HTTP
	serverCfg := config.NewServerConfig(ctx)
	handler := web.NewHandler(c.pipeline, c.docs, sessions)
	services = append(services, web.NewServer(ctx, serverCfg, handler))

	// 4. Telegram
	if c.appCfg.IsTelegramSelected() {
		if c.pipeline == nil {
			logger.Warn().Msg("telegram enabled but the assistant is not initialized, skipping")
			return services
		}
		tgCfg := config.NewTelegramConfig(ctx)
		commands := command.New(command.NewCommands(c.docs, sessions))
		bot, err := telegram.NewBot(log.WithComponent(ctx, "telegram"), tgCfg, c.pipeline, sessions, commands)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	return services
}
