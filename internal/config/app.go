package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jkruckivey/assessments/pkg/log"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
)

type AppConfig struct {
	RuntimePath   string `env:"ASSESSBOT_RUNTIME_PATH" envDefault:".assessbot"`
	KnowledgePath string `env:"KNOWLEDGE_PATH" envDefault:"Instructional Design Principles"`

	// Session history
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"memory"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	MaxOutputTokens int `env:"MAX_OUTPUT_TOKENS" envDefault:"1500"`

	// Transport Flags
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetKnowledgePath() string {
	return c.KnowledgePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "assessbot.db")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) UsesSQLiteSessions() bool {
	return c.SessionBackend == SessionBackendSQLite
}
