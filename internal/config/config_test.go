package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig(context.Background())

	assert.Equal(t, "Instructional Design Principles", cfg.GetKnowledgePath())
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 1500, cfg.MaxOutputTokens)
	assert.False(t, cfg.UsesSQLiteSessions())
}

func TestNewAppConfig_SQLiteSessions(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "sqlite")
	t.Setenv("ASSESSBOT_RUNTIME_PATH", "/tmp/assessbot")

	cfg := NewAppConfig(context.Background())

	assert.True(t, cfg.UsesSQLiteSessions())
	assert.Equal(t, "/tmp/assessbot/assessbot.db", cfg.GetDatabasePath())
}

func TestProviderConfig_HasCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProviderConfig
		want bool
	}{
		{"anthropic with CLAUDE_API_KEY", ProviderConfig{Provider: ProviderAnthropic, AnthropicAPIKey: "k"}, true},
		{"anthropic with ANTHROPIC_API_KEY", ProviderConfig{Provider: ProviderAnthropic, AnthropicAltKey: "k"}, true},
		{"anthropic without key", ProviderConfig{Provider: ProviderAnthropic}, false},
		{"openai", ProviderConfig{Provider: ProviderOpenAI, OpenAIAPIKey: "k"}, true},
		{"openrouter without key", ProviderConfig{Provider: ProviderOpenRouter}, false},
		{"ollama needs only url", ProviderConfig{Provider: ProviderOllama, OllamaBaseURL: "http://localhost:11434"}, true},
		{"custom without url", ProviderConfig{Provider: ProviderCustom, CustomOpenAIAPIKey: "k"}, false},
		{"unknown provider", ProviderConfig{Provider: "gemini", OpenAIAPIKey: "k"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.HasCredentials())
		})
	}
}

func TestProviderConfig_PrefersClaudeKeyName(t *testing.T) {
	cfg := ProviderConfig{AnthropicAPIKey: "claude", AnthropicAltKey: "anthropic"}
	assert.Equal(t, "claude", cfg.GetAnthropicAPIKey())
}

func TestServerConfig_Addr(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")

	cfg := NewServerConfig(context.Background())

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
}

func TestParseTelegramConfig(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	_, err := ParseTelegramConfig()
	assert.Error(t, err)

	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_OWNER_ID", "42")
	cfg, err := ParseTelegramConfig()
	if assert.NoError(t, err) {
		assert.Equal(t, "123:abc", cfg.Token)
		assert.Equal(t, int64(42), cfg.OwnerID)
	}
}

func TestNewProviderConfig_Timeout(t *testing.T) {
	cfg := NewProviderConfig(context.Background())
	assert.Equal(t, 120*time.Second, cfg.Timeout)

	t.Setenv("LLM_TIMEOUT", "45s")
	cfg = NewProviderConfig(context.Background())
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}
