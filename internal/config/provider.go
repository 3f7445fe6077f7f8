package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jkruckivey/assessments/pkg/log"
)

const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
	ProviderCustom     = "custom"
)

type ProviderConfig struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"anthropic"`
	Model    string `env:"LLM_MODEL" envDefault:"claude-sonnet-4-5-20250929"`

	// Timeout bounds one completion request.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"120s"`

	// CLAUDE_API_KEY wins when both keys are set.
	AnthropicAPIKey string `env:"CLAUDE_API_KEY"`
	AnthropicAltKey string `env:"ANTHROPIC_API_KEY"`

	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey    string `env:"OPENROUTER_API_KEY"`
	OllamaBaseURL       string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey        string `env:"OLLAMA_API_KEY"`
	CustomOpenAIBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomOpenAIAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

func (c ProviderConfig) GetAnthropicAPIKey() string {
	if c.AnthropicAPIKey != "" {
		return c.AnthropicAPIKey
	}
	return c.AnthropicAltKey
}

// HasCredentials reports whether the selected provider has what it needs to be called.
// Ollama runs locally and needs no key.
func (c ProviderConfig) HasCredentials() bool {
	switch c.Provider {
	case ProviderAnthropic:
		return c.GetAnthropicAPIKey() != ""
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey != ""
	case ProviderOllama:
		return c.OllamaBaseURL != ""
	case ProviderCustom:
		return c.CustomOpenAIBaseURL != ""
	default:
		return false
	}
}
