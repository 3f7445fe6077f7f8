package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/jkruckivey/assessments/internal/config"
	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/pkg/log"
)

// ErrMissingCredentials is returned when the selected provider has no API key or endpoint.
var ErrMissingCredentials = errors.New("missing llm credentials")

// NewProvider creates the Completer selected by configuration.
func NewProvider(ctx context.Context, cfg *config.ProviderConfig) (core.Completer, error) {
	switch cfg.Provider {
	case config.ProviderAnthropic, config.ProviderOpenAI, config.ProviderOpenRouter,
		config.ProviderOllama, config.ProviderCustom:
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	if !cfg.HasCredentials() {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingCredentials, cfg.Provider)
	}

	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Dur("timeout", cfg.Timeout).
		Msg("starting llm provider")

	opts := []Option{WithTimeout(cfg.Timeout)}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.Model, opts...), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.GetAnthropicAPIKey(), cfg.Model, opts...), nil
	case config.ProviderOpenRouter:
		return NewOpenRouter(cfg.OpenRouterAPIKey, cfg.Model, opts...), nil
	case config.ProviderOllama:
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.Model, opts...), nil
	case config.ProviderCustom:
		return NewCustomOpenAI(cfg.CustomOpenAIBaseURL, cfg.CustomOpenAIAPIKey, cfg.Model, opts...), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
