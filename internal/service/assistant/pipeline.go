package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/pkg/log"
)

// DefaultMaxTokens bounds the length of a generated reply.
const DefaultMaxTokens = 1500

var errEmptyCompletion = errors.New("model returned an empty completion")

// Pipeline answers one question: score, compose, complete.
// It holds no per-session state and is safe for concurrent use.
type Pipeline struct {
	docs      DocumentSource
	ai        core.Completer
	maxTokens int
}

func NewPipeline(docs DocumentSource, ai core.Completer, maxTokens int) *Pipeline {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Pipeline{
		docs:      docs,
		ai:        ai,
		maxTokens: maxTokens,
	}
}

// Respond returns the model's reply to query, or ApologyMessage if the model
// call fails for any reason.
func (p *Pipeline) Respond(ctx context.Context, query string, history []core.Turn) string {
	logger := log.FromCtx(ctx)

	docs := Score(query, p.docs)
	prompt := Compose(query, docs, history)

	if ev := logger.Debug(); ev.Enabled() {
		ev.Int("documents", len(docs)).
			Int("history", len(history)).
			Int("prompt_tokens", EstimateTokens(SystemPrompt)+EstimateTokens(prompt)).
			Msg("Composed prompt")
	}

	reply, err := p.complete(ctx, prompt)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate response")
		return ApologyMessage
	}
	return reply
}

func (p *Pipeline) complete(ctx context.Context, prompt string) (string, error) {
	if p.ai == nil {
		return "", errors.New("no model provider configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reply, err := p.ai.Complete(ctx, SystemPrompt, prompt, p.maxTokens)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", errEmptyCompletion
	}
	return reply, nil
}

// Exchange answers query and returns the reply with the updated history.
func (p *Pipeline) Exchange(ctx context.Context, query string, history []core.Turn) (string, []core.Turn) {
	reply := p.Respond(ctx, query, history)
	return reply, AppendExchange(history, query, reply, time.Now())
}

// AppendExchange returns history followed by the user query and the reply,
// trimmed to core.MaxHistoryTurns. history itself is left untouched.
func AppendExchange(history []core.Turn, query, reply string, now time.Time) []core.Turn {
	updated := make([]core.Turn, 0, len(history)+2)
	updated = append(updated, history...)
	updated = append(updated,
		core.NewTurn(core.RoleUser, query, now),
		core.NewTurn(core.RoleAssistant, reply, now),
	)

	trimmed := core.TrimHistory(updated, core.MaxHistoryTurns)
	out := make([]core.Turn, len(trimmed))
	copy(out, trimmed)
	return out
}
