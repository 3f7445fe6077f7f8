package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/internal/service/assistant"
	"github.com/jkruckivey/assessments/pkg/log"
)

const notInitializedMessage = "Bot not initialized. Please check API key configuration."

// conversation binds a Telegram chat to its stored history.
type conversation struct {
	pipeline *assistant.Pipeline
	sessions core.SessionStore
}

func newConversation(pipeline *assistant.Pipeline, sessions core.SessionStore) *conversation {
	return &conversation{pipeline: pipeline, sessions: sessions}
}

func sessionID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (cv *conversation) reply(ctx context.Context, chatID int64, text string) string {
	logger := log.FromCtx(ctx)
	text = strings.TrimSpace(text)
	if text == "" {
		return "Message cannot be empty"
	}

	if cv.pipeline == nil {
		return notInitializedMessage
	}

	id := sessionID(chatID)
	history, err := cv.sessions.GetHistory(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("session", id).Msg("failed to load history")
		history = nil
	}

	reply, updated := cv.pipeline.Exchange(ctx, text, history)
	if err := cv.sessions.SaveHistory(ctx, id, updated); err != nil {
		logger.Error().Err(err).Str("session", id).Msg("failed to save history")
	}
	return reply
}
