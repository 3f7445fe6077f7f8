package command

import (
	"context"

	"github.com/jkruckivey/assessments/internal/core"
)

type ClearCommand struct {
	sessions  core.SessionStore
	formatter *ResponseFormatter
}

func NewClearCommand(sessions core.SessionStore) core.Command {
	return &ClearCommand{
		sessions:  sessions,
		formatter: NewResponseFormatter(),
	}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Start a new conversation"
}

func (c *ClearCommand) Execute(ctx context.Context, sessionID string, _ []string) (string, error) {
	if err := c.sessions.ClearHistory(ctx, sessionID); err != nil {
		return "", err
	}
	return c.formatter.Success("Conversation cleared."), nil
}
