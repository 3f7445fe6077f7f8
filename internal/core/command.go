package core

import "context"

// Command is a chat slash command such as /clear. Output is markdown.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
