package core

import "context"

// SessionStore keeps the ordered conversation history of each session.
type SessionStore interface {
	GetHistory(ctx context.Context, sessionID string) ([]Turn, error)
	SaveHistory(ctx context.Context, sessionID string, turns []Turn) error
	ClearHistory(ctx context.Context, sessionID string) error
}
