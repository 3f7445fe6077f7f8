package core

import "time"

const (
	BotName       = "Assessment Design Assistant"
	BotUserAgent  = "AssessBot/0.1"
	RepositoryURL = "https://github.com/jkruckivey/assessments"
	Version       = "0.1.0"
)

// MaxHistoryTurns is the number of turns a session keeps after each exchange.
const MaxHistoryTurns = 10

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Label is the speaker name used when a turn is rendered into a prompt.
func (r Role) Label() string {
	if r == RoleUser {
		return "User"
	}
	return "Assistant"
}

// Turn is one message of a session's conversation history.
type Turn struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

func NewTurn(role Role, content string, at time.Time) Turn {
	return Turn{
		Role:      role,
		Content:   content,
		Timestamp: at.Format(time.RFC3339Nano),
	}
}

// TrimHistory returns the most recent limit turns of history.
func TrimHistory(history []Turn, limit int) []Turn {
	if limit <= 0 {
		return nil
	}
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
