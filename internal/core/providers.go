package core

import "context"

// Completer is an external language model: system and user prompt in, text out.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}
