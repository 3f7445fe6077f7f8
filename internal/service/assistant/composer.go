package assistant

import (
	"fmt"
	"strings"

	"github.com/jkruckivey/assessments/internal/core"
)

const (
	// MaxDocumentPreview is the number of characters of each document put in the prompt.
	MaxDocumentPreview = 1000
	// PromptHistoryTurns is how many of the latest turns the prompt carries.
	PromptHistoryTurns = 3

	truncationMarker = "..."
)

// Compose builds the user prompt from the question, its context documents and
// the recent conversation. It has no side effects.
func Compose(query string, docs []core.Document, history []core.Turn) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User Question: %s\n\n", query)
	b.WriteString(knowledgeBlock(docs))
	b.WriteString("\n")
	b.WriteString(conversationBlock(history))
	b.WriteString("\n\n")
	b.WriteString(closingInstruction)
	return b.String()
}

func knowledgeBlock(docs []core.Document) string {
	if len(docs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nRelevant Knowledge Base Information:\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "\n--- %s ---\n", doc.Title)
		b.WriteString(Preview(doc.Content, MaxDocumentPreview))
		b.WriteString("\n")
	}
	return b.String()
}

func conversationBlock(history []core.Turn) string {
	if len(history) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nPrevious conversation context:\n")
	for _, turn := range core.TrimHistory(history, PromptHistoryTurns) {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role.Label(), turn.Content)
	}
	return b.String()
}

// Preview cuts content to limit characters, appending "..." when it was longer.
func Preview(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + truncationMarker
}
