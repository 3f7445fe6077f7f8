package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jkruckivey/assessments/internal/core"
)

func TestCompose_QuestionOnly(t *testing.T) {
	got := Compose("How do I write a rubric?", nil, nil)

	want := "User Question: How do I write a rubric?\n\n\n\n\n" + closingInstruction
	assert.Equal(t, want, got)
}

func TestCompose_KnowledgeBlock(t *testing.T) {
	long := strings.Repeat("a", MaxDocumentPreview+200)
	docs := []core.Document{
		doc("short", "Short Doc", "brief content"),
		doc("long", "Long Doc", long),
	}

	got := Compose("q", docs, nil)

	want := "User Question: q\n\n" +
		"\n\nRelevant Knowledge Base Information:\n" +
		"\n--- Short Doc ---\nbrief content\n" +
		"\n--- Long Doc ---\n" + strings.Repeat("a", MaxDocumentPreview) + "...\n" +
		"\n\n\n" + closingInstruction
	assert.Equal(t, want, got)
}

func TestCompose_ConversationUsesLastThreeTurns(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	history := []core.Turn{
		core.NewTurn(core.RoleUser, "first question", now),
		core.NewTurn(core.RoleAssistant, "first answer", now),
		core.NewTurn(core.RoleUser, "second question", now),
		core.NewTurn(core.RoleAssistant, "second answer", now),
		core.NewTurn(core.RoleUser, "third question", now),
	}

	got := Compose("next", nil, history)

	assert.Contains(t, got, "\n\nPrevious conversation context:\n"+
		"User: second question\n"+
		"Assistant: second answer\n"+
		"User: third question\n")
	assert.NotContains(t, got, "first question")
	assert.NotContains(t, got, "first answer")
	assert.NotContains(t, got, "Relevant Knowledge Base Information")
	assert.True(t, strings.HasPrefix(got, "User Question: next\n\n"))
	assert.True(t, strings.HasSuffix(got, "\n\n"+closingInstruction))
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name    string
		content string
		limit   int
		want    string
	}{
		{"shorter", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"longer", "abcdef", 5, "abcde..."},
		{"multibyte counted as characters", "ééééé", 3, "ééé..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.content, tt.limit))
		})
	}
}
