package telegram

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"github.com/jkruckivey/assessments/internal/knowledge"
	"github.com/jkruckivey/assessments/internal/service/assistant"
	"github.com/jkruckivey/assessments/internal/service/command"
	"github.com/jkruckivey/assessments/internal/storage/memory"
)

type echoCompleter struct {
	prompts []string
}

func (e *echoCompleter) Complete(_ context.Context, _, user string, _ int) (string, error) {
	e.prompts = append(e.prompts, user)
	return "reply", nil
}

func TestSplitHTML(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{"short", "hello", 10, []string{"hello"}},
		{"hard split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"newline preferred", "aaaa\nbbbbbb", 8, []string{"aaaa", "bbbbbb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitHTML(tt.text, tt.maxLen))
		})
	}
}

func TestSplitHTML_KeepsRunesWhole(t *testing.T) {
	text := strings.Repeat("é", 50)

	chunks := splitHTML(text, 7)

	require.NotEmpty(t, chunks)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %q is not valid utf-8", c)
		assert.LessOrEqual(t, len(c), 7)
	}
}

func TestConversation(t *testing.T) {
	ctx := context.Background()
	ai := &echoCompleter{}
	sessions := memory.NewSessionStore(time.Hour)
	cv := newConversation(assistant.NewPipeline(knowledge.NewStore(nil), ai, 0), sessions)

	assert.Equal(t, "reply", cv.reply(ctx, 42, "first"))
	assert.Equal(t, "reply", cv.reply(ctx, 42, "second"))

	history, err := sessions.GetHistory(ctx, "telegram-42")
	require.NoError(t, err)
	assert.Len(t, history, 4)
	require.Len(t, ai.prompts, 2)
	assert.Contains(t, ai.prompts[1], "User: first\n")

	out, handled := command.New(command.NewCommands(knowledge.NewStore(nil), sessions)).Execute(ctx, sessionID(42), "/clear")
	assert.True(t, handled)
	assert.Contains(t, out, "Conversation cleared.")
	history, err = sessions.GetHistory(ctx, "telegram-42")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestConversation_EdgeCases(t *testing.T) {
	ctx := context.Background()
	sessions := memory.NewSessionStore(time.Hour)

	cv := newConversation(nil, sessions)
	assert.Equal(t, notInitializedMessage, cv.reply(ctx, 1, "hello"))

	ai := &echoCompleter{}
	cv = newConversation(assistant.NewPipeline(knowledge.NewStore(nil), ai, 0), sessions)
	assert.Equal(t, "Message cannot be empty", cv.reply(ctx, 1, "   "))
	assert.Empty(t, ai.prompts)
}

func TestAllowed(t *testing.T) {
	owner := &tele.User{ID: 7}
	stranger := &tele.User{ID: 8}

	assert.True(t, allowed(0, stranger))
	assert.True(t, allowed(7, owner))
	assert.False(t, allowed(7, stranger))
	assert.False(t, allowed(7, nil))
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "telegram-123", sessionID(123))
	assert.Equal(t, "telegram--5", sessionID(-5))
}
