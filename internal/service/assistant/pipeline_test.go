package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkruckivey/assessments/internal/core"
)

type fakeCompleter struct {
	reply string
	err   error

	calls     int
	system    string
	user      string
	maxTokens int
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string, maxTokens int) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	f.maxTokens = maxTokens
	return f.reply, f.err
}

func TestPipeline_Respond(t *testing.T) {
	source := docList{
		doc("rubric", "Rubric Guide", "A rubric lists criteria."),
		doc("other", "Other", "unrelated"),
	}
	ai := &fakeCompleter{reply: "Use clear criteria."}
	p := NewPipeline(source, ai, 0)

	got := p.Respond(context.Background(), "How should a rubric look?", nil)

	assert.Equal(t, "Use clear criteria.", got)
	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, SystemPrompt, ai.system)
	assert.Equal(t, DefaultMaxTokens, ai.maxTokens)
	assert.Contains(t, ai.user, "User Question: How should a rubric look?")
	assert.Contains(t, ai.user, "--- Rubric Guide ---")
	assert.NotContains(t, ai.user, "--- Other ---")
}

func TestPipeline_RespondCustomMaxTokens(t *testing.T) {
	ai := &fakeCompleter{reply: "ok"}
	p := NewPipeline(docList{}, ai, 300)

	p.Respond(context.Background(), "hello", nil)

	assert.Equal(t, 300, ai.maxTokens)
}

func TestPipeline_RespondFailures(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name      string
		ctx       context.Context
		ai        *fakeCompleter
		wantCalls int
	}{
		{"provider error", context.Background(), &fakeCompleter{err: errors.New("boom")}, 1},
		{"empty completion", context.Background(), &fakeCompleter{reply: "  \n"}, 1},
		{"canceled context", canceled, &fakeCompleter{reply: "never"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline(docList{}, tt.ai, 0)

			got := p.Respond(tt.ctx, "anything", nil)

			assert.Equal(t, ApologyMessage, got)
			assert.Equal(t, tt.wantCalls, tt.ai.calls)
		})
	}
}

func TestPipeline_RespondWithoutProvider(t *testing.T) {
	p := NewPipeline(docList{}, nil, 0)

	assert.Equal(t, ApologyMessage, p.Respond(context.Background(), "hi", nil))
}

func TestPipeline_RespondWithEmptyKnowledge(t *testing.T) {
	ai := &fakeCompleter{reply: "General advice."}
	p := NewPipeline(knowledgeless{}, ai, 0)

	got := p.Respond(context.Background(), "How do I assess group work fairly?", nil)

	assert.Equal(t, "General advice.", got)
	assert.Contains(t, ai.user, "User Question: How do I assess group work fairly?")
	assert.NotContains(t, ai.user, "Relevant Knowledge Base Information")
}

type knowledgeless struct{}

func (knowledgeless) Documents() []core.Document { return nil }

func TestAppendExchange(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	t.Run("appends user then assistant", func(t *testing.T) {
		got := AppendExchange(nil, "question", "answer", now)

		require.Len(t, got, 2)
		assert.Equal(t, core.RoleUser, got[0].Role)
		assert.Equal(t, "question", got[0].Content)
		assert.Equal(t, core.RoleAssistant, got[1].Role)
		assert.Equal(t, "answer", got[1].Content)
		assert.Equal(t, now.Format(time.RFC3339Nano), got[1].Timestamp)
	})

	t.Run("keeps the latest turns", func(t *testing.T) {
		history := make([]core.Turn, 0, core.MaxHistoryTurns)
		for i := range core.MaxHistoryTurns {
			history = append(history, core.NewTurn(core.RoleUser, string(rune('a'+i)), now))
		}
		before := append([]core.Turn(nil), history...)

		got := AppendExchange(history, "q", "r", now)

		require.Len(t, got, core.MaxHistoryTurns)
		assert.Equal(t, "c", got[0].Content)
		assert.Equal(t, "q", got[len(got)-2].Content)
		assert.Equal(t, "r", got[len(got)-1].Content)
		assert.Equal(t, before, history)
	})
}

func TestPipeline_Exchange(t *testing.T) {
	ai := &fakeCompleter{reply: "answer"}
	p := NewPipeline(docList{}, ai, 0)
	history := []core.Turn{core.NewTurn(core.RoleUser, "earlier", time.Now())}

	reply, updated := p.Exchange(context.Background(), "question", history)

	assert.Equal(t, "answer", reply)
	require.Len(t, updated, 3)
	assert.Equal(t, "earlier", updated[0].Content)
	assert.Equal(t, "question", updated[1].Content)
	assert.Equal(t, "answer", updated[2].Content)
	assert.Len(t, history, 1)
}

func TestEstimateTokens(t *testing.T) {
	assert.Zero(t, EstimateTokens(""))
	assert.Positive(t, EstimateTokens("How do I design an inclusive assessment?"))
}
