package installer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func key(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWizard_DefaultsAndSkips(t *testing.T) {
	m := newModel(getSteps())

	m = send(t, m,
		// anthropic
		key("enter"),
		// api key
		nextMsg{}, key("sk-ant-1"), key("enter"),
		// default knowledge path
		nextMsg{}, key("enter"),
		// sqlite sessions
		key("down"), key("enter"),
		// telegram disabled, token and owner skipped
		key("enter"), nextMsg{}, nextMsg{},
	)

	require.True(t, m.done())
	assert.Equal(t, map[string]string{
		"LLM_PROVIDER":    "anthropic",
		"CLAUDE_API_KEY":  "sk-ant-1",
		"KNOWLEDGE_PATH":  "Instructional Design Principles",
		"SESSION_BACKEND": "sqlite",
		"ENABLE_TELEGRAM": "false",
	}, m.state.EnvVars)
}

func TestWizard_OllamaAndTelegram(t *testing.T) {
	m := newModel(getSteps())

	m = send(t, m,
		// ollama with the default base url
		key("down"), key("down"), key("down"), key("enter"),
		nextMsg{}, key("enter"),
		nextMsg{}, key("docs"), key("enter"),
		// memory sessions, telegram enabled
		key("enter"),
		key("down"), key("enter"),
		// an empty token is rejected
		nextMsg{}, key("enter"),
	)
	require.False(t, m.done())
	assert.Contains(t, m.View(), "a value is required")

	m = send(t, m,
		key("123:abc"), key("enter"),
		nextMsg{}, key("42"), key("enter"),
	)

	require.True(t, m.done())
	assert.Equal(t, "ollama", m.state.EnvVars["LLM_PROVIDER"])
	assert.Equal(t, "http://localhost:11434", m.state.EnvVars["OLLAMA_BASE_URL"])
	assert.Equal(t, "docs", m.state.EnvVars["KNOWLEDGE_PATH"])
	assert.Equal(t, "memory", m.state.EnvVars["SESSION_BACKEND"])
	assert.Equal(t, "true", m.state.EnvVars["ENABLE_TELEGRAM"])
	assert.Equal(t, "123:abc", m.state.EnvVars["TELEGRAM_TOKEN"])
	assert.Equal(t, "42", m.state.EnvVars["TELEGRAM_OWNER_ID"])
}

func TestWizard_Cancel(t *testing.T) {
	m := send(t, newModel(getSteps()), key("ctrl+c"))

	assert.True(t, m.quitting)
	assert.Equal(t, "Setup cancelled.\n", m.View())
}

func TestCredentialInput(t *testing.T) {
	tests := []struct {
		provider string
		envKey   string
	}{
		{"anthropic", "CLAUDE_API_KEY"},
		{"", "CLAUDE_API_KEY"},
		{"openai", "OPENAI_API_KEY"},
		{"openrouter", "OPENROUTER_API_KEY"},
		{"ollama", "OLLAMA_BASE_URL"},
		{"custom", "CUSTOM_OPENAI_BASE_URL"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			assert.Equal(t, tt.envKey, credentialInput(tt.provider).EnvKey)
		})
	}
}
