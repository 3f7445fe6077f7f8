package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jkruckivey/assessments/internal/config"
)

type InputStepConfig struct {
	Prompt   string
	EnvKey   string
	Default  string
	Hint     string
	Secret   bool
	Required bool
	// Skip completes the step without asking when it returns true.
	Skip func(*InstallState) bool
}

// InputStep stores a line of free text under EnvKey. An empty answer keeps Default.
type InputStep struct {
	cfg   InputStepConfig
	input textinput.Model
	ready bool
	err   string
}

func NewInputStep(cfg InputStepConfig) Step {
	return &InputStep{cfg: cfg}
}

func (s *InputStep) Init() tea.Cmd {
	// Wake Update so Skip can be evaluated against the state.
	return func() tea.Msg { return nextMsg{} }
}

func (s *InputStep) prepare() {
	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 50
	s.input.Placeholder = s.cfg.Default
	if s.cfg.Secret {
		s.input.EchoMode = textinput.EchoPassword
		s.input.EchoCharacter = '*'
	}
	s.ready = true
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.cfg.Skip != nil && s.cfg.Skip(state) {
		return nil, nil
	}
	if !s.ready {
		s.prepare()
		if _, ok := msg.(nextMsg); ok {
			return s, textinput.Blink
		}
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		value := strings.TrimSpace(s.input.Value())
		if value == "" {
			value = s.cfg.Default
		}
		if value == "" && s.cfg.Required {
			s.err = "a value is required"
			return s, nil
		}
		if value != "" {
			state.EnvVars[s.cfg.EnvKey] = value
		}
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	if !s.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(s.cfg.Prompt)
	switch {
	case s.cfg.Hint != "":
		fmt.Fprintf(&b, " (%s)", s.cfg.Hint)
	case s.cfg.Default != "":
		fmt.Fprintf(&b, " (default: %s)", s.cfg.Default)
	}
	b.WriteString(":\n\n" + s.input.View() + "\n\n")
	if s.err != "" {
		b.WriteString(errorStyle.Render(s.err) + "\n\n")
	}
	b.WriteString("(press enter to confirm)\n")
	return b.String()
}

// NewCredentialStep asks for what the chosen provider needs: an API key, or a
// base URL for local and custom endpoints.
func NewCredentialStep() Step {
	return &credentialStep{}
}

type credentialStep struct {
	inner Step
}

func credentialInput(provider string) InputStepConfig {
	switch provider {
	case config.ProviderOpenAI:
		return InputStepConfig{Prompt: "OpenAI API key", EnvKey: "OPENAI_API_KEY", Secret: true, Required: true}
	case config.ProviderOpenRouter:
		return InputStepConfig{Prompt: "OpenRouter API key", EnvKey: "OPENROUTER_API_KEY", Secret: true, Required: true}
	case config.ProviderOllama:
		return InputStepConfig{Prompt: "Ollama base URL", EnvKey: "OLLAMA_BASE_URL", Default: "http://localhost:11434"}
	case config.ProviderCustom:
		return InputStepConfig{Prompt: "OpenAI-compatible base URL", EnvKey: "CUSTOM_OPENAI_BASE_URL", Required: true}
	default:
		return InputStepConfig{Prompt: "Anthropic API key", EnvKey: "CLAUDE_API_KEY", Secret: true, Required: true}
	}
}

func (s *credentialStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *credentialStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.inner == nil {
		s.inner = NewInputStep(credentialInput(state.EnvVars["LLM_PROVIDER"]))
	}
	next, cmd := s.inner.Update(msg, state, width, height)
	if next == nil {
		return nil, cmd
	}
	s.inner = next
	return s, cmd
}

func (s *credentialStep) View(state *InstallState) string {
	if s.inner == nil {
		return "Loading..."
	}
	return s.inner.View(state)
}
