package installer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jkruckivey/assessments/internal/config"
	"github.com/jkruckivey/assessments/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	itemStyle  = lipgloss.NewStyle().PaddingLeft(2)
	selStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("5"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Step represents a single step in the setup wizard. Update returns nil when
// the step is complete.
type Step interface {
	Init() tea.Cmd
	Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd)
	View(state *InstallState) string
}

func getSteps() []Step {
	return []Step{
		NewChoiceStep("Select your AI provider:", "LLM_PROVIDER", []Choice{
			{config.ProviderAnthropic, "Anthropic (Claude)"},
			{config.ProviderOpenAI, "OpenAI"},
			{config.ProviderOpenRouter, "OpenRouter"},
			{config.ProviderOllama, "Ollama (local)"},
			{config.ProviderCustom, "Custom OpenAI-compatible endpoint"},
		}),
		NewCredentialStep(),
		NewInputStep(InputStepConfig{
			Prompt:  "Knowledge base directory",
			EnvKey:  "KNOWLEDGE_PATH",
			Default: "Instructional Design Principles",
		}),
		NewChoiceStep("Where should conversation history be kept?", "SESSION_BACKEND", []Choice{
			{config.SessionBackendMemory, "In memory (lost on restart)"},
			{config.SessionBackendSQLite, "SQLite database"},
		}),
		NewChoiceStep("Enable the Telegram bot?", "ENABLE_TELEGRAM", []Choice{
			{"false", "No"},
			{"true", "Yes"},
		}),
		NewInputStep(InputStepConfig{
			Prompt:   "Telegram bot token (from @BotFather)",
			EnvKey:   "TELEGRAM_TOKEN",
			Secret:   true,
			Required: true,
			Skip:     telegramDisabled,
		}),
		NewInputStep(InputStepConfig{
			Prompt: "Telegram owner user id",
			EnvKey: "TELEGRAM_OWNER_ID",
			Skip:   telegramDisabled,
			Hint:   "optional, restricts the bot to one user",
		}),
	}
}

func telegramDisabled(state *InstallState) bool {
	return state.EnvVars["ENABLE_TELEGRAM"] != "true"
}

type nextMsg struct{}

// model is the main Bubble Tea model that orchestrates the steps
type model struct {
	steps       []Step
	currentStep int
	state       *InstallState
	quitting    bool
	width       int
	height      int
}

func newModel(steps []Step) model {
	return model{
		steps: steps,
		state: NewInstallState(),
	}
}

func (m model) Init() tea.Cmd {
	if len(m.steps) > 0 && m.steps[0] != nil {
		return m.steps[0].Init()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	if m.done() {
		return m, tea.Quit
	}

	nextStep, cmd := m.steps[m.currentStep].Update(msg, m.state, m.width, m.height)

	if nextStep == nil {
		m.currentStep++
		if m.done() {
			return m, tea.Quit
		}
		return m, m.steps[m.currentStep].Init()
	}

	m.steps[m.currentStep] = nextStep
	return m, cmd
}

func (m model) done() bool {
	return m.currentStep >= len(m.steps)
}

func (m model) View() string {
	if m.quitting {
		return "Setup cancelled.\n"
	}
	if m.done() {
		return "Configuration complete!\n"
	}
	return titleStyle.Render(core.BotName+" setup") + "\n\n" + m.steps[m.currentStep].View(m.state)
}

// RunWizard asks for the main settings interactively.
func RunWizard() (*InstallState, error) {
	p := tea.NewProgram(newModel(getSteps()), tea.WithAltScreen())
	m, err := p.Run()
	if err != nil {
		return nil, err
	}

	finalModel := m.(model)
	if finalModel.quitting {
		return nil, fmt.Errorf("setup interrupted")
	}

	return finalModel.state, nil
}
