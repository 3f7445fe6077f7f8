// Package tui is the interactive terminal chat.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jkruckivey/assessments/internal/core"
)

// Exchanger answers a question given the conversation so far.
type Exchanger interface {
	Exchange(ctx context.Context, query string, history []core.Turn) (string, []core.Turn)
}

type replyMsg struct {
	reply   string
	history []core.Turn
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx      context.Context
	bot      Exchanger
	summary  string
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	history  []core.Turn
	// transcript keeps every turn shown on screen; history is trimmed.
	transcript []core.Turn
	waiting    bool
	ready      bool
	status     string
}

func New(ctx context.Context, bot Exchanger, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about assessment design, /clear to reset, Ctrl+C to quit"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:      ctx,
		bot:      bot,
		summary:  summary,
		input:    ti,
		viewport: viewport.New(0, 0),
		spinner:  sp,
		status:   "Ready.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + summary, status, input box
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-th)
		m.input.Width = max(10, msg.Width-6)
		m.refresh()
		return m, nil

	case replyMsg:
		m.waiting = false
		m.history = msg.history
		m.transcript = append(m.transcript, core.NewTurn(core.RoleAssistant, msg.reply, time.Now()))
		m.status = fmt.Sprintf("History: %d turns", len(m.history))
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	if q == "" || m.waiting {
		return m, nil
	}
	m.input.SetValue("")

	switch q {
	case "/clear":
		m.history = nil
		m.transcript = nil
		m.status = "Conversation cleared."
		m.refresh()
		return m, nil
	case "/quit", "/exit":
		return m, tea.Quit
	}

	m.transcript = append(m.transcript, core.NewTurn(core.RoleUser, q, time.Now()))
	m.waiting = true
	m.status = "Thinking..."
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, m.ask(q))
}

func (m Model) ask(q string) tea.Cmd {
	history := m.history
	return func() tea.Msg {
		reply, updated := m.bot.Exchange(m.ctx, q, history)
		return replyMsg{reply: reply, history: updated}
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render(core.BotName)
	summary := summaryStyle.Render(m.summary)
	status := statusStyle.Render(m.status)
	if m.waiting {
		status = m.spinner.View() + " " + status
	}
	return header + "\n" + summary + "\n" +
		transcriptBoxStyle.Render(m.viewport.View()) + "\n" +
		inputBoxStyle.Render(m.input.View()) + "\n" +
		status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return summaryStyle.Render("Ask a question to get started.")
	}
	width := max(10, m.viewport.Width-2)
	var b strings.Builder
	for i, turn := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		label := assistantLabelStyle.Render(turn.Role.Label() + ":")
		if turn.Role == core.RoleUser {
			label = userLabelStyle.Render(turn.Role.Label() + ":")
		}
		b.WriteString(label + "\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(turn.Content))
	}
	return b.String()
}

var (
	headerStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	summaryStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	transcriptBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Run starts the chat program and blocks until the user quits.
func Run(ctx context.Context, bot Exchanger, summary string) error {
	p := tea.NewProgram(New(ctx, bot, summary), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("chat ui: %w", err)
	}
	return nil
}
