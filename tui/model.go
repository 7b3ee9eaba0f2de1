package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/08Ankit28/AI-Guru/models"
	"github.com/08Ankit28/AI-Guru/workflows"
)

const offlineNote = "Note: Could not connect to the AI service. Using fallback responses. Please check your API key."

// Message types for the TUI
type (
	replyMsg struct {
		out models.Exchange
	}
	errMsg struct {
		err error
	}
)

// Model is the chat widget. It renders the workflow's conversation and
// blocks input while a reply is pending.
type Model struct {
	workflow  *workflows.ChatWorkflows
	modelName string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	markdown *glamour.TermRenderer

	// State
	loading bool
	offline bool
	ready   bool
	err     error

	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(wf *workflows.ChatWorkflows, modelName string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		workflow:  wf,
		modelName: modelName,
		textarea:  ta,
		spinner:   s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		inputHeight := 4
		noteHeight := 2

		vpHeight := m.height - headerHeight - inputHeight - noteHeight
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 2

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.markdown = newMarkdownRenderer(bubbleWidth(contentWidth) - 2)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.loading {
				return m, tea.Quit
			}

		case "enter":
			if m.loading {
				break
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}
			if input == "/exit" || input == "/quit" {
				return m, tea.Quit
			}
			m, cmd = m.submit(m.textarea.Value())
			return m, tea.Batch(cmd, m.spinner.Tick)
		}

	case replyMsg:
		m.loading = false
		m.offline = msg.out.Offline
		m.updateViewport()
		m.viewport.GotoBottom()

	case errMsg:
		m.loading = false
		m.err = msg.err
		m.updateViewport()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Only pass keys to the textarea while it accepts input
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit shows the user's message right away, then starts a reply and
// locks input until it arrives
func (m Model) submit(text string) (Model, tea.Cmd) {
	userMsg, err := m.workflow.Submit(text)
	if err != nil {
		m.err = err
		return m, nil
	}

	m.loading = true
	m.err = nil
	m.textarea.Reset()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, m.reply(userMsg)
}

func (m Model) reply(userMsg models.Message) tea.Cmd {
	wf := m.workflow
	return func() tea.Msg {
		out, err := wf.Reply(context.Background(), userMsg)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{out: out}
	}
}

func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages(m.viewport.Width))
}

// renderMessages lays the conversation out as bubbles: user on the right,
// assistant on the left.
func (m Model) renderMessages(width int) string {
	maxBubble := bubbleWidth(width)

	var b strings.Builder
	for _, msg := range m.workflow.Conversation().Messages() {
		if msg.Sender == models.SenderUser {
			bubble := userBubbleStyle
			if lipgloss.Width(msg.Text)+2 > maxBubble {
				bubble = bubble.Width(maxBubble)
			}
			block := lipgloss.JoinVertical(lipgloss.Right,
				userLabelStyle.Render("You"),
				bubble.Render(msg.Text),
			)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, block))
		} else {
			text := m.renderMarkdown(msg.Text)
			bubble := assistantBubbleStyle
			if lipgloss.Width(text)+2 > maxBubble {
				bubble = bubble.Width(maxBubble)
			}
			b.WriteString(lipgloss.JoinVertical(lipgloss.Left,
				assistantLabelStyle.Render("AI Guru"),
				bubble.Render(text),
			))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m Model) renderMarkdown(text string) string {
	if m.markdown == nil {
		return text
	}
	out, err := m.markdown.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 2
	var sections []string

	headerParts := []string{
		titleStyle.Render("AI Guru"),
		subtitleStyle.Render("  Your intelligent assistant"),
	}
	if m.offline {
		headerParts = append(headerParts, offlineStyle.Render(" (Offline Mode)"))
	}
	if m.modelName != "" {
		headerParts = append(headerParts, hintStyle.Render("  •  "+m.modelName))
	}
	header := headerStyle.Width(contentWidth - 2).
		Render(lipgloss.JoinHorizontal(lipgloss.Center, headerParts...))
	sections = append(sections, header, m.viewport.View())

	var input string
	if m.loading {
		input = m.spinner.View() + loadingStyle.Render(" AI Guru is typing...")
	} else {
		input = m.textarea.View()
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth-2).Render(input))

	switch {
	case m.err != nil && !errors.Is(m.err, workflows.ErrEmptyMessage):
		sections = append(sections, noteStyle.Render("Error: "+m.err.Error()))
	case m.offline:
		sections = append(sections, noteStyle.Render(offlineNote))
	default:
		sections = append(sections, hintStyle.Render("enter to send • esc to quit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// bubbleWidth caps a bubble at 80% of the available width
func bubbleWidth(width int) int {
	w := width * 4 / 5
	if w < 10 {
		w = 10
	}
	return w
}

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}
