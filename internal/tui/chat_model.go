package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmateus/plantdoc/internal/models"
	"github.com/dmateus/plantdoc/internal/render"
)

// turnDoneMsg is sent when a conversation turn resolved (the log then
// holds both the user entry and the assistant reply or fallback).
type turnDoneMsg struct{}

// ConversationInterface defines the conversation operations the TUI
// needs, so the model can be tested with a scripted fake.
type ConversationInterface interface {
	Send(text string) bool
	Busy() bool
	Log() []models.ChatMessage
}

// ChatModel is the bubbletea model for the assistant chat.
type ChatModel struct {
	conversation ConversationInterface
	principal    string

	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	loading bool
	ready   bool

	width  int
	height int
}

// NewChatModel creates the chat TUI model for a conversation.
func NewChatModel(conversation ConversationInterface, principal string) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask about plant care, diseases, treatments..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return ChatModel{
		conversation: conversation,
		principal:    principal,
		textarea:     ta,
		spinner:      s,
	}
}

// Init initializes the model
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		inputHeight := 6
		statusHeight := 1
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			input := strings.TrimSpace(m.textarea.Value())
			if m.loading || input == "" {
				break
			}
			if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
				return m, tea.Quit
			}

			m.loading = true
			m.textarea.Reset()
			cmd = m.sendMessage(input)

			return m, tea.Batch(cmd, m.spinner.Tick)
		}

	case turnDoneMsg:
		m.loading = false
		m.updateViewport()
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

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

// View renders the TUI
func (m ChatModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	headerParts := []string{
		titleStyle.Render("❀ PlantDoc Assistant"),
	}
	if m.principal != "" {
		headerParts = append(headerParts,
			hintStyle.Render("  •  "),
			subtitleStyle.Render(m.principal),
		)
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View())
	sections = append(sections, messagesPanel)

	var inputContent string
	if m.loading {
		inputContent = m.spinner.View() + loadingStyle.Render(" Thinking...")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ChatModel) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// sendMessage creates a command that runs one conversation turn. The
// conversation owns the log and the fallback behavior, so the command
// only signals completion.
func (m ChatModel) sendMessage(text string) tea.Cmd {
	return func() tea.Msg {
		m.conversation.Send(text)
		return turnDoneMsg{}
	}
}

// updateViewport refreshes the viewport content from the conversation log.
func (m *ChatModel) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	for i, msg := range m.conversation.Log() {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.Speaker == models.SpeakerUser {
			label := userLabelStyle.Render("⬤ You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Text)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := assistantLabelStyle.Render("❀ PlantDoc")

			rendered, err := render.MarkdownWithWidth(msg.Text, bubbleWidth-4)
			if err != nil {
				rendered = msg.Text
			}
			rendered = strings.TrimRight(rendered, "\n")

			bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI.
func RunChat(conversation ConversationInterface, principal string) error {
	p := tea.NewProgram(
		NewChatModel(conversation, principal),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
