package chat

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
	"github.com/abhisek/studyflow/internal/ui/components"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// ChatScreen is the tutoring conversation: transcript above, input below.
type ChatScreen struct {
	state *session.State
	cat   *i18n.Catalog
	input components.TextInput
}

var (
	_ screen.Screen          = (*ChatScreen)(nil)
	_ screen.KeyHintProvider = (*ChatScreen)(nil)
	_ screen.TextCapturer    = (*ChatScreen)(nil)
)

// New creates the chat screen.
func New(state *session.State) *ChatScreen {
	cat := state.Catalog()
	return &ChatScreen{
		state: state,
		cat:   cat,
		input: components.NewTextInput(cat.T(i18n.ChatPlaceholder), false, 2000),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Focus()
}

func (s *ChatScreen) Title() string {
	return s.cat.T(i18n.ToolChat)
}

func (s *ChatScreen) CapturingText() bool { return true }

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: s.cat.T(i18n.KeySend)}}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		text := s.input.Value()
		if strings.TrimSpace(text) == "" || s.state.Conversation == nil || s.state.Loading {
			return s, nil
		}
		s.input.SetValue("")
		return s, func() tea.Msg { return screen.SendChatMsg{Text: text} }
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) View(width, height int) string {
	inputView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 4).
		Render(s.input.View())

	transcriptHeight := max(height-lipgloss.Height(inputView)-2, 1)

	var b strings.Builder
	for i, m := range s.state.Transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderMessage(s.cat, m, width-6))
	}

	// Keep the newest messages in view.
	text := b.String()
	lines := strings.Split(text, "\n")
	text, _ = layout.Window(text, len(lines), transcriptHeight)

	transcript := lipgloss.NewStyle().Height(transcriptHeight).Render(text)
	return lipgloss.NewStyle().Padding(1, 2, 0, 2).Render(transcript + "\n" + inputView)
}

func renderMessage(cat *i18n.Catalog, m study.ChatMessage, width int) string {
	var who string
	var style lipgloss.Style
	if m.Role == study.RoleUser {
		who = cat.T(i18n.LabelYou)
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	} else {
		who = cat.T(i18n.LabelAssistant)
		style = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	}
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width, 10)).Render(m.Content)
	return style.Render(who) + "\n" + body
}
