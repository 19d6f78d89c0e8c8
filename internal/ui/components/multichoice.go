package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyflow/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Once an answer is chosen it
// is locked and the correct option is highlighted.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	// ChosenIndex is -1 until answered.
	ChosenIndex int
	// OnChoose is called with the chosen option on enter.
	OnChoose func(option int) tea.Cmd
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.ChosenIndex >= 0
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Answered() {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "a", "b", "c", "d":
		if i := int(kmsg.String()[0] - 'a'); i < len(m.Options) {
			m.Selected = i
		}
	case "enter":
		if m.OnChoose != nil {
			return m, m.OnChoose(m.Selected)
		}
	}

	return m, nil
}

// OptionLabel returns the letter shown before option i.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Answered() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case m.Answered() && i == m.CorrectIndex:
			style = theme.Correct
		case m.Answered() && i == m.ChosenIndex:
			style = theme.Incorrect
		case m.Answered():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Answered() && m.ChosenIndex == m.CorrectIndex
}
