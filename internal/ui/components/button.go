package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/ui/theme"
)

// Button is a styled button component. A disabled button ignores input.
type Button struct {
	Label   string
	Enabled bool
	Focused bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, enabled bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Enabled: enabled,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Enabled || !b.Focused {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Focused {
		label = "▸ " + label
	}
	if b.Enabled {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
