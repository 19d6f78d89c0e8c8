package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyflow/internal/ui/theme"
)

// EmptyState renders a centered message with an optional hint below it.
func EmptyState(width, height int, message, hint string) string {
	content := lipgloss.NewStyle().Foreground(theme.Text).Render(message)
	if hint != "" {
		content += "\n\n" + theme.Hint.Render(hint)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Bullets renders items as a bulleted list.
func Bullets(items []string, width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Text).Width(max(width-4, 10))
	var out string
	for _, it := range items {
		out += "  • " + style.Render(it) + "\n"
	}
	return out
}
