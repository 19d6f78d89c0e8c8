// Package screen defines the contract between the root model and the
// per-tool views.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/ui/layout"
)

// Screen is one tool view. Screens read the shared session and report
// user intent through the messages in this package.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Syncer is implemented by screens that cache widgets derived from the
// session. Sync is called after every session change.
type Syncer interface {
	Sync()
}

// TextCapturer is implemented by screens with a text field. While
// CapturingText is true, printable keys go to the screen instead of
// global shortcuts.
type TextCapturer interface {
	CapturingText() bool
}
