package flashcards

import (
	"fmt"

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

// FlashcardsScreen shows one card at a time, question side first.
type FlashcardsScreen struct {
	state   *session.State
	cat     *i18n.Catalog
	index   int
	flipped bool
}

var (
	_ screen.Screen          = (*FlashcardsScreen)(nil)
	_ screen.KeyHintProvider = (*FlashcardsScreen)(nil)
	_ screen.Syncer          = (*FlashcardsScreen)(nil)
)

// New creates the flashcards screen.
func New(state *session.State) *FlashcardsScreen {
	return &FlashcardsScreen{state: state, cat: state.Catalog()}
}

func (s *FlashcardsScreen) Init() tea.Cmd { return nil }

func (s *FlashcardsScreen) Title() string {
	return s.cat.T(i18n.ToolFlashcards)
}

// Sync keeps the card index inside a regenerated deck.
func (s *FlashcardsScreen) Sync() {
	if s.index >= len(s.state.Flashcards) {
		s.index = 0
		s.flipped = false
	}
}

func (s *FlashcardsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "g", Description: s.cat.T(i18n.KeyGenerate)}}
	if len(s.state.Flashcards) > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "Space", Description: s.cat.T(i18n.KeyFlip)},
			layout.KeyHint{Key: "←→", Description: s.cat.T(i18n.KeyCard)},
		)
	}
	return hints
}

func (s *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	n := len(s.state.Flashcards)
	switch kmsg.String() {
	case "g":
		s.index, s.flipped = 0, false
		return s, screen.RunAction(study.ActionFlashcards)
	case "space", " ", "enter":
		if n > 0 {
			s.flipped = !s.flipped
		}
	case "right", "l", "n":
		if s.index < n-1 {
			s.index++
			s.flipped = false
		}
	case "left", "h", "p":
		if s.index > 0 {
			s.index--
			s.flipped = false
		}
	}
	return s, nil
}

func (s *FlashcardsScreen) View(width, height int) string {
	cards := s.state.Flashcards
	if cards == nil {
		return components.EmptyState(width, height, s.cat.T(i18n.ToolFlashcards), s.cat.T(i18n.HintGenerate))
	}
	if len(cards) == 0 {
		return components.EmptyState(width, height, s.cat.T(i18n.EmptyFlashcards), s.cat.T(i18n.HintGenerate))
	}

	card := cards[min(s.index, len(cards)-1)]
	label, text := s.cat.T(i18n.LabelQuestion), card.Question
	if s.flipped {
		label, text = s.cat.T(i18n.LabelAnswer), card.Answer
	}

	cardWidth := min(width-8, 70)
	body := theme.Subtitle.Render(label) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(cardWidth-6).Render(text)
	rendered := theme.Card.Width(cardWidth).Render(body)

	counter := theme.Hint.Render(fmt.Sprintf("%d / %d", s.index+1, len(cards)))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, rendered, "", counter))
}
