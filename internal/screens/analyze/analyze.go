package analyze

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

// AnalyzeScreen shows the key concepts and subtopics of the notes.
type AnalyzeScreen struct {
	state  *session.State
	cat    *i18n.Catalog
	offset int
}

var (
	_ screen.Screen          = (*AnalyzeScreen)(nil)
	_ screen.KeyHintProvider = (*AnalyzeScreen)(nil)
)

// New creates the analysis screen.
func New(state *session.State) *AnalyzeScreen {
	return &AnalyzeScreen{state: state, cat: state.Catalog()}
}

func (s *AnalyzeScreen) Init() tea.Cmd { return nil }

func (s *AnalyzeScreen) Title() string {
	return s.cat.T(i18n.ToolAnalyze)
}

func (s *AnalyzeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "g", Description: s.cat.T(i18n.KeyAnalyze)},
		{Key: "↑↓", Description: s.cat.T(i18n.KeyScroll)},
	}
}

func (s *AnalyzeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "g":
		return s, screen.RunAction(study.ActionAnalysis)
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	}
	return s, nil
}

func (s *AnalyzeScreen) View(width, height int) string {
	a := s.state.Analysis
	if a == nil {
		return components.EmptyState(width, height, s.cat.T(i18n.ToolAnalyze), s.cat.T(i18n.HintGenerate))
	}

	var b strings.Builder
	section := func(title i18n.Key, items []string, empty i18n.Key) {
		b.WriteString(theme.Subtitle.Render(s.cat.T(title)) + "\n")
		if len(items) == 0 {
			b.WriteString("  " + theme.Hint.Render(s.cat.T(empty)) + "\n")
			return
		}
		b.WriteString(components.Bullets(items, width-4))
	}
	section(i18n.LabelKeyConcepts, a.KeyConcepts, i18n.EmptyConcepts)
	b.WriteString("\n")
	section(i18n.LabelSubtopics, a.Subtopics, i18n.EmptySubtopics)

	text, offset := layout.Window(strings.TrimRight(b.String(), "\n"), s.offset, height-2)
	s.offset = offset
	return lipgloss.NewStyle().Padding(1, 2).Render(text)
}
