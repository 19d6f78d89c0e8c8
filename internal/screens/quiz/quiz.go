package quiz

import (
	"strconv"
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

// QuizScreen walks through the quiz one question at a time.
type QuizScreen struct {
	state   *session.State
	cat     *i18n.Catalog
	index   int
	choices []components.MultiChoice
	// first identifies the quiz the choices were built from.
	first *session.QuizItem
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
	_ screen.Syncer          = (*QuizScreen)(nil)
)

// New creates the quiz screen.
func New(state *session.State) *QuizScreen {
	s := &QuizScreen{state: state, cat: state.Catalog()}
	s.Sync()
	return s
}

func (s *QuizScreen) Init() tea.Cmd { return nil }

func (s *QuizScreen) Title() string {
	return s.cat.T(i18n.ToolQuiz)
}

// Sync rebuilds the option selectors from the session's answer state,
// keeping the cursor of questions that still exist.
func (s *QuizScreen) Sync() {
	items := s.state.Quiz
	var first *session.QuizItem
	if len(items) > 0 {
		first = &items[0]
	}
	same := first == s.first && len(items) == len(s.choices)
	if !same {
		s.index = 0
	}
	s.first = first

	choices := make([]components.MultiChoice, len(items))
	for i, item := range items {
		mc := components.NewMultiChoice(item.Question, item.Options, item.CorrectAnswerIndex)
		if same {
			mc.Selected = s.choices[i].Selected
		}
		if item.AnswerIndex != nil {
			mc.ChosenIndex = *item.AnswerIndex
		}
		q := i
		mc.OnChoose = func(option int) tea.Cmd {
			return func() tea.Msg { return screen.AnswerQuizMsg{Question: q, Option: option} }
		}
		choices[i] = mc
	}
	s.choices = choices
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "g", Description: s.cat.T(i18n.KeyGenerate)}}
	if len(s.choices) > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓/A-D", Description: s.cat.T(i18n.KeyChoose)},
			layout.KeyHint{Key: "Enter", Description: s.cat.T(i18n.KeyAnswer)},
			layout.KeyHint{Key: "←→", Description: s.cat.T(i18n.KeyQuestion)},
		)
	}
	return hints
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "g":
		return s, screen.RunAction(study.ActionQuiz)
	case "right", "l", "n":
		if s.index < len(s.choices)-1 {
			s.index++
		}
		return s, nil
	case "left", "h", "p":
		if s.index > 0 {
			s.index--
		}
		return s, nil
	}

	if s.index >= len(s.choices) {
		return s, nil
	}
	var cmd tea.Cmd
	s.choices[s.index], cmd = s.choices[s.index].Update(msg)
	return s, cmd
}

func (s *QuizScreen) View(width, height int) string {
	if s.state.Quiz == nil {
		return components.EmptyState(width, height, s.cat.T(i18n.ToolQuiz), s.cat.T(i18n.HintGenerate))
	}
	if len(s.choices) == 0 {
		return components.EmptyState(width, height, s.cat.T(i18n.EmptyQuiz), s.cat.T(i18n.HintGenerate))
	}

	idx := min(s.index, len(s.choices)-1)
	mc := s.choices[idx]
	item := s.state.Quiz[idx]

	var b strings.Builder
	b.WriteString(theme.Hint.Render(s.cat.T(i18n.QuizPosition, strconv.Itoa(idx+1), strconv.Itoa(len(s.choices)))))
	b.WriteString("\n\n")
	b.WriteString(mc.View())

	if item.Answered() {
		b.WriteString("\n")
		textWidth := max(width-8, 20)
		if item.Correct {
			b.WriteString(theme.Correct.Width(textWidth).Render(s.cat.T(i18n.QuizCorrect, item.Explanation)))
		} else {
			b.WriteString(theme.Incorrect.Width(textWidth).Render(s.cat.T(i18n.QuizIncorrect, item.Explanation)))
		}
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
