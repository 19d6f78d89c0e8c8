package progress

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/ui/components"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// ProgressScreen summarizes the session: days left, plan length,
// flashcards and quiz results.
type ProgressScreen struct {
	state *session.State
	cat   *i18n.Catalog
	now   func() time.Time
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates the progress screen.
func New(state *session.State, now func() time.Time) *ProgressScreen {
	if now == nil {
		now = time.Now
	}
	return &ProgressScreen{state: state, cat: state.Catalog(), now: now}
}

func (s *ProgressScreen) Init() tea.Cmd { return nil }

func (s *ProgressScreen) Title() string {
	return s.cat.T(i18n.ToolProgress)
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *ProgressScreen) View(width, height int) string {
	p := s.state.Progress(s.now())

	days := s.cat.T(i18n.DaysRemainingNone)
	if p.DaysRemaining != nil {
		days = strconv.Itoa(*p.DaysRemaining)
	}

	stat := func(label i18n.Key, value string) string {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Width(28).Render(s.cat.T(label)) +
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(value)
	}

	var b strings.Builder
	b.WriteString(stat(i18n.LabelDaysRemaining, days) + "\n")
	if !s.state.Inputs.ExamDate.IsZero() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(28).Render("") +
			theme.Hint.Render(s.cat.Date(s.state.Inputs.ExamDate)) + "\n")
	}
	b.WriteString(stat(i18n.LabelPlanDays, strconv.Itoa(p.PlanDays)) + "\n")
	b.WriteString(stat(i18n.LabelFlashcards, strconv.Itoa(p.Flashcards)) + "\n\n")

	barWidth := min(width-8, 70)
	b.WriteString(components.NewProgressBar(
		s.cat.T(i18n.LabelQuizProgress),
		p.CompletionPercent()/100,
		fmt.Sprintf("%d/%d  %s", p.QuizAnswered, p.QuizTotal, s.cat.Percent(p.CompletionPercent())),
		barWidth,
	).View())

	if pct, ok := p.CorrectPercent(); ok {
		b.WriteString("\n")
		b.WriteString(components.NewProgressBar(
			s.cat.T(i18n.LabelQuizCorrect),
			pct/100,
			fmt.Sprintf("%d/%d  %s", p.QuizCorrect, p.QuizAnswered, s.cat.Percent(pct)),
			barWidth,
		).View())
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
