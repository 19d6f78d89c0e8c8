package plan

import (
	"fmt"
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

// PlanScreen shows the day-by-day study plan.
type PlanScreen struct {
	state  *session.State
	cat    *i18n.Catalog
	offset int
}

var (
	_ screen.Screen          = (*PlanScreen)(nil)
	_ screen.KeyHintProvider = (*PlanScreen)(nil)
	_ screen.Syncer          = (*PlanScreen)(nil)
)

// New creates the plan screen.
func New(state *session.State) *PlanScreen {
	return &PlanScreen{state: state, cat: state.Catalog()}
}

func (s *PlanScreen) Init() tea.Cmd { return nil }

func (s *PlanScreen) Title() string {
	return s.cat.T(i18n.ToolPlan)
}

// Sync scrolls back to the top when a new plan arrives.
func (s *PlanScreen) Sync() {
	s.offset = 0
}

func (s *PlanScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "g", Description: s.cat.T(i18n.KeyGenerate)}}
	if len(s.state.Plan) > 0 {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: s.cat.T(i18n.KeyScroll)})
	}
	return hints
}

func (s *PlanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "g":
		return s, screen.RunAction(study.ActionPlan)
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "pgdown":
		s.offset += 10
	}
	return s, nil
}

func (s *PlanScreen) View(width, height int) string {
	if len(s.state.Plan) == 0 {
		return components.EmptyState(width, height, s.cat.T(i18n.EmptyPlan), s.cat.T(i18n.HintGenerate))
	}

	text := renderPlan(s.cat, s.state.Plan, width-4)
	text, s.offset = layout.Window(text, s.offset, height-2)
	return lipgloss.NewStyle().Padding(1, 2).Render(text)
}

func renderPlan(cat *i18n.Catalog, plan []study.PlanEntry, width int) string {
	var b strings.Builder
	for i, e := range plan {
		if i > 0 {
			b.WriteString("\n")
		}
		day := cat.T(i18n.LabelDay, strconv.Itoa(e.Day))
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %s", day, e.Date)))
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(e.Topic))
		b.WriteString("\n")
		b.WriteString(components.Bullets(e.Activities, width))
	}
	return strings.TrimRight(b.String(), "\n")
}
