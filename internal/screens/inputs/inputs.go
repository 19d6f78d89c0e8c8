package inputs

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textarea"
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

type field int

const (
	fieldSubject field = iota
	fieldDate
	fieldHours
	fieldNotes
	fieldGo
	fieldCount
)

// InputsScreen is the study-inputs form. Every edit is written straight
// into the session so the ready flag is always current.
type InputsScreen struct {
	state *session.State
	cat   *i18n.Catalog

	subject components.TextInput
	date    components.TextInput
	hours   components.TextInput
	notes   textarea.Model
	focus   field
}

var (
	_ screen.Screen          = (*InputsScreen)(nil)
	_ screen.KeyHintProvider = (*InputsScreen)(nil)
	_ screen.Syncer          = (*InputsScreen)(nil)
	_ screen.TextCapturer    = (*InputsScreen)(nil)
)

// New creates the form, prefilled from the session.
func New(state *session.State) *InputsScreen {
	s := &InputsScreen{
		state:   state,
		cat:     state.Catalog(),
		subject: components.NewTextInput("Biology", false, 120),
		date:    components.NewTextInput(study.DateLayout, false, 10),
		hours:   components.NewTextInput("10", true, 3),
		notes:   textarea.New(),
	}
	s.notes.ShowLineNumbers = false
	s.notes.CharLimit = 0
	s.Sync()
	return s
}

func (s *InputsScreen) Init() tea.Cmd {
	return s.focusField(fieldSubject)
}

func (s *InputsScreen) Title() string {
	return s.cat.T(i18n.ToolInputs)
}

func (s *InputsScreen) CapturingText() bool {
	return s.focus != fieldGo
}

func (s *InputsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: s.cat.T(i18n.KeyNextField)},
		{Key: "Shift+Tab", Description: s.cat.T(i18n.KeyPrevField)},
	}
	if s.focus == fieldGo {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.cat.T(i18n.GoToTools)})
	}
	return hints
}

// Sync reloads the widgets from the session, e.g. after a reset.
func (s *InputsScreen) Sync() {
	in := s.state.Inputs
	s.subject.SetValue(in.Subject)
	if in.ExamDate.IsZero() {
		s.date.SetValue("")
	} else {
		s.date.SetValue(in.ExamDate.Format(study.DateLayout))
	}
	s.date.SetInvalid(false)
	if in.WeeklyHours == nil {
		s.hours.SetValue("")
	} else {
		s.hours.SetValue(strconv.Itoa(*in.WeeklyHours))
	}
	if s.notes.Value() != in.Notes {
		s.notes.SetValue(in.Notes)
	}
}

func (s *InputsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab":
			return s, s.focusField((s.focus + 1) % fieldCount)
		case "shift+tab":
			return s, s.focusField((s.focus + fieldCount - 1) % fieldCount)
		case "enter":
			switch s.focus {
			case fieldGo:
				if s.state.Ready() {
					return s, screen.SelectTool(session.ToolPlan)
				}
				return s, nil
			case fieldSubject, fieldDate, fieldHours:
				return s, s.focusField(s.focus + 1)
			}
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldSubject:
		s.subject, cmd = s.subject.Update(msg)
	case fieldDate:
		s.date, cmd = s.date.Update(msg)
	case fieldHours:
		s.hours, cmd = s.hours.Update(msg)
	case fieldNotes:
		s.notes, cmd = s.notes.Update(msg)
	}
	s.apply()
	return s, cmd
}

// apply copies the widget values into the session.
func (s *InputsScreen) apply() {
	s.state.Inputs.Subject = s.subject.Value()
	s.date.SetInvalid(s.state.SetExamDate(s.date.Value()) != nil && len(s.date.Value()) >= len(study.DateLayout))

	if h, err := strconv.Atoi(strings.TrimSpace(s.hours.Value())); err == nil {
		s.state.SetWeeklyHours(h)
	} else {
		s.state.ClearWeeklyHours()
	}

	s.state.Inputs.Notes = s.notes.Value()
}

func (s *InputsScreen) focusField(f field) tea.Cmd {
	s.subject.Blur()
	s.date.Blur()
	s.hours.Blur()
	s.notes.Blur()
	s.focus = f

	switch f {
	case fieldSubject:
		return s.subject.Focus()
	case fieldDate:
		return s.date.Focus()
	case fieldHours:
		return s.hours.Focus()
	case fieldNotes:
		return s.notes.Focus()
	}
	return nil
}

func (s *InputsScreen) View(width, height int) string {
	formWidth := min(width-4, 100)
	s.notes.SetWidth(formWidth)
	s.notes.SetHeight(max(height-14, 3))

	label := func(f field, key i18n.Key) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if s.focus == f {
			style = theme.Selected
		}
		return style.Render(s.cat.T(key))
	}

	var b strings.Builder
	b.WriteString(label(fieldSubject, i18n.LabelSubject) + "\n" + s.subject.View() + "\n\n")

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		label(fieldDate, i18n.LabelExamDate)+"\n"+s.date.View(),
		"      ",
		label(fieldHours, i18n.LabelWeeklyHours)+"\n"+s.hours.View(),
	)
	b.WriteString(row + "\n\n")

	b.WriteString(label(fieldNotes, i18n.LabelNotes) + "\n" + s.notes.View() + "\n\n")

	btn := components.NewButton(s.cat.T(i18n.GoToTools), s.state.Ready(), nil)
	btn.Focused = s.focus == fieldGo
	b.WriteString(btn.View())
	if !s.state.Ready() {
		b.WriteString("  " + theme.Hint.Render(s.cat.T(i18n.InputsFirst)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
