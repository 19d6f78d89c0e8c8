// Package app is the root Bubble Tea model. It owns the session, routes
// input to the active tool screen and runs study actions in the
// background.
package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/router"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/screens/analyze"
	"github.com/abhisek/studyflow/internal/screens/chat"
	"github.com/abhisek/studyflow/internal/screens/flashcards"
	"github.com/abhisek/studyflow/internal/screens/inputs"
	"github.com/abhisek/studyflow/internal/screens/plan"
	"github.com/abhisek/studyflow/internal/screens/progress"
	"github.com/abhisek/studyflow/internal/screens/quiz"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Service *study.Service
	State   *session.State
	Log     zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	svc    *study.Service
	state  *session.State
	router *router.Router
	log    zerolog.Logger
	now    func() time.Time

	spinning bool
	frame    int

	width  int
	height int
}

var toolLabels = map[session.Tool]i18n.Key{
	session.ToolInputs:     i18n.ToolInputs,
	session.ToolPlan:       i18n.ToolPlan,
	session.ToolAnalyze:    i18n.ToolAnalyze,
	session.ToolFlashcards: i18n.ToolFlashcards,
	session.ToolQuiz:       i18n.ToolQuiz,
	session.ToolChat:       i18n.ToolChat,
	session.ToolProgress:   i18n.ToolProgress,
}

// newAppModel builds the screens for every tool over the shared session.
func newAppModel(ctx context.Context, opts Options) AppModel {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	state := opts.State
	screens := map[session.Tool]screen.Screen{
		session.ToolInputs:     inputs.New(state),
		session.ToolPlan:       plan.New(state),
		session.ToolAnalyze:    analyze.New(state),
		session.ToolFlashcards: flashcards.New(state),
		session.ToolQuiz:       quiz.New(state),
		session.ToolChat:       chat.New(state),
		session.ToolProgress:   progress.New(state, now),
	}
	return AppModel{
		ctx:    ctx,
		svc:    opts.Service,
		state:  state,
		router: router.New(screens, state.Tool),
		log:    opts.Log.With().Str("component", "tui").Logger(),
		now:    now,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if next, cmd, handled := m.handleGlobalKey(msg); handled {
			return next, cmd
		}

	case screen.SelectToolMsg:
		return m.selectTool(msg.Tool)

	case screen.ActionMsg:
		return m.begin(msg.Action)

	case screen.SendChatMsg:
		return m.sendChat(msg.Text)

	case screen.AnswerQuizMsg:
		if _, err := m.state.AnswerQuiz(msg.Question, msg.Option); err != nil {
			m.log.Debug().Err(err).Msg("quiz answer rejected")
		}
		m.router.Sync()
		return m, nil

	case resultMsg:
		return m.applyResult(msg)

	case spinnerTickMsg:
		if !m.state.Loading {
			m.spinning = false
			return m, nil
		}
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, spinnerTick()
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// handleGlobalKey serves the shortcuts available on every screen.
// Printable shortcuts yield to screens that are capturing text.
func (m AppModel) handleGlobalKey(msg tea.KeyPressMsg) (AppModel, tea.Cmd, bool) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit, true
	case "ctrl+r":
		m.state.Reset()
		m.router.Sync()
		return m, m.router.Show(m.state.Tool), true
	case "esc":
		if m.state.Err != "" {
			m.state.DismissError()
			return m, nil, true
		}
		return m, nil, false
	}

	if t, ok := toolForKey(key, m.capturingText()); ok {
		next, cmd := m.selectTool(t)
		return next, cmd, true
	}
	if key == "q" && !m.capturingText() {
		return m, tea.Quit, true
	}
	return m, nil, false
}

func (m AppModel) capturingText() bool {
	c, ok := m.router.Active().(screen.TextCapturer)
	return ok && c.CapturingText()
}

// toolForKey maps F1-F7 and alt+1-7 to tools, and the bare digits when no
// text field has focus.
func toolForKey(key string, capturing bool) (session.Tool, bool) {
	var n int
	switch {
	case strings.HasPrefix(key, "f"):
		n, _ = strconv.Atoi(key[1:])
	case strings.HasPrefix(key, "alt+"):
		n, _ = strconv.Atoi(key[4:])
	case !capturing && len(key) == 1:
		n, _ = strconv.Atoi(key)
	}
	if n < 1 || n > len(session.Tools) {
		return "", false
	}
	return session.Tools[n-1], true
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render draws the full frame. Loading and error overlays replace the
// tool content.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		msg := m.state.Catalog().T(i18n.TerminalTooSmall,
			strconv.Itoa(layout.MinWidth), strconv.Itoa(layout.MinHeight),
			strconv.Itoa(m.width), strconv.Itoa(m.height))
		return layout.RenderMinSizeMessage(msg, m.width, m.height)
	}

	cat := m.state.Catalog()
	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)
	tabs := layout.RenderTabs(m.tabs(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(tabs)-lipgloss.Height(footer), 0)

	var content string
	switch m.state.Phase() {
	case session.PhaseLoading:
		content = m.overlay(theme.Subtitle.Render(spinnerFrames[m.frame]+" "+cat.T(i18n.Loading)), contentHeight)
	case session.PhaseError:
		banner := theme.Banner.Width(min(m.width-8, 72)).Render(m.state.Err)
		content = m.overlay(banner+"\n\n"+theme.Hint.Render(cat.T(i18n.HintDismiss)), contentHeight)
	default:
		content = m.router.View(m.width, contentHeight)
	}

	return layout.RenderFrame(header+"\n"+tabs, content, footer, m.width, m.height)
}

func (m AppModel) overlay(s string, height int) string {
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, s)
}

func (m AppModel) headerStatus() string {
	exam := m.state.Inputs.ExamDate
	if exam.IsZero() {
		return ""
	}
	days := session.DaysRemaining(exam, m.now())
	return fmt.Sprintf("%s: %d", m.state.Catalog().T(i18n.LabelDaysRemaining), days)
}

func (m AppModel) tabs() []layout.Tab {
	cat := m.state.Catalog()
	ready := m.state.Ready()
	tabs := make([]layout.Tab, len(session.Tools))
	for i, t := range session.Tools {
		tabs[i] = layout.Tab{
			Key:    fmt.Sprintf("F%d", i+1),
			Label:  cat.T(toolLabels[t]),
			Active: t == m.router.ActiveTool(),
			Locked: t.NeedsInputs() && !ready,
		}
	}
	return tabs
}

func (m AppModel) footerHints() []layout.KeyHint {
	cat := m.state.Catalog()
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok && m.state.Phase() == session.PhaseIdle {
		hints = append(hints, p.KeyHints()...)
	}
	if m.state.Err != "" {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: cat.T(i18n.KeyDismiss)})
	}
	return append(hints,
		layout.KeyHint{Key: "F1-F7", Description: cat.T(i18n.KeyTools)},
		layout.KeyHint{Key: "Ctrl+R", Description: cat.T(i18n.KeyReset)},
		layout.KeyHint{Key: "Ctrl+C", Description: cat.T(i18n.KeyQuit)},
	)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
