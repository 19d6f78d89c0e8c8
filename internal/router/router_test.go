package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/session"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title     string
	initCount int
	synced    int
	lastMsg   tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initCount++
	return nil
}
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.lastMsg = msg
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

type syncingScreen struct{ stubScreen }

func (s *syncingScreen) Sync() { s.synced++ }

func newTestRouter() (*Router, *stubScreen, *stubScreen) {
	inputs := &stubScreen{title: "inputs"}
	plan := &stubScreen{title: "plan"}
	r := New(map[session.Tool]screen.Screen{
		session.ToolInputs: inputs,
		session.ToolPlan:   plan,
	}, session.ToolInputs)
	return r, inputs, plan
}

func TestInitShowsInitial(t *testing.T) {
	r, inputs, _ := newTestRouter()
	r.Init()

	if r.ActiveTool() != session.ToolInputs {
		t.Errorf("expected inputs active, got %s", r.ActiveTool())
	}
	if inputs.initCount != 1 {
		t.Errorf("expected Init() once, got %d", inputs.initCount)
	}
}

func TestShowInitsOnce(t *testing.T) {
	r, _, plan := newTestRouter()
	r.Init()

	r.Show(session.ToolPlan)
	r.Show(session.ToolInputs)
	r.Show(session.ToolPlan)

	if r.Active().Title() != "plan" {
		t.Errorf("expected active 'plan', got %q", r.Active().Title())
	}
	if plan.initCount != 1 {
		t.Errorf("expected Init() once, got %d", plan.initCount)
	}
}

func TestShowUnknownToolIgnored(t *testing.T) {
	r, _, _ := newTestRouter()
	r.Init()

	if cmd := r.Show(session.ToolQuiz); cmd != nil {
		t.Error("expected nil cmd for unknown tool")
	}
	if r.ActiveTool() != session.ToolInputs {
		t.Errorf("active tool changed to %s", r.ActiveTool())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	r, inputs, plan := newTestRouter()
	r.Init()
	r.Show(session.ToolPlan)

	msg := tea.KeyPressMsg{Code: 'g', Text: "g"}
	r.Update(msg)

	if plan.lastMsg == nil {
		t.Error("expected active screen to receive the message")
	}
	if inputs.lastMsg != nil {
		t.Error("inactive screen must not receive messages")
	}
}

func TestSync(t *testing.T) {
	quiz := &syncingScreen{stubScreen{title: "quiz"}}
	r := New(map[session.Tool]screen.Screen{
		session.ToolInputs: &stubScreen{title: "inputs"},
		session.ToolQuiz:   quiz,
	}, session.ToolInputs)

	r.Sync()
	r.Sync()

	if quiz.synced != 2 {
		t.Errorf("expected 2 syncs, got %d", quiz.synced)
	}
}

func TestView(t *testing.T) {
	r, _, _ := newTestRouter()
	if got := r.View(80, 24); got != "inputs" {
		t.Errorf("View() = %q", got)
	}
}
