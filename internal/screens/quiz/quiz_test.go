package quiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
)

func quizState() *session.State {
	state := session.New(i18n.MustNew("en"))
	state.Quiz = []session.QuizItem{
		{QuizQuestion: study.QuizQuestion{Question: "First?", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 2, Explanation: "Because c."}},
		{QuizQuestion: study.QuizQuestion{Question: "Second?", Options: []string{"w", "x", "y", "z"}, CorrectAnswerIndex: 0}},
	}
	return state
}

func TestChooseEmitsAnswer(t *testing.T) {
	s := New(quizState())

	s.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(screen.AnswerQuizMsg)
	if !ok {
		t.Fatalf("expected AnswerQuizMsg, got %T", cmd())
	}
	if msg.Question != 0 || msg.Option != 2 {
		t.Errorf("expected question 0 option 2, got %+v", msg)
	}
}

func TestSyncShowsAnswerState(t *testing.T) {
	state := quizState()
	s := New(state)

	if _, err := state.AnswerQuiz(0, 2); err != nil {
		t.Fatal(err)
	}
	s.Sync()

	if !s.choices[0].Answered() {
		t.Error("expected answered choice after sync")
	}
	if v := s.View(80, 30); !strings.Contains(v, "Because c.") {
		t.Errorf("expected explanation in view, got %q", v)
	}

	// Answered questions ignore further keys.
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command on an answered question")
	}
}

func TestSyncKeepsPositionForSameQuiz(t *testing.T) {
	state := quizState()
	s := New(state)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s.Sync()
	if s.index != 1 {
		t.Errorf("expected index 1 kept, got %d", s.index)
	}

	state.Quiz = []session.QuizItem{{QuizQuestion: study.QuizQuestion{Question: "New?", Options: []string{"a", "b"}}}}
	s.Sync()
	if s.index != 0 {
		t.Errorf("expected index reset for a new quiz, got %d", s.index)
	}
}

func TestNoQuizYet(t *testing.T) {
	s := New(session.New(i18n.MustNew("en")))
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected no command without a quiz")
	}
}
