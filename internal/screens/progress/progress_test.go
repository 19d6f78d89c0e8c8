package progress

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
)

func TestViewCounts(t *testing.T) {
	state := session.New(i18n.MustNew("en"))
	_ = state.SetExamDate("2026-03-15")
	state.Plan = make([]study.PlanEntry, 4)
	state.Flashcards = make([]study.Flashcard, 7)
	state.Quiz = []session.QuizItem{
		{QuizQuestion: study.QuizQuestion{Options: []string{"a", "b"}, CorrectAnswerIndex: 1}},
		{QuizQuestion: study.QuizQuestion{Options: []string{"a", "b"}, CorrectAnswerIndex: 0}},
	}
	_, _ = state.AnswerQuiz(0, 1)

	now := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	v := New(state, now).View(100, 30)

	for _, want := range []string{"5", "4", "7", "1/2"} {
		if !strings.Contains(v, want) {
			t.Errorf("expected %q in progress view", want)
		}
	}
	if !strings.Contains(v, state.Catalog().T(i18n.LabelQuizCorrect)) {
		t.Error("expected correct-rate bar once a question is answered")
	}
}

func TestViewUnsetExam(t *testing.T) {
	state := session.New(i18n.MustNew("en"))
	v := New(state, nil).View(100, 30)

	if !strings.Contains(v, state.Catalog().T(i18n.DaysRemainingNone)) {
		t.Error("expected placeholder for unset exam date")
	}
	if strings.Contains(v, state.Catalog().T(i18n.LabelQuizCorrect)) {
		t.Error("expected no correct-rate bar before any answer")
	}
}
