package session

import (
	"testing"
	"time"

	"github.com/abhisek/studyflow/internal/study"
)

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, time.March, 10, 18, 45, 0, 0, time.UTC)

	tests := []struct {
		name string
		exam time.Time
		want int
	}{
		{"today", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 0},
		{"in five days", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 5},
		{"past", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 0},
		{"across month", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.exam, now); got != tt.want {
				t.Errorf("DaysRemaining = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	s := readyState(t)
	now := time.Date(2026, time.March, 27, 9, 0, 0, 0, time.UTC)

	p := s.Progress(now)
	if p.DaysRemaining == nil || *p.DaysRemaining != 5 {
		t.Errorf("DaysRemaining = %v, want 5", p.DaysRemaining)
	}
	if _, ok := p.CorrectPercent(); ok {
		t.Error("correct percent must be unavailable before any answer")
	}
	if p.CompletionPercent() != 0 {
		t.Errorf("CompletionPercent = %f", p.CompletionPercent())
	}

	s.Plan = make([]study.PlanEntry, 4)
	s.Flashcards = make([]study.Flashcard, 7)
	tk, _ := s.Begin(study.ActionQuiz)
	opts := []string{"a", "b", "c", "d"}
	s.CompleteQuiz(tk, []study.QuizQuestion{
		{Options: opts, CorrectAnswerIndex: 0},
		{Options: opts, CorrectAnswerIndex: 1},
		{Options: opts, CorrectAnswerIndex: 2},
		{Options: opts, CorrectAnswerIndex: 3},
	})
	s.AnswerQuiz(0, 0)
	s.AnswerQuiz(1, 3)

	p = s.Progress(now)
	if p.PlanDays != 4 || p.Flashcards != 7 || p.QuizTotal != 4 {
		t.Errorf("counts = %+v", p)
	}
	if p.QuizAnswered != 2 || p.QuizCorrect != 1 {
		t.Errorf("answered=%d correct=%d", p.QuizAnswered, p.QuizCorrect)
	}
	if p.CompletionPercent() != 50 {
		t.Errorf("CompletionPercent = %f, want 50", p.CompletionPercent())
	}
	if pct, ok := p.CorrectPercent(); !ok || pct != 50 {
		t.Errorf("CorrectPercent = %f, %v", pct, ok)
	}
}

func TestProgress_NoExamDate(t *testing.T) {
	s := newState(t)
	if p := s.Progress(time.Now()); p.DaysRemaining != nil {
		t.Errorf("DaysRemaining = %d, want nil", *p.DaysRemaining)
	}
}
