package server

import (
	"time"

	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
)

// SessionView is the JSON rendering of a session.
type SessionView struct {
	ID          string              `json:"id"`
	Tool        session.Tool        `json:"tool"`
	Phase       string              `json:"phase"`
	Error       string              `json:"error,omitempty"`
	Ready       bool                `json:"ready"`
	Inputs      InputsView          `json:"inputs"`
	Plan        []study.PlanEntry   `json:"plan"`
	Analysis    *study.Analysis     `json:"analysis"`
	Flashcards  []study.Flashcard   `json:"flashcards"`
	Quiz        []QuizItemView      `json:"quiz"`
	ChatStarted bool                `json:"chatStarted"`
	Transcript  []study.ChatMessage `json:"transcript"`
	Progress    ProgressView        `json:"progress"`
}

// InputsView mirrors session.Inputs with unset values as null.
type InputsView struct {
	Subject     string  `json:"subject"`
	ExamDate    *string `json:"examDate"`
	WeeklyHours *int    `json:"weeklyHours"`
	Notes       string  `json:"notes"`
}

// QuizItemView is a quiz question with its answer state.
type QuizItemView struct {
	study.QuizQuestion
	AnswerIndex *int  `json:"answerIndex"`
	Correct     *bool `json:"correct"`
}

// ProgressView is the progress summary.
type ProgressView struct {
	DaysRemaining     *int     `json:"daysRemaining"`
	PlanDays          int      `json:"planDays"`
	Flashcards        int      `json:"flashcards"`
	QuizTotal         int      `json:"quizTotal"`
	QuizAnswered      int      `json:"quizAnswered"`
	QuizCorrect       int      `json:"quizCorrect"`
	CompletionPercent float64  `json:"completionPercent"`
	CorrectPercent    *float64 `json:"correctPercent"`
}

func newSessionView(id string, s *session.State, now time.Time) SessionView {
	v := SessionView{
		ID:          id,
		Tool:        s.Tool,
		Phase:       s.Phase().String(),
		Error:       s.Err,
		Ready:       s.Ready(),
		Plan:        s.Plan,
		Analysis:    s.Analysis,
		Flashcards:  s.Flashcards,
		ChatStarted: s.Conversation != nil,
		Transcript:  s.Transcript,
		Progress:    newProgressView(s.Progress(now)),
		Inputs: InputsView{
			Subject:     s.Inputs.Subject,
			WeeklyHours: s.Inputs.WeeklyHours,
			Notes:       s.Inputs.Notes,
		},
	}
	if !s.Inputs.ExamDate.IsZero() {
		d := s.Inputs.ExamDate.Format(study.DateLayout)
		v.Inputs.ExamDate = &d
	}
	if s.Quiz != nil {
		v.Quiz = make([]QuizItemView, len(s.Quiz))
		for i, q := range s.Quiz {
			item := QuizItemView{QuizQuestion: q.QuizQuestion, AnswerIndex: q.AnswerIndex}
			if q.Answered() {
				correct := q.Correct
				item.Correct = &correct
			}
			v.Quiz[i] = item
		}
	}
	return v
}

func newProgressView(p session.Progress) ProgressView {
	v := ProgressView{
		DaysRemaining:     p.DaysRemaining,
		PlanDays:          p.PlanDays,
		Flashcards:        p.Flashcards,
		QuizTotal:         p.QuizTotal,
		QuizAnswered:      p.QuizAnswered,
		QuizCorrect:       p.QuizCorrect,
		CompletionPercent: p.CompletionPercent(),
	}
	if pct, ok := p.CorrectPercent(); ok {
		v.CorrectPercent = &pct
	}
	return v
}
