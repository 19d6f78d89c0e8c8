package session

import "time"

// Progress summarizes the session for the progress view.
type Progress struct {
	// DaysRemaining is nil while the exam date is unset.
	DaysRemaining *int
	PlanDays      int
	Flashcards    int
	QuizTotal     int
	QuizAnswered  int
	QuizCorrect   int
}

// CompletionPercent is the share of quiz questions answered, 0-100.
func (p Progress) CompletionPercent() float64 {
	if p.QuizTotal == 0 {
		return 0
	}
	return float64(p.QuizAnswered) / float64(p.QuizTotal) * 100
}

// CorrectPercent is the share of answered questions that were correct.
// ok is false until at least one question is answered.
func (p Progress) CorrectPercent() (pct float64, ok bool) {
	if p.QuizAnswered == 0 {
		return 0, false
	}
	return float64(p.QuizCorrect) / float64(p.QuizAnswered) * 100, true
}

// Progress computes the summary as of now.
func (s *State) Progress(now time.Time) Progress {
	p := Progress{
		PlanDays:   len(s.Plan),
		Flashcards: len(s.Flashcards),
		QuizTotal:  len(s.Quiz),
	}
	if !s.Inputs.ExamDate.IsZero() {
		d := DaysRemaining(s.Inputs.ExamDate, now)
		p.DaysRemaining = &d
	}
	for _, q := range s.Quiz {
		if !q.Answered() {
			continue
		}
		p.QuizAnswered++
		if q.Correct {
			p.QuizCorrect++
		}
	}
	return p
}

// DaysRemaining counts calendar days from now's date to the exam date,
// never below zero.
func DaysRemaining(exam, now time.Time) int {
	ey, em, ed := exam.Date()
	ny, nm, nd := now.Date()
	e := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(n).Hours() / 24)
	return max(days, 0)
}
