package session

import (
	"context"
	"fmt"

	"github.com/abhisek/studyflow/internal/study"
)

// Run performs the generation action or assistant start named by t. It
// reads only in, so callers run it without holding the session.
func Run(ctx context.Context, svc *study.Service, t Ticket, in Inputs) (any, error) {
	switch t.Action {
	case study.ActionPlan:
		return svc.GenerateStudyPlan(ctx, in.Subject, in.ExamDate, in.Hours(), in.Notes)
	case study.ActionAnalysis:
		return svc.AnalyzeMaterial(ctx, in.Notes)
	case study.ActionFlashcards:
		return svc.GenerateFlashcards(ctx, in.Notes)
	case study.ActionQuiz:
		return svc.GenerateQuiz(ctx, in.Notes)
	case study.ActionChatStart:
		return svc.StartChat(ctx)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAction, t.Action)
}

// Apply hands a finished action to Fail or the matching Complete method.
// It reports false when the ticket is stale. A value of an unexpected type
// fails the action.
func (s *State) Apply(t Ticket, value any, err error) bool {
	if err != nil {
		return s.Fail(t, err)
	}
	switch v := value.(type) {
	case []study.PlanEntry:
		return s.CompletePlan(t, v)
	case study.Analysis:
		return s.CompleteAnalysis(t, v)
	case []study.Flashcard:
		return s.CompleteFlashcards(t, v)
	case []study.QuizQuestion:
		return s.CompleteQuiz(t, v)
	case *study.Conversation:
		return s.CompleteChatStart(t, v)
	case string:
		return s.CompleteChatMessage(t, v)
	}
	return s.Fail(t, fmt.Errorf("unexpected %T result for %s", value, t.Action))
}
