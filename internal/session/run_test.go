package session

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/study"
)

func TestRunAndApply_Flashcards(t *testing.T) {
	s := readyState(t)
	provider := llm.NewMockProvider(llm.MockJSON(map[string]any{
		"flashcards": []map[string]string{{"question": "Q", "answer": "A"}},
	}))
	svc := study.NewService(provider, study.DefaultConfig(), s.Catalog(), zerolog.Nop())

	ticket, err := s.Begin(study.ActionFlashcards)
	if err != nil {
		t.Fatal(err)
	}
	value, err := Run(context.Background(), svc, ticket, s.Inputs)
	if !s.Apply(ticket, value, err) {
		t.Fatal("expected result to apply")
	}
	if len(s.Flashcards) != 1 || s.Tool != ToolFlashcards {
		t.Errorf("expected 1 flashcard shown, got %d on %s", len(s.Flashcards), s.Tool)
	}
}

func TestRun_ChatStart(t *testing.T) {
	s := newState(t)
	svc := study.NewService(llm.NewMockProvider(), study.DefaultConfig(), s.Catalog(), zerolog.Nop())

	ticket, err := s.Begin(study.ActionChatStart)
	if err != nil {
		t.Fatal(err)
	}
	value, err := Run(context.Background(), svc, ticket, s.Inputs)
	if !s.Apply(ticket, value, err) {
		t.Fatal("expected assistant start to apply")
	}
	if s.Conversation == nil || len(s.Transcript) != 1 {
		t.Errorf("expected conversation with greeting, got %+v", s.Transcript)
	}
}

func TestRun_UnknownAction(t *testing.T) {
	s := newState(t)
	svc := study.NewService(llm.NewMockProvider(), study.DefaultConfig(), s.Catalog(), zerolog.Nop())

	_, err := Run(context.Background(), svc, Ticket{Action: study.ActionChatSend}, s.Inputs)
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("expected ErrUnknownAction, got %v", err)
	}
}

func TestApply_ErrorAndStale(t *testing.T) {
	s := readyState(t)

	ticket, _ := s.Begin(study.ActionQuiz)
	if !s.Apply(ticket, nil, errors.New("boom")) {
		t.Fatal("expected failure to apply")
	}
	if s.Err != "boom" || s.Loading {
		t.Errorf("expected banner and idle, got err=%q loading=%v", s.Err, s.Loading)
	}

	if s.Apply(ticket, []study.QuizQuestion{}, nil) {
		t.Error("expected a finished ticket to be stale")
	}
}

func TestApply_UnexpectedValueFails(t *testing.T) {
	s := readyState(t)

	ticket, _ := s.Begin(study.ActionPlan)
	if !s.Apply(ticket, 42, nil) {
		t.Fatal("expected the action to finish")
	}
	if _, busy := s.InFlight(); s.Err == "" || busy {
		t.Errorf("expected a failed, idle session")
	}
}
