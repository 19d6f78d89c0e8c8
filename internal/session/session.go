package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/study"
)

var (
	// ErrToolLocked is returned when selecting a tool before inputs are complete.
	ErrToolLocked = errors.New("tool requires completed inputs")

	// ErrBusy is returned when an action is started while another is in flight.
	ErrBusy = errors.New("a request is already in progress")

	// ErrNoConversation is returned when sending before the assistant started.
	ErrNoConversation = errors.New("study assistant not started")

	// ErrChatStarted is returned when starting an assistant that already runs.
	ErrChatStarted = errors.New("study assistant already started")

	// ErrUnknownAction is returned by Begin for actions it does not serve.
	ErrUnknownAction = errors.New("unknown action")
)

// SetWeeklyHours stores the weekly hour budget, clamping negatives to 0.
func (s *State) SetWeeklyHours(h int) {
	h = max(h, 0)
	s.Inputs.WeeklyHours = &h
}

// ClearWeeklyHours returns the hour budget to its unset state.
func (s *State) ClearWeeklyHours() {
	s.Inputs.WeeklyHours = nil
}

// SetExamDate parses a YYYY-MM-DD date. An empty string clears it.
func (s *State) SetExamDate(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		s.Inputs.ExamDate = time.Time{}
		return nil
	}
	d, err := time.Parse(study.DateLayout, v)
	if err != nil {
		return fmt.Errorf("exam date %q: want YYYY-MM-DD", v)
	}
	s.Inputs.ExamDate = d
	return nil
}

// Ready reports whether the inputs unlock the tools.
func (s *State) Ready() bool {
	return s.Inputs.Ready()
}

// Select switches the active tool. Tools other than inputs and chat are
// refused until the inputs are complete.
func (s *State) Select(t Tool) error {
	if t.NeedsInputs() && !s.Ready() {
		return ErrToolLocked
	}
	s.Tool = t
	return nil
}

// GoToTools leaves the inputs view for the study plan.
func (s *State) GoToTools() error {
	return s.Select(ToolPlan)
}

// ChatNeedsStart reports whether the chat view is active without an
// assistant, so the front end should begin ActionChatStart.
func (s *State) ChatNeedsStart() bool {
	return s.Tool == ToolChat && s.Conversation == nil && !s.Loading
}

// Begin starts a generation action or the assistant start. It fails with
// ErrBusy while another action is in flight, and with a
// *study.ValidationError, shown in the banner, when the inputs the action
// needs are missing.
func (s *State) Begin(action study.Action) (Ticket, error) {
	if s.inflight != nil {
		return Ticket{}, ErrBusy
	}

	switch action {
	case study.ActionPlan:
		if !s.Ready() {
			return Ticket{}, s.reject(action)
		}
	case study.ActionAnalysis, study.ActionFlashcards, study.ActionQuiz:
		if strings.TrimSpace(s.Inputs.Notes) == "" {
			return Ticket{}, s.reject(action)
		}
	case study.ActionChatStart:
		if s.Conversation != nil {
			return Ticket{}, ErrChatStarted
		}
	default:
		return Ticket{}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	return s.start(action), nil
}

// BeginChatMessage appends the user's message to the transcript and starts
// the send. Blank text returns study.ErrEmptyMessage and changes nothing.
func (s *State) BeginChatMessage(text string) (Ticket, error) {
	if strings.TrimSpace(text) == "" {
		return Ticket{}, study.ErrEmptyMessage
	}
	if s.Conversation == nil {
		return Ticket{}, ErrNoConversation
	}
	if s.inflight != nil {
		return Ticket{}, ErrBusy
	}

	s.Transcript = append(s.Transcript, study.ChatMessage{Role: study.RoleUser, Content: text})
	return s.start(study.ActionChatSend), nil
}

func (s *State) start(action study.Action) Ticket {
	s.seq++
	t := Ticket{Seq: s.seq, Action: action}
	s.inflight = &t
	s.Loading = true
	s.Err = ""
	return t
}

func (s *State) reject(action study.Action) error {
	ve := study.NewValidationError(s.cat, action)
	s.Err = ve.Message
	return ve
}

// finish clears the in-flight ticket if t is current.
func (s *State) finish(t Ticket) bool {
	if s.inflight == nil || *s.inflight != t {
		return false
	}
	s.inflight = nil
	s.Loading = false
	return true
}

// Fail records a failed action in the banner. Stale tickets are ignored.
func (s *State) Fail(t Ticket, err error) bool {
	if !s.finish(t) {
		return false
	}
	s.Err = err.Error()
	return true
}

// CompletePlan replaces the study plan and shows it.
func (s *State) CompletePlan(t Ticket, plan []study.PlanEntry) bool {
	if t.Action != study.ActionPlan || !s.finish(t) {
		return false
	}
	s.Plan = plan
	s.Tool = ToolPlan
	return true
}

// CompleteAnalysis replaces the analysis and shows it.
func (s *State) CompleteAnalysis(t Ticket, a study.Analysis) bool {
	if t.Action != study.ActionAnalysis || !s.finish(t) {
		return false
	}
	s.Analysis = &a
	s.Tool = ToolAnalyze
	return true
}

// CompleteFlashcards replaces the flashcards and shows them.
func (s *State) CompleteFlashcards(t Ticket, cards []study.Flashcard) bool {
	if t.Action != study.ActionFlashcards || !s.finish(t) {
		return false
	}
	s.Flashcards = cards
	s.Tool = ToolFlashcards
	return true
}

// CompleteQuiz replaces the quiz, discarding all previous answers.
func (s *State) CompleteQuiz(t Ticket, questions []study.QuizQuestion) bool {
	if t.Action != study.ActionQuiz || !s.finish(t) {
		return false
	}
	items := make([]QuizItem, len(questions))
	for i, q := range questions {
		items[i] = QuizItem{QuizQuestion: q}
	}
	s.Quiz = items
	s.Tool = ToolQuiz
	return true
}

// CompleteChatStart stores the conversation and seeds the transcript with
// the assistant's greeting.
func (s *State) CompleteChatStart(t Ticket, conv *study.Conversation) bool {
	if t.Action != study.ActionChatStart || !s.finish(t) {
		return false
	}
	s.Conversation = conv
	s.Transcript = []study.ChatMessage{{Role: study.RoleAssistant, Content: s.cat.T(i18n.ChatGreeting)}}
	s.Tool = ToolChat
	return true
}

// CompleteChatMessage appends the assistant's reply.
func (s *State) CompleteChatMessage(t Ticket, reply string) bool {
	if t.Action != study.ActionChatSend || !s.finish(t) {
		return false
	}
	s.Transcript = append(s.Transcript, study.ChatMessage{Role: study.RoleAssistant, Content: reply})
	return true
}

// AnswerQuiz records option as the answer to question q. Answers are
// final: answering again returns false and changes nothing.
func (s *State) AnswerQuiz(q, option int) (bool, error) {
	if q < 0 || q >= len(s.Quiz) {
		return false, fmt.Errorf("question %d out of range [0, %d)", q, len(s.Quiz))
	}
	item := &s.Quiz[q]
	if option < 0 || option >= len(item.Options) {
		return false, fmt.Errorf("option %d out of range [0, %d)", option, len(item.Options))
	}
	if item.Answered() {
		return false, nil
	}
	item.AnswerIndex = &option
	item.Correct = option == item.CorrectAnswerIndex
	return true, nil
}

// DismissError clears the banner.
func (s *State) DismissError() {
	s.Err = ""
}

// Reset discards inputs, artifacts and the assistant. A result still in
// flight is dropped when it arrives.
func (s *State) Reset() {
	seq := s.seq
	*s = State{Tool: ToolInputs, cat: s.cat, seq: seq}
}
