package study

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/llm"
)

var (
	validationKeys = map[Action]i18n.Key{
		ActionPlan:       i18n.ValidationPlan,
		ActionAnalysis:   i18n.ValidationAnalysis,
		ActionFlashcards: i18n.ValidationFlashcards,
		ActionQuiz:       i18n.ValidationQuiz,
	}
	transportKeys = map[Action]i18n.Key{
		ActionPlan:       i18n.TransportPlan,
		ActionAnalysis:   i18n.TransportAnalysis,
		ActionFlashcards: i18n.TransportFlashcards,
		ActionQuiz:       i18n.TransportQuiz,
		ActionChatStart:  i18n.TransportChatStart,
		ActionChatSend:   i18n.TransportChatSend,
	}
	invalidKeys = map[Action]i18n.Key{
		ActionPlan:       i18n.InvalidPlan,
		ActionAnalysis:   i18n.InvalidAnalysis,
		ActionFlashcards: i18n.InvalidFlashcards,
		ActionQuiz:       i18n.InvalidQuiz,
	}
	purposes = map[Action]string{
		ActionPlan:       llm.PurposeStudyPlan,
		ActionAnalysis:   llm.PurposeAnalysis,
		ActionFlashcards: llm.PurposeFlashcards,
		ActionQuiz:       llm.PurposeQuiz,
	}
)

// Service builds prompts, calls the provider and decodes the results.
// It holds no per-user state; conversations are returned to the caller.
type Service struct {
	provider llm.Provider
	cfg      Config
	cat      *i18n.Catalog
	log      zerolog.Logger
	now      func() time.Time
}

// NewService creates a content service.
func NewService(provider llm.Provider, cfg Config, cat *i18n.Catalog, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		cat:      cat,
		log:      log.With().Str("component", "study").Logger(),
		now:      time.Now,
	}
}

// Catalog returns the message catalog used for errors.
func (s *Service) Catalog() *i18n.Catalog {
	return s.cat
}

// GenerateStudyPlan asks for a day-by-day plan from today up to, but not
// including, examDate. Entries dated outside that window are dropped.
func (s *Service) GenerateStudyPlan(ctx context.Context, subject string, examDate time.Time, weeklyHours int, notes string) ([]PlanEntry, error) {
	if blank(subject) || examDate.IsZero() || weeklyHours < 0 || blank(notes) {
		return nil, s.validation(ActionPlan)
	}

	today := civilDate(s.now())
	exam := civilDate(examDate)

	raw, err := s.generate(ctx, ActionPlan, buildPlanPrompt(subject, exam, today, weeklyHours, notes), PlanSchema)
	if err != nil {
		return nil, err
	}

	var out struct {
		Plan []PlanEntry `json:"plan"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, s.invalid(ActionPlan, raw, nil, err)
	}

	plan := make([]PlanEntry, 0, len(out.Plan))
	for i, entry := range out.Plan {
		d, err := time.Parse(DateLayout, entry.Date)
		if err != nil {
			field := fmt.Sprintf("/plan/%d/date", i)
			return nil, s.invalid(ActionPlan, raw, []string{field}, &errDomain{field: field, reason: "not a YYYY-MM-DD date"})
		}
		if d.Before(today) || !d.Before(exam) {
			s.log.Debug().Str("date", entry.Date).Int("day", entry.Day).Msg("dropping plan entry outside study window")
			continue
		}
		if entry.Activities == nil {
			entry.Activities = []string{}
		}
		plan = append(plan, entry)
	}

	if len(plan) == 0 {
		return nil, s.invalid(ActionPlan, raw, []string{"/plan"}, &errDomain{field: "/plan", reason: "no entries within study window"})
	}
	return plan, nil
}

// AnalyzeMaterial extracts key concepts and subtopics from the notes.
func (s *Service) AnalyzeMaterial(ctx context.Context, notes string) (Analysis, error) {
	if blank(notes) {
		return Analysis{}, s.validation(ActionAnalysis)
	}

	raw, err := s.generate(ctx, ActionAnalysis, buildAnalysisPrompt(notes), AnalysisSchema)
	if err != nil {
		return Analysis{}, err
	}

	var out Analysis
	if err := json.Unmarshal(raw, &out); err != nil {
		return Analysis{}, s.invalid(ActionAnalysis, raw, nil, err)
	}
	if out.KeyConcepts == nil {
		out.KeyConcepts = []string{}
	}
	if out.Subtopics == nil {
		out.Subtopics = []string{}
	}
	return out, nil
}

// GenerateFlashcards asks for 5-10 flashcards. The count is not enforced.
func (s *Service) GenerateFlashcards(ctx context.Context, notes string) ([]Flashcard, error) {
	if blank(notes) {
		return nil, s.validation(ActionFlashcards)
	}

	raw, err := s.generate(ctx, ActionFlashcards, buildFlashcardsPrompt(notes), FlashcardsSchema)
	if err != nil {
		return nil, err
	}

	var out struct {
		Flashcards []Flashcard `json:"flashcards"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, s.invalid(ActionFlashcards, raw, nil, err)
	}
	if out.Flashcards == nil {
		out.Flashcards = []Flashcard{}
	}
	return out.Flashcards, nil
}

// GenerateQuiz asks for 10 questions with 4 options each. Counts are not
// enforced, but every correctAnswerIndex must name one of its options.
func (s *Service) GenerateQuiz(ctx context.Context, notes string) ([]QuizQuestion, error) {
	if blank(notes) {
		return nil, s.validation(ActionQuiz)
	}

	raw, err := s.generate(ctx, ActionQuiz, buildQuizPrompt(notes), QuizSchema)
	if err != nil {
		return nil, err
	}

	var out struct {
		Questions []QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, s.invalid(ActionQuiz, raw, nil, err)
	}

	var bad []string
	for i, q := range out.Questions {
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
			bad = append(bad, fmt.Sprintf("/questions/%d/correctAnswerIndex", i))
		}
	}
	if len(bad) > 0 {
		return nil, s.invalid(ActionQuiz, raw, bad, &errDomain{field: bad[0], reason: "does not index an option"})
	}

	if out.Questions == nil {
		out.Questions = []QuizQuestion{}
	}
	return out.Questions, nil
}

func (s *Service) generate(ctx context.Context, action Action, prompt string, schema *llm.Schema) (json.RawMessage, error) {
	ctx = llm.WithPurpose(ctx, purposes[action])

	req := llm.Request{
		Model: s.cfg.Model,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: prompt},
		},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, s.classify(action, err)
	}
	return resp.Content, nil
}

// classify turns a provider error into a TransportError or, for payloads
// that failed validation, an InvalidResponseError.
func (s *Service) classify(action Action, err error) error {
	if _, structured := invalidKeys[action]; structured {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			return s.invalid(action, inv.Content, inv.Fields, err)
		}
		var trunc *llm.ErrMaxTokensExceeded
		if errors.As(err, &trunc) {
			return s.invalid(action, trunc.Content, nil, err)
		}
	}
	return s.transport(action, err)
}

func (s *Service) validation(action Action) error {
	return NewValidationError(s.cat, action)
}

// NewValidationError builds the localized missing-input error for action.
func NewValidationError(cat *i18n.Catalog, action Action) *ValidationError {
	return &ValidationError{Action: action, Message: cat.T(validationKeys[action])}
}

func (s *Service) transport(action Action, err error) error {
	s.log.Warn().Err(err).Str("action", string(action)).Msg("provider call failed")
	return &TransportError{
		Action:  action,
		Message: s.cat.T(transportKeys[action], err.Error()),
		Err:     err,
	}
}

func (s *Service) invalid(action Action, raw json.RawMessage, fields []string, cause error) error {
	s.log.Warn().
		Err(cause).
		Str("action", string(action)).
		Strs("fields", fields).
		Str("payload", string(raw)).
		Msg("malformed response")
	return &InvalidResponseError{
		Action:  action,
		Message: s.cat.T(invalidKeys[action]),
		Fields:  fields,
		Err:     cause,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// civilDate drops the clock part of t, keeping its calendar date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
