// Package session holds the state of one study session: the inputs, the
// generated artifacts, the active tool and the shared loading/error flags.
//
// State is not safe for concurrent use. The TUI mutates it only from its
// update loop; the HTTP server guards each session with a mutex.
package session

import (
	"strings"
	"time"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/study"
)

// Tool identifies the active view.
type Tool string

const (
	ToolInputs     Tool = "inputs"
	ToolPlan       Tool = "plan"
	ToolAnalyze    Tool = "analyze"
	ToolFlashcards Tool = "flashcards"
	ToolQuiz       Tool = "quiz"
	ToolChat       Tool = "chat"
	ToolProgress   Tool = "progress"
)

// Tools lists every tool in navigation order.
var Tools = []Tool{ToolInputs, ToolPlan, ToolAnalyze, ToolFlashcards, ToolQuiz, ToolChat, ToolProgress}

// ParseTool returns the tool named s.
func ParseTool(s string) (Tool, bool) {
	for _, t := range Tools {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// NeedsInputs reports whether the tool is locked until inputs are complete.
func (t Tool) NeedsInputs() bool {
	return t != ToolInputs && t != ToolChat
}

// Phase summarizes the shared loading/error flags.
type Phase int

const (
	PhaseIdle    Phase = iota // Nothing in flight, no banner
	PhaseLoading              // A request is in flight
	PhaseError                // The last action failed; banner shown
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Inputs are the user's study parameters.
type Inputs struct {
	Subject string
	// ExamDate is a calendar date; the zero value means unset.
	ExamDate time.Time
	// WeeklyHours is nil until entered.
	WeeklyHours *int
	Notes       string
}

// Ready reports whether all four inputs are filled in.
func (in Inputs) Ready() bool {
	return strings.TrimSpace(in.Subject) != "" &&
		!in.ExamDate.IsZero() &&
		in.WeeklyHours != nil &&
		strings.TrimSpace(in.Notes) != ""
}

// Hours returns the weekly hours, or 0 when unset.
func (in Inputs) Hours() int {
	if in.WeeklyHours == nil {
		return 0
	}
	return *in.WeeklyHours
}

// QuizItem is a quiz question with its answer state.
type QuizItem struct {
	study.QuizQuestion

	// AnswerIndex is nil until answered and never cleared afterwards.
	AnswerIndex *int
	Correct     bool
}

// Answered reports whether the question has been answered.
func (q QuizItem) Answered() bool {
	return q.AnswerIndex != nil
}

// Ticket identifies one in-flight action. A completion is applied only
// while its ticket is current.
type Ticket struct {
	Seq    uint64
	Action study.Action
}

// State is one user's study session.
type State struct {
	Inputs Inputs
	Tool   Tool

	Plan       []study.PlanEntry
	Analysis   *study.Analysis
	Flashcards []study.Flashcard
	Quiz       []QuizItem
	Transcript []study.ChatMessage

	// Conversation is nil until the assistant has been started.
	Conversation *study.Conversation

	Loading bool
	// Err is the banner message; empty when no error is shown.
	Err string

	seq      uint64
	inflight *Ticket
	cat      *i18n.Catalog
}

// New creates an empty session on the inputs view.
func New(cat *i18n.Catalog) *State {
	return &State{Tool: ToolInputs, cat: cat}
}

// Catalog returns the session's message catalog.
func (s *State) Catalog() *i18n.Catalog {
	return s.cat
}

// Phase derives the shared status from the loading and error flags.
func (s *State) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Err != "":
		return PhaseError
	default:
		return PhaseIdle
	}
}

// InFlight returns the current ticket, if any.
func (s *State) InFlight() (Ticket, bool) {
	if s.inflight == nil {
		return Ticket{}, false
	}
	return *s.inflight, true
}
