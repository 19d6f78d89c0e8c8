// Package study generates study material from a student's notes: plans,
// concept analyses, flashcards, quizzes and tutoring conversations.
package study

// DateLayout is the calendar date format used in plans and inputs.
const DateLayout = "2006-01-02"

// PlanEntry is one day of a study plan.
type PlanEntry struct {
	Day        int      `json:"day"`
	Date       string   `json:"date"`
	Topic      string   `json:"topic"`
	Activities []string `json:"activities"`
}

// Analysis lists the key concepts and subtopics found in the notes.
// Either list may be empty but neither is nil once decoded.
type Analysis struct {
	KeyConcepts []string `json:"keyConcepts"`
	Subtopics   []string `json:"subtopics"`
}

// Flashcard is a question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is a multiple-choice question with one correct option.
type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// ChatRole is the sender of a transcript message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// Action names a content-service operation. It selects the localized
// messages used for its errors.
type Action string

const (
	ActionPlan       Action = "plan"
	ActionAnalysis   Action = "analysis"
	ActionFlashcards Action = "flashcards"
	ActionQuiz       Action = "quiz"
	ActionChatStart  Action = "chat_start"
	ActionChatSend   Action = "chat_send"
)

// Config tunes generation requests.
type Config struct {
	// Model overrides the provider's default model for structured calls.
	Model string
	// ChatModel serves tutoring conversations.
	ChatModel string
	// MaxTokens caps each response. Zero leaves it to the provider.
	MaxTokens int
	// Temperature of structured calls. Zero leaves it to the provider.
	Temperature float64
}

// DefaultConfig returns the default generation settings.
func DefaultConfig() Config {
	return Config{}
}
