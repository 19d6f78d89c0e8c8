package study

import "github.com/abhisek/studyflow/internal/llm"

// Structured responses are wrapped in a top-level object so every provider
// can enforce them; OpenAI's strict mode rejects bare arrays.

var planEntrySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"day":  map[string]any{"type": "integer", "description": "1-based day number"},
		"date": map[string]any{"type": "string", "description": "Calendar date, YYYY-MM-DD"},
		"topic": map[string]any{
			"type":        "string",
			"description": "Topic to study that day",
		},
		"activities": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
	"required":         []any{"day", "date", "topic", "activities"},
	"propertyOrdering": []any{"day", "date", "topic", "activities"},
}

// PlanSchema is the response shape of GenerateStudyPlan.
var PlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "Day-by-day study plan ending before the exam date",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"plan": map[string]any{
				"type":  "array",
				"items": planEntrySchema,
			},
		},
		"required": []any{"plan"},
	},
}

// AnalysisSchema is the response shape of AnalyzeMaterial.
var AnalysisSchema = &llm.Schema{
	Name:        "material-analysis",
	Description: "Key concepts and subtopics of the study material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"keyConcepts": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"subtopics": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":         []any{"keyConcepts", "subtopics"},
		"propertyOrdering": []any{"keyConcepts", "subtopics"},
	},
}

// FlashcardsSchema is the response shape of GenerateFlashcards.
var FlashcardsSchema = &llm.Schema{
	Name:        "flashcards",
	Description: "Question and answer flashcards",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"answer":   map[string]any{"type": "string"},
					},
					"required":         []any{"question", "answer"},
					"propertyOrdering": []any{"question", "answer"},
				},
			},
		},
		"required": []any{"flashcards"},
	},
}

// QuizSchema is the response shape of GenerateQuiz.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "Multiple-choice quiz with explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correctAnswerIndex": map[string]any{
							"type":        "integer",
							"description": "0-based index of the correct option",
						},
						"explanation": map[string]any{"type": "string"},
					},
					"required":         []any{"question", "options", "correctAnswerIndex", "explanation"},
					"propertyOrdering": []any{"question", "options", "correctAnswerIndex", "explanation"},
				},
			},
		},
		"required": []any{"questions"},
	},
}
