package i18n

// Key identifies a catalog message.
type Key string

// Validation, one per generation action.
const (
	ValidationPlan       Key = "validation.plan"
	ValidationAnalysis   Key = "validation.analysis"
	ValidationFlashcards Key = "validation.flashcards"
	ValidationQuiz       Key = "validation.quiz"
)

// Transport failures. {0} is the underlying error message.
const (
	TransportPlan       Key = "transport.plan"
	TransportAnalysis   Key = "transport.analysis"
	TransportFlashcards Key = "transport.flashcards"
	TransportQuiz       Key = "transport.quiz"
	TransportChatStart  Key = "transport.chat_start"
	TransportChatSend   Key = "transport.chat_send"
)

// Malformed responses.
const (
	InvalidPlan       Key = "invalid.plan"
	InvalidAnalysis   Key = "invalid.analysis"
	InvalidFlashcards Key = "invalid.flashcards"
	InvalidQuiz       Key = "invalid.quiz"
)

// Session and view text.
const (
	ChatGreeting      Key = "chat.greeting"
	ChatNotStarted    Key = "chat.not_started"
	Busy              Key = "session.busy"
	ToolLocked        Key = "session.tool_locked"
	InputsFirst       Key = "empty.inputs_first"
	EmptyConcepts     Key = "empty.concepts"
	EmptySubtopics    Key = "empty.subtopics"
	EmptyFlashcards   Key = "empty.flashcards"
	EmptyQuiz         Key = "empty.quiz"
	EmptyPlan         Key = "empty.plan"
	GoToTools         Key = "inputs.go_to_tools"
	Loading           Key = "view.loading"
	QuizCorrect       Key = "quiz.correct"
	QuizIncorrect     Key = "quiz.incorrect"
	DaysRemainingNone Key = "progress.days_unset"
	HintGenerate      Key = "hint.generate"
	ChatPlaceholder   Key = "chat.placeholder"
	QuizPosition      Key = "quiz.position"
)

// Request errors.
const (
	MessageEmpty  Key = "error.message_empty"
	ChatStarted   Key = "error.chat_started"
	Stale         Key = "error.stale"
	UnknownAction Key = "error.unknown_action"
)

// Key hints and screen chrome.
const (
	HintDismiss      Key = "hint.dismiss"
	TerminalTooSmall Key = "view.too_small"
	KeyDismiss       Key = "key.dismiss"
	KeyTools         Key = "key.tools"
	KeyReset         Key = "key.reset"
	KeyQuit          Key = "key.quit"
	KeySend          Key = "key.send"
	KeyGenerate      Key = "key.generate"
	KeyAnalyze       Key = "key.analyze"
	KeyScroll        Key = "key.scroll"
	KeyChoose        Key = "key.choose"
	KeyAnswer        Key = "key.answer"
	KeyQuestion      Key = "key.question"
	KeyFlip          Key = "key.flip"
	KeyCard          Key = "key.card"
	KeyNextField     Key = "key.next_field"
	KeyPrevField     Key = "key.prev_field"
)

// Tool names.
const (
	ToolInputs     Key = "tool.inputs"
	ToolPlan       Key = "tool.plan"
	ToolAnalyze    Key = "tool.analyze"
	ToolFlashcards Key = "tool.flashcards"
	ToolQuiz       Key = "tool.quiz"
	ToolChat       Key = "tool.chat"
	ToolProgress   Key = "tool.progress"
)

// Form and progress labels.
const (
	LabelSubject       Key = "label.subject"
	LabelExamDate      Key = "label.exam_date"
	LabelWeeklyHours   Key = "label.weekly_hours"
	LabelNotes         Key = "label.notes"
	LabelKeyConcepts   Key = "label.key_concepts"
	LabelSubtopics     Key = "label.subtopics"
	LabelDay           Key = "label.day"
	LabelDaysRemaining Key = "label.days_remaining"
	LabelPlanDays      Key = "label.plan_days"
	LabelFlashcards    Key = "label.flashcards"
	LabelQuizProgress  Key = "label.quiz_progress"
	LabelQuizCorrect   Key = "label.quiz_correct"
	LabelQuestion      Key = "label.question"
	LabelAnswer        Key = "label.answer"
	LabelYou           Key = "label.you"
	LabelAssistant     Key = "label.assistant"
)

var messages = map[string]map[Key]string{
	"en": {
		ValidationPlan:       "Please fill in all input fields and paste your notes.",
		ValidationAnalysis:   "Please paste your notes to analyze the material.",
		ValidationFlashcards: "Please paste your notes to generate flashcards.",
		ValidationQuiz:       "Please paste your notes to generate the quiz.",

		TransportPlan:       "Error generating the study plan: {0}",
		TransportAnalysis:   "Error analyzing the material: {0}",
		TransportFlashcards: "Error generating flashcards: {0}",
		TransportQuiz:       "Error generating the quiz: {0}",
		TransportChatStart:  "Error starting the study assistant: {0}",
		TransportChatSend:   "Error sending message: {0}",

		InvalidPlan:       "Could not generate a valid study plan. Please try again or refine your input.",
		InvalidAnalysis:   "Could not analyze the material. Please try again or refine your input.",
		InvalidFlashcards: "Could not generate flashcards. Please try again or refine your input.",
		InvalidQuiz:       "Could not generate the quiz. Please try again or refine your input.",

		ChatGreeting:      "Hi! How can I help you with your studies?",
		ChatNotStarted:    "Start the study assistant first.",
		Busy:              "A request is already in progress.",
		ToolLocked:        "Please complete the input fields first.",
		InputsFirst:       "Please complete the input fields first.",
		EmptyConcepts:     "No key concepts found.",
		EmptySubtopics:    "No subtopics found.",
		EmptyFlashcards:   "Could not generate flashcards. Try a different text.",
		EmptyQuiz:         "Could not generate questions. Try a different text.",
		EmptyPlan:         "No study plan yet.",
		GoToTools:         "Done! Go to tools",
		Loading:           "Working...",
		QuizCorrect:       "Correct: {0}",
		QuizIncorrect:     "Incorrect: {0}",
		DaysRemainingNone: "--",
		HintGenerate:      "Press g to generate.",
		ChatPlaceholder:   "Ask a question...",
		QuizPosition:      "Question {0} of {1}",

		MessageEmpty:  "Type a message first.",
		ChatStarted:   "The study assistant is already running.",
		Stale:         "The session changed while the request was running.",
		UnknownAction: "Unknown action: {0}",

		HintDismiss:      "Esc to dismiss",
		TerminalTooSmall: "Terminal too small!\n\nPlease resize to at\nleast {0} x {1}\n\nCurrent: {2} x {3}",
		KeyDismiss:       "Dismiss",
		KeyTools:         "Tools",
		KeyReset:         "Reset",
		KeyQuit:          "Quit",
		KeySend:          "Send",
		KeyGenerate:      "Generate",
		KeyAnalyze:       "Analyze",
		KeyScroll:        "Scroll",
		KeyChoose:        "Choose",
		KeyAnswer:        "Answer",
		KeyQuestion:      "Question",
		KeyFlip:          "Flip",
		KeyCard:          "Card",
		KeyNextField:     "Next field",
		KeyPrevField:     "Previous",

		ToolInputs:     "Inputs",
		ToolPlan:       "Study plan",
		ToolAnalyze:    "Analysis",
		ToolFlashcards: "Flashcards",
		ToolQuiz:       "Quiz",
		ToolChat:       "Assistant",
		ToolProgress:   "Progress",

		LabelSubject:       "Subject",
		LabelExamDate:      "Exam date (YYYY-MM-DD)",
		LabelWeeklyHours:   "Hours per week",
		LabelNotes:         "Notes",
		LabelKeyConcepts:   "Key concepts",
		LabelSubtopics:     "Subtopics",
		LabelDay:           "Day {0}",
		LabelDaysRemaining: "Days until exam",
		LabelPlanDays:      "Days in plan",
		LabelFlashcards:    "Flashcards",
		LabelQuizProgress:  "Quiz answered",
		LabelQuizCorrect:   "Correct answers",
		LabelQuestion:      "Question",
		LabelAnswer:        "Answer",
		LabelYou:           "You",
		LabelAssistant:     "Assistant",
	},
	"es": {
		ValidationPlan:       "Por favor, rellena todos los campos de entrada y pega tus apuntes.",
		ValidationAnalysis:   "Por favor, pega tus apuntes para analizar el material.",
		ValidationFlashcards: "Por favor, pega tus apuntes para generar flashcards.",
		ValidationQuiz:       "Por favor, pega tus apuntes para generar el cuestionario.",

		TransportPlan:       "Error al generar el plan de estudio: {0}",
		TransportAnalysis:   "Error al analizar el material: {0}",
		TransportFlashcards: "Error al generar flashcards: {0}",
		TransportQuiz:       "Error al generar el cuestionario: {0}",
		TransportChatStart:  "Error al iniciar el asistente de estudio: {0}",
		TransportChatSend:   "Error al enviar mensaje: {0}",

		InvalidPlan:       "No se pudo generar un plan de estudio válido. Por favor, inténtalo de nuevo o refina tu entrada.",
		InvalidAnalysis:   "No se pudo analizar el material. Por favor, inténtalo de nuevo o refina tu entrada.",
		InvalidFlashcards: "No se pudieron generar flashcards. Por favor, inténtalo de nuevo o refina tu entrada.",
		InvalidQuiz:       "No se pudo generar el cuestionario. Por favor, inténtalo de nuevo o refina tu entrada.",

		ChatGreeting:      "¡Hola! ¿En qué puedo ayudarte con tus estudios?",
		ChatNotStarted:    "Primero inicia el asistente de estudio.",
		Busy:              "Ya hay una solicitud en curso.",
		ToolLocked:        "Por favor, completa los campos de entrada primero.",
		InputsFirst:       "Por favor, completa los campos de entrada primero.",
		EmptyConcepts:     "No se encontraron conceptos clave.",
		EmptySubtopics:    "No se encontraron subtemas.",
		EmptyFlashcards:   "No se pudieron generar flashcards. Intenta con un texto diferente.",
		EmptyQuiz:         "No se pudieron generar preguntas. Intenta con un texto diferente.",
		EmptyPlan:         "Todavía no hay plan de estudio.",
		GoToTools:         "¡Listo! Ir a Herramientas",
		Loading:           "Generando...",
		QuizCorrect:       "Correcto: {0}",
		QuizIncorrect:     "Incorrecto: {0}",
		DaysRemainingNone: "--",
		HintGenerate:      "Pulsa g para generar.",
		ChatPlaceholder:   "Haz una pregunta...",
		QuizPosition:      "Pregunta {0} de {1}",

		MessageEmpty:  "Escribe un mensaje primero.",
		ChatStarted:   "El asistente de estudio ya está en marcha.",
		Stale:         "La sesión cambió mientras se procesaba la solicitud.",
		UnknownAction: "Acción desconocida: {0}",

		HintDismiss:      "Esc para cerrar",
		TerminalTooSmall: "¡Terminal demasiado pequeña!\n\nAmplíala al menos a\n{0} x {1}\n\nActual: {2} x {3}",
		KeyDismiss:       "Cerrar",
		KeyTools:         "Herramientas",
		KeyReset:         "Reiniciar",
		KeyQuit:          "Salir",
		KeySend:          "Enviar",
		KeyGenerate:      "Generar",
		KeyAnalyze:       "Analizar",
		KeyScroll:        "Desplazar",
		KeyChoose:        "Elegir",
		KeyAnswer:        "Responder",
		KeyQuestion:      "Pregunta",
		KeyFlip:          "Voltear",
		KeyCard:          "Tarjeta",
		KeyNextField:     "Siguiente campo",
		KeyPrevField:     "Anterior",

		ToolInputs:     "Entradas",
		ToolPlan:       "Plan de estudio",
		ToolAnalyze:    "Análisis",
		ToolFlashcards: "Flashcards",
		ToolQuiz:       "Cuestionario",
		ToolChat:       "Asistente",
		ToolProgress:   "Progreso",

		LabelSubject:       "Asignatura",
		LabelExamDate:      "Fecha del examen (AAAA-MM-DD)",
		LabelWeeklyHours:   "Horas por semana",
		LabelNotes:         "Apuntes",
		LabelKeyConcepts:   "Conceptos clave",
		LabelSubtopics:     "Subtemas",
		LabelDay:           "Día {0}",
		LabelDaysRemaining: "Días hasta el examen",
		LabelPlanDays:      "Días en el plan",
		LabelFlashcards:    "Flashcards",
		LabelQuizProgress:  "Cuestionario respondido",
		LabelQuizCorrect:   "Respuestas correctas",
		LabelQuestion:      "Pregunta",
		LabelAnswer:        "Respuesta",
		LabelYou:           "Tú",
		LabelAssistant:     "Asistente",
	},
}
