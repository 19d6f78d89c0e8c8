package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
)

// Screens never mutate generated artifacts themselves. They emit these
// messages and the root model applies them to the session.

// SelectToolMsg asks to switch the active tool.
type SelectToolMsg struct {
	Tool session.Tool
}

// ActionMsg asks to run a generation action.
type ActionMsg struct {
	Action study.Action
}

// SendChatMsg asks to send a chat message.
type SendChatMsg struct {
	Text string
}

// AnswerQuizMsg records an answer to a quiz question.
type AnswerQuizMsg struct {
	Question int
	Option   int
}

// SelectTool returns a command emitting SelectToolMsg.
func SelectTool(t session.Tool) tea.Cmd {
	return func() tea.Msg { return SelectToolMsg{Tool: t} }
}

// RunAction returns a command emitting ActionMsg.
func RunAction(a study.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}
