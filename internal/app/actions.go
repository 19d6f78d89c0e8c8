package app

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// selectTool switches the active tool and starts the assistant when the
// chat view is entered for the first time.
func (m AppModel) selectTool(t session.Tool) (AppModel, tea.Cmd) {
	if err := m.state.Select(t); err != nil {
		if errors.Is(err, session.ErrToolLocked) {
			m.state.Err = m.state.Catalog().T(i18n.ToolLocked)
		}
		return m, nil
	}
	cmd := m.router.Show(t)
	if m.state.ChatNeedsStart() {
		var start tea.Cmd
		m, start = m.begin(study.ActionChatStart)
		cmd = tea.Batch(cmd, start)
	}
	return m, cmd
}

// begin claims a ticket for action and runs it in the background.
func (m AppModel) begin(action study.Action) (AppModel, tea.Cmd) {
	t, err := m.state.Begin(action)
	if err != nil {
		m.rejected(action, err)
		return m, nil
	}
	m.log.Debug().Str("action", string(action)).Uint64("seq", t.Seq).Msg("action started")
	return m.launch(t, m.runAction(t))
}

// sendChat appends the user's message and sends it to the assistant.
func (m AppModel) sendChat(text string) (AppModel, tea.Cmd) {
	t, err := m.state.BeginChatMessage(text)
	if err != nil {
		m.rejected(study.ActionChatSend, err)
		return m, nil
	}
	m.router.Sync()

	conv, ctx := m.state.Conversation, m.ctx
	return m.launch(t, func() tea.Msg {
		reply, err := conv.Send(ctx, text)
		return resultMsg{ticket: t, value: reply, err: err}
	})
}

func (m AppModel) rejected(action study.Action, err error) {
	var ve *study.ValidationError
	switch {
	case errors.As(err, &ve):
		// Already in the banner.
	case errors.Is(err, session.ErrBusy):
		m.log.Debug().Str("action", string(action)).Msg("ignored while busy")
	default:
		m.log.Debug().Err(err).Str("action", string(action)).Msg("action refused")
	}
}

func (m AppModel) launch(t session.Ticket, run tea.Cmd) (AppModel, tea.Cmd) {
	if m.spinning {
		return m, run
	}
	m.spinning = true
	m.frame = 0
	return m, tea.Batch(run, spinnerTick())
}

// runAction returns the command that performs a generation action or the
// assistant start on a copy of the inputs.
func (m AppModel) runAction(t session.Ticket) tea.Cmd {
	svc, ctx, in := m.svc, m.ctx, m.state.Inputs
	return func() tea.Msg {
		value, err := session.Run(ctx, svc, t, in)
		return resultMsg{ticket: t, value: value, err: err}
	}
}

// applyResult hands a finished action to the session. Results whose
// ticket is no longer current are dropped there.
func (m AppModel) applyResult(msg resultMsg) (AppModel, tea.Cmd) {
	applied := m.state.Apply(msg.ticket, msg.value, msg.err)

	evt := m.log.Debug().Str("action", string(msg.ticket.Action)).Uint64("seq", msg.ticket.Seq)
	if !applied {
		evt.Msg("stale result dropped")
		return m, nil
	}
	evt.Bool("failed", msg.err != nil).Msg("action finished")

	m.router.Sync()
	return m, m.router.Show(m.state.Tool)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
