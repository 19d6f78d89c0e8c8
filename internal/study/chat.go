package study

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/llm"
)

// Conversation is a tutoring exchange. It keeps the turns the provider
// needs for context; the caller owns the displayed transcript.
type Conversation struct {
	provider llm.Provider
	model    string
	cat      *i18n.Catalog
	log      zerolog.Logger

	// mu serializes Send so turns are recorded in order.
	mu      sync.Mutex
	history []llm.Message
}

// StartChat opens a conversation with the study-assistant instruction.
func (s *Service) StartChat(ctx context.Context) (*Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.transport(ActionChatStart, err)
	}
	return &Conversation{
		provider: s.provider,
		model:    s.cfg.ChatModel,
		cat:      s.cat,
		log:      s.log,
	}, nil
}

// Send delivers text and returns the assistant's reply. Both turns are
// recorded only when the call succeeds.
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	if blank(text) {
		return "", ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	msgs := make([]llm.Message, 0, len(c.history)+1)
	msgs = append(msgs, c.history...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})

	resp, err := c.provider.Generate(llm.WithPurpose(ctx, llm.PurposeChat), llm.Request{
		Model:    c.model,
		System:   chatSystemPrompt,
		Messages: msgs,
	})
	if err != nil {
		c.log.Warn().Err(err).Str("action", string(ActionChatSend)).Msg("provider call failed")
		return "", &TransportError{
			Action:  ActionChatSend,
			Message: c.cat.T(i18n.TransportChatSend, err.Error()),
			Err:     err,
		}
	}

	reply := strings.TrimSpace(resp.Text())
	c.history = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: reply})
	return reply, nil
}

// Turns returns the number of recorded messages.
func (c *Conversation) Turns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.history)
}
