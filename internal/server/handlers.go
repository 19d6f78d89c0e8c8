package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/session"
	"github.com/abhisek/studyflow/internal/study"
)

const ctxKeyEntry = "session_entry"

type inputsRequest struct {
	Subject     *string `json:"subject" validate:"omitempty,max=200"`
	ExamDate    *string `json:"examDate" validate:"omitempty,datetime=2006-01-02"`
	WeeklyHours *int    `json:"weeklyHours" validate:"omitempty,lte=168"`
	ClearHours  bool    `json:"clearWeeklyHours"`
	Notes       *string `json:"notes"`
}

type toolRequest struct {
	Tool string `json:"tool" validate:"required,oneof=inputs plan analyze flashcards quiz chat progress"`
}

type answerRequest struct {
	Question *int `json:"question" validate:"required,gte=0"`
	Option   *int `json:"option" validate:"required,gte=0"`
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

// loadSession resolves :id and stores the entry in the context.
func (s *Server) loadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			AbortFail(c, http.StatusNotFound, ErrNotFound)
			return
		}
		e, ok := s.sessions.get(id)
		if !ok {
			AbortFail(c, http.StatusNotFound, ErrNotFound)
			return
		}
		c.Set(ctxKeyEntry, e)
		c.Next()
	}
}

func entryFrom(c *gin.Context) *entry {
	return c.MustGet(ctxKeyEntry).(*entry)
}

// view renders the session. The caller holds e.mu.
func (s *Server) view(e *entry) SessionView {
	return newSessionView(e.id.String(), e.state, s.now())
}

func (s *Server) createSession(c *gin.Context) {
	e := s.sessions.create()
	e.mu.Lock()
	defer e.mu.Unlock()
	s.log.Debug().Str("session", e.id.String()).Msg("session created")
	Success(c, http.StatusCreated, s.view(e))
}

func (s *Server) getSession(c *gin.Context) {
	e := entryFrom(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	Success(c, http.StatusOK, s.view(e))
}

func (s *Server) deleteSession(c *gin.Context) {
	e := entryFrom(c)
	s.sessions.remove(e.id)
	c.Status(http.StatusNoContent)
}

func (s *Server) resetSession(c *gin.Context) {
	e := entryFrom(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Reset()
	Success(c, http.StatusOK, s.view(e))
}

func (s *Server) dismissError(c *gin.Context) {
	e := entryFrom(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.DismissError()
	Success(c, http.StatusOK, s.view(e))
}

func (s *Server) updateInputs(c *gin.Context) {
	var req inputsRequest
	if fields := s.validate.bind(c, &req); fields != nil {
		FailWithFields(c, http.StatusUnprocessableEntity, ErrValidation, defaultMessage(ErrValidation), fields)
		return
	}

	e := entryFrom(c)
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.ExamDate != nil {
		if err := e.state.SetExamDate(*req.ExamDate); err != nil {
			FailWithFields(c, http.StatusUnprocessableEntity, ErrValidation, defaultMessage(ErrValidation),
				map[string]string{"examDate": err.Error()})
			return
		}
	}
	if req.Subject != nil {
		e.state.Inputs.Subject = *req.Subject
	}
	switch {
	case req.ClearHours:
		e.state.ClearWeeklyHours()
	case req.WeeklyHours != nil:
		e.state.SetWeeklyHours(*req.WeeklyHours)
	}
	if req.Notes != nil {
		e.state.Inputs.Notes = *req.Notes
	}
	Success(c, http.StatusOK, s.view(e))
}

// uploadNotes replaces the notes with the text of an uploaded file.
func (s *Server) uploadNotes(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		Fail(c, http.StatusBadRequest, ErrFileRequired)
		return
	}
	f, err := fh.Open()
	if err != nil {
		Fail(c, http.StatusBadRequest, ErrFileRequired)
		return
	}
	defer f.Close()

	text, err := notes.Read(f, fh.Filename, s.maxUpload)
	switch {
	case errors.Is(err, notes.ErrTooLarge):
		Fail(c, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	case errors.Is(err, notes.ErrUnsupported):
		Fail(c, http.StatusUnsupportedMediaType, ErrUnsupportedFile)
		return
	case err != nil:
		FailWithMessage(c, http.StatusUnprocessableEntity, ErrValidation, err.Error())
		return
	}

	e := entryFrom(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Inputs.Notes = text
	s.log.Debug().Str("session", e.id.String()).Str("file", fh.Filename).Int("chars", len(text)).Msg("notes imported")
	Success(c, http.StatusOK, s.view(e))
}

// selectTool switches the active tool. Entering chat for the first time
// starts the assistant, as the terminal UI does.
func (s *Server) selectTool(c *gin.Context) {
	var req toolRequest
	if fields := s.validate.bind(c, &req); fields != nil {
		FailWithFields(c, http.StatusUnprocessableEntity, ErrValidation, defaultMessage(ErrValidation), fields)
		return
	}
	tool, _ := session.ParseTool(req.Tool)

	e := entryFrom(c)
	e.mu.Lock()
	if err := e.state.Select(tool); err != nil {
		e.mu.Unlock()
		s.fail(c, err)
		return
	}
	needsStart := e.state.ChatNeedsStart()
	e.mu.Unlock()

	if needsStart {
		s.perform(c, e, study.ActionChatStart)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	Success(c, http.StatusOK, s.view(e))
}

// action returns the handler that runs a generation action.
func (s *Server) action(a study.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.perform(c, entryFrom(c), a)
	}
}

// perform runs a on the session and responds with the updated view. The
// call is detached from the request so a disconnect does not abandon it.
func (s *Server) perform(c *gin.Context, e *entry, a study.Action) {
	if err := s.execute(context.WithoutCancel(c.Request.Context()), e, a); err != nil {
		s.fail(c, err)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	Success(c, http.StatusOK, s.view(e))
}

// execute claims a ticket under the session lock, calls the service
// without it and applies the result under the lock again.
func (s *Server) execute(ctx context.Context, e *entry, a study.Action) error {
	e.mu.Lock()
	t, err := e.state.Begin(a)
	in := e.state.Inputs
	e.mu.Unlock()
	if err != nil {
		return err
	}

	value, callErr := session.Run(ctx, s.svc, t, in)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Apply(t, value, callErr) {
		return errStale
	}
	return callErr
}

func (s *Server) answerQuiz(c *gin.Context) {
	var req answerRequest
	if fields := s.validate.bind(c, &req); fields != nil {
		FailWithFields(c, http.StatusUnprocessableEntity, ErrValidation, defaultMessage(ErrValidation), fields)
		return
	}

	e := entryFrom(c)
	e.mu.Lock()
	defer e.mu.Unlock()

	recorded, err := e.state.AnswerQuiz(*req.Question, *req.Option)
	if err != nil {
		FailWithMessage(c, http.StatusUnprocessableEntity, ErrValidation, err.Error())
		return
	}
	item := e.state.Quiz[*req.Question]
	Success(c, http.StatusOK, gin.H{
		"recorded":    recorded,
		"correct":     item.Correct,
		"answerIndex": item.AnswerIndex,
		"session":     s.view(e),
	})
}

func (s *Server) sendChat(c *gin.Context) {
	var req chatRequest
	if fields := s.validate.bind(c, &req); fields != nil {
		FailWithFields(c, http.StatusUnprocessableEntity, ErrValidation, defaultMessage(ErrValidation), fields)
		return
	}

	reply, err := s.chat(context.WithoutCancel(c.Request.Context()), entryFrom(c), req.Message)
	if err != nil {
		s.fail(c, err)
		return
	}

	e := entryFrom(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	Success(c, http.StatusOK, gin.H{"reply": reply, "session": s.view(e)})
}

// errStale reports a chat reply dropped because the session moved on.
var errStale = errors.New("result discarded")

// chat sends one message through the session's assistant, keeping the
// transcript in step.
func (s *Server) chat(ctx context.Context, e *entry, text string) (string, error) {
	e.mu.Lock()
	t, err := e.state.BeginChatMessage(text)
	conv := e.state.Conversation
	e.mu.Unlock()
	if err != nil {
		return "", err
	}

	reply, callErr := conv.Send(ctx, text)

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Apply(t, reply, callErr) {
		return "", errStale
	}
	if callErr != nil {
		return "", callErr
	}
	return reply, nil
}

func (s *Server) progress(c *gin.Context) {
	e := entryFrom(c)
	e.mu.Lock()
	defer e.mu.Unlock()
	Success(c, http.StatusOK, newProgressView(e.state.Progress(s.now())))
}

// apiError is a domain error rendered for clients of either transport.
type apiError struct {
	status  int
	code    ErrCode
	message string
	fields  map[string]string
}

// describe maps domain errors to their status, code and localized message.
func (s *Server) describe(err error) apiError {
	var (
		ve *study.ValidationError
		te *study.TransportError
		ie *study.InvalidResponseError
	)
	switch {
	case errors.As(err, &ve):
		return apiError{http.StatusUnprocessableEntity, ErrValidation, ve.Message, nil}
	case errors.Is(err, study.ErrEmptyMessage):
		return apiError{http.StatusUnprocessableEntity, ErrValidation, s.cat.T(i18n.MessageEmpty),
			map[string]string{"message": "required"}}
	case errors.As(err, &ie):
		var fields map[string]string
		if len(ie.Fields) > 0 {
			fields = make(map[string]string, len(ie.Fields))
			for _, f := range ie.Fields {
				fields[f] = "invalid"
			}
		}
		return apiError{http.StatusBadGateway, ErrInvalidUpstream, ie.Message, fields}
	case errors.As(err, &te):
		return apiError{http.StatusBadGateway, ErrUpstream, te.Message, nil}
	case errors.Is(err, session.ErrBusy):
		return apiError{http.StatusConflict, ErrBusy, s.cat.T(i18n.Busy), nil}
	case errors.Is(err, session.ErrToolLocked):
		return apiError{http.StatusConflict, ErrToolLocked, s.cat.T(i18n.ToolLocked), nil}
	case errors.Is(err, session.ErrNoConversation):
		return apiError{http.StatusConflict, ErrNoConversation, s.cat.T(i18n.ChatNotStarted), nil}
	case errors.Is(err, session.ErrChatStarted):
		return apiError{http.StatusConflict, ErrChatStarted, s.cat.T(i18n.ChatStarted), nil}
	case errors.Is(err, errStale):
		return apiError{http.StatusConflict, ErrStale, s.cat.T(i18n.Stale), nil}
	}
	s.log.Error().Err(err).Msg("unhandled error")
	return apiError{http.StatusInternalServerError, ErrInternal, defaultMessage(ErrInternal), nil}
}

// fail writes err as an error envelope.
func (s *Server) fail(c *gin.Context, err error) {
	e := s.describe(err)
	FailWithFields(c, e.status, e.code, e.message, e.fields)
}
