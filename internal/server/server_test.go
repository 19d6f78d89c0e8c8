package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/study"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *ErrorBody      `json:"error"`
}

func newTestServer(t *testing.T, locale string, responses ...llm.MockResponse) (*Server, *llm.MockProvider) {
	t.Helper()
	provider := llm.NewMockProvider(responses...)
	cat := i18n.MustNew(locale)
	svc := study.NewService(provider, study.DefaultConfig(), cat, zerolog.Nop())
	s, err := New(Options{
		Service: svc,
		Log:     zerolog.Nop(),
		GinMode: "test",
		Now:     func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return s, provider
}

func do(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = httptest.NewRequest(method, path, bytes.NewReader(b))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decodeView(t *testing.T, env envelope) SessionView {
	t.Helper()
	var v SessionView
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func createSession(t *testing.T, s *Server) string {
	t.Helper()
	w, env := do(t, s, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeView(t, env).ID
}

func fillInputs(t *testing.T, s *Server, id string) {
	t.Helper()
	w, env := do(t, s, http.MethodPatch, "/api/v1/sessions/"+id+"/inputs", map[string]any{
		"subject":     "Biology",
		"examDate":    "2026-03-15",
		"weeklyHours": 6,
		"notes":       "Mitosis and meiosis.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, decodeView(t, env).Ready)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, "en")
	w, env := do(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSessionLifecycle(t *testing.T) {
	s, _ := newTestServer(t, "en")
	id := createSession(t, s)

	w, env := do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	v := decodeView(t, env)
	assert.Equal(t, "inputs", string(v.Tool))
	assert.Equal(t, "idle", v.Phase)
	assert.False(t, v.Ready)

	w, _ = do(t, s, http.MethodDelete, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrNotFound, env.Error.Code)
}

func TestUnknownSession(t *testing.T) {
	s, _ := newTestServer(t, "en")
	w, _ := do(t, s, http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInputsValidation(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		body   map[string]any
		field  string
	}{
		{"bad date", "en", map[string]any{"examDate": "15/03/2026"}, "examDate"},
		{"too many hours", "en", map[string]any{"weeklyHours": 500}, "weeklyHours"},
		{"spanish message", "es", map[string]any{"weeklyHours": 500}, "weeklyHours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, tt.locale)
			id := createSession(t, s)

			w, env := do(t, s, http.MethodPatch, "/api/v1/sessions/"+id+"/inputs", tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, ErrValidation, env.Error.Code)
			assert.NotEmpty(t, env.Error.Fields[tt.field])
		})
	}
}

func TestInputsClampAndClear(t *testing.T) {
	s, _ := newTestServer(t, "en")
	id := createSession(t, s)

	_, env := do(t, s, http.MethodPatch, "/api/v1/sessions/"+id+"/inputs", map[string]any{"weeklyHours": -4})
	v := decodeView(t, env)
	require.NotNil(t, v.Inputs.WeeklyHours)
	assert.Equal(t, 0, *v.Inputs.WeeklyHours)

	_, env = do(t, s, http.MethodPatch, "/api/v1/sessions/"+id+"/inputs", map[string]any{"clearWeeklyHours": true})
	assert.Nil(t, decodeView(t, env).Inputs.WeeklyHours)
}

func TestToolLocked(t *testing.T) {
	s, _ := newTestServer(t, "es")
	id := createSession(t, s)

	w, env := do(t, s, http.MethodPut, "/api/v1/sessions/"+id+"/tool", map[string]string{"tool": "plan"})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrToolLocked, env.Error.Code)
	assert.Equal(t, "Por favor, completa los campos de entrada primero.", env.Error.Message)

	w, _ = do(t, s, http.MethodPut, "/api/v1/sessions/"+id+"/tool", map[string]string{"tool": "nope"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGenerateWithoutNotes(t *testing.T) {
	s, provider := newTestServer(t, "en")
	id := createSession(t, s)

	w, env := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/analysis", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrValidation, env.Error.Code)
	assert.Equal(t, 0, provider.CallCount())

	_, env = do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.NotEmpty(t, decodeView(t, env).Error, "expected banner on the session")
}

func TestGeneratePlan(t *testing.T) {
	s, _ := newTestServer(t, "en", llm.MockJSON(map[string]any{
		"plan": []map[string]any{
			{"day": 1, "date": time.Now().Format(study.DateLayout), "topic": "Mitosis", "activities": []string{"Read"}},
		},
	}))
	id := createSession(t, s)
	// The plan window is computed from the wall clock, so the exam is
	// placed well after today.
	w, _ := do(t, s, http.MethodPatch, "/api/v1/sessions/"+id+"/inputs", map[string]any{
		"subject":     "Biology",
		"examDate":    time.Now().AddDate(0, 0, 14).Format(study.DateLayout),
		"weeklyHours": 6,
		"notes":       "Mitosis and meiosis.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/plan", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v := decodeView(t, env)
	assert.Equal(t, "plan", string(v.Tool))
	require.Len(t, v.Plan, 1)
	assert.Equal(t, "Mitosis", v.Plan[0].Topic)
	assert.Equal(t, 1, v.Progress.PlanDays)
}

func TestQuizFlow(t *testing.T) {
	s, _ := newTestServer(t, "en", llm.MockJSON(map[string]any{
		"questions": []map[string]any{
			{"question": "2+2?", "options": []string{"3", "4", "5", "6"}, "correctAnswerIndex": 1, "explanation": "Sum."},
		},
	}))
	id := createSession(t, s)
	fillInputs(t, s, id)

	w, env := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/quiz", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v := decodeView(t, env)
	require.Len(t, v.Quiz, 1)
	assert.Nil(t, v.Quiz[0].AnswerIndex)

	w, env = do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/quiz/answers", map[string]int{"question": 0, "option": 1})
	require.Equal(t, http.StatusOK, w.Code)
	var answer struct {
		Recorded bool        `json:"recorded"`
		Correct  bool        `json:"correct"`
		Session  SessionView `json:"session"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &answer))
	assert.True(t, answer.Recorded)
	assert.True(t, answer.Correct)
	assert.Equal(t, 1, answer.Session.Progress.QuizAnswered)
	require.NotNil(t, answer.Session.Progress.CorrectPercent)
	assert.InDelta(t, 100, *answer.Session.Progress.CorrectPercent, 0.001)

	// Answers are final.
	_, env = do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/quiz/answers", map[string]int{"question": 0, "option": 2})
	require.NoError(t, json.Unmarshal(env.Data, &answer))
	assert.False(t, answer.Recorded)
	assert.True(t, answer.Correct)

	w, _ = do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/quiz/answers", map[string]int{"question": 3, "option": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMalformedResponseKeepsState(t *testing.T) {
	s, _ := newTestServer(t, "en",
		llm.MockJSON(map[string]any{"flashcards": []map[string]string{{"question": "Q", "answer": "A"}}}),
		llm.MockText(`{"flashcards": "nope"}`),
	)
	id := createSession(t, s)
	fillInputs(t, s, id)

	w, _ := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/flashcards", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/flashcards", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrInvalidUpstream, env.Error.Code)

	_, env = do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
	v := decodeView(t, env)
	assert.Len(t, v.Flashcards, 1)
	assert.Equal(t, "error", v.Phase)

	_, env = do(t, s, http.MethodDelete, "/api/v1/sessions/"+id+"/error", nil)
	assert.Equal(t, "idle", decodeView(t, env).Phase)
}

func TestTransportError(t *testing.T) {
	s, _ := newTestServer(t, "en", llm.MockResponse{Err: errors.New("connection refused")})
	id := createSession(t, s)
	fillInputs(t, s, id)

	w, env := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/analysis", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrUpstream, env.Error.Code)
	assert.Contains(t, env.Error.Message, "connection refused")
}

func TestBusySession(t *testing.T) {
	release := make(chan struct{})
	s, _ := newTestServer(t, "en", llm.MockResponse{
		Content: json.RawMessage(`{"keyConcepts":["cells"],"subtopics":[]}`),
		Wait:    release,
	})
	id := createSession(t, s)
	fillInputs(t, s, id)

	done := make(chan int, 1)
	go func() {
		w, _ := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/analysis", nil)
		done <- w.Code
	}()

	require.Eventually(t, func() bool {
		_, env := do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
		return decodeView(t, env).Phase == "loading"
	}, 2*time.Second, 10*time.Millisecond)

	w, env := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/quiz", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrBusy, env.Error.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestChatFlow(t *testing.T) {
	s, provider := newTestServer(t, "en", llm.MockText("ATP stores energy."))
	id := createSession(t, s)

	w, env := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/chat", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrNoConversation, env.Error.Code)

	w, env = do(t, s, http.MethodPut, "/api/v1/sessions/"+id+"/tool", map[string]string{"tool": "chat"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v := decodeView(t, env)
	assert.True(t, v.ChatStarted)
	require.Len(t, v.Transcript, 1)

	w, env = do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/chat", map[string]string{"message": "What is ATP?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Reply   string      `json:"reply"`
		Session SessionView `json:"session"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "ATP stores energy.", out.Reply)
	assert.Len(t, out.Session.Transcript, 3)
	assert.Equal(t, 1, provider.CallCount())

	w, _ = do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/chat", map[string]string{"message": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUploadNotes(t *testing.T) {
	s, _ := newTestServer(t, "en")
	id := createSession(t, s)

	upload := func(name, content string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/notes", &body)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, r)
		return w
	}

	w := upload("notes.txt", "Chloroplasts capture light.")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Chloroplasts capture light.")

	w = upload("notes.bin", string([]byte{0xff, 0xfe, 0x00}))
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/notes", strings.NewReader(""))
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetDropsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	s, _ := newTestServer(t, "en", llm.MockResponse{
		Content: json.RawMessage(`{"flashcards":[{"question":"Q","answer":"A"}]}`),
		Wait:    release,
	})
	id := createSession(t, s)
	fillInputs(t, s, id)

	done := make(chan envelope, 1)
	go func() {
		_, env := do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/flashcards", nil)
		done <- env
	}()
	require.Eventually(t, func() bool {
		_, env := do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
		return decodeView(t, env).Phase == "loading"
	}, 2*time.Second, 10*time.Millisecond)

	do(t, s, http.MethodPost, "/api/v1/sessions/"+id+"/reset", nil)
	close(release)

	env := <-done
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrStale, env.Error.Code)

	_, env = do(t, s, http.MethodGet, "/api/v1/sessions/"+id, nil)
	assert.Nil(t, decodeView(t, env).Flashcards)
}

func dialChat(t *testing.T, s *Server, id string) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/sessions/" + id + "/chat/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// exchange writes a raw JSON frame and returns the decoded reply.
func exchange(t *testing.T, conn *websocket.Conn, frame map[string]string) map[string]any {
	t.Helper()
	require.NoError(t, conn.WriteJSON(frame))
	var got map[string]any
	require.NoError(t, conn.ReadJSON(&got))
	return got
}

func TestChatSocket(t *testing.T) {
	s, _ := newTestServer(t, "en", llm.MockText("Photosynthesis makes glucose."))
	id := createSession(t, s)
	conn := dialChat(t, s, id)

	var ready map[string]any
	require.NoError(t, conn.ReadJSON(&ready))
	assert.Equal(t, "ready", ready["event"])

	got := exchange(t, conn, map[string]string{"action": "send", "content": "hi"})
	assert.Equal(t, "error", got["event"])
	assert.Equal(t, string(ErrNoConversation), got["code"])

	got = exchange(t, conn, map[string]string{"action": "start"})
	assert.Equal(t, "started", got["event"])
	assert.Len(t, got["transcript"], 1)

	got = exchange(t, conn, map[string]string{"action": "send", "content": "What is photosynthesis?"})
	assert.Equal(t, "reply", got["event"])
	assert.Equal(t, "Photosynthesis makes glucose.", got["content"])

	got = exchange(t, conn, map[string]string{"action": "ping"})
	assert.Equal(t, "pong", got["event"])
}

func TestChatSocket_LocalizedErrors(t *testing.T) {
	s, _ := newTestServer(t, "es")
	id := createSession(t, s)
	conn := dialChat(t, s, id)

	var ready map[string]any
	require.NoError(t, conn.ReadJSON(&ready))

	got := exchange(t, conn, map[string]string{"action": "dance"})
	assert.Equal(t, string(ErrInvalidPayload), got["code"])
	assert.Equal(t, "Acción desconocida: dance", got["error"])

	got = exchange(t, conn, map[string]string{"action": "send", "content": "hola"})
	assert.Equal(t, string(ErrNoConversation), got["code"])
	assert.Equal(t, "Primero inicia el asistente de estudio.", got["error"])
}

func TestChatSocket_EmptyMessage(t *testing.T) {
	s, _ := newTestServer(t, "es", llm.MockText("unused"))
	id := createSession(t, s)
	conn := dialChat(t, s, id)

	var ready map[string]any
	require.NoError(t, conn.ReadJSON(&ready))
	exchange(t, conn, map[string]string{"action": "start"})

	got := exchange(t, conn, map[string]string{"action": "send", "content": "   "})
	assert.Equal(t, "error", got["event"])
	assert.Equal(t, string(ErrValidation), got["code"])
	assert.Equal(t, "Escribe un mensaje primero.", got["error"])
}

func TestRegistrySweep(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r := newRegistry(i18n.MustNew("en"), time.Hour, func() time.Time { return now })

	old := r.create()
	now = now.Add(30 * time.Minute)
	fresh := r.create()

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, r.sweep())

	_, ok := r.get(old.id)
	assert.False(t, ok)
	_, ok = r.get(fresh.id)
	assert.True(t, ok)
	assert.Equal(t, 1, r.count())
}
