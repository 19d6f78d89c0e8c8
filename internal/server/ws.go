package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/study"
)

// Chat socket actions, client to server.
const (
	wsActionStart = "start"
	wsActionSend  = "send"
	wsActionPing  = "ping"
)

// Chat socket events, server to client.
const (
	wsEventReady   = "ready"
	wsEventStarted = "started"
	wsEventReply   = "reply"
	wsEventError   = "error"
	wsEventPong    = "pong"
)

type wsRequest struct {
	Action  string `json:"action"`
	Content string `json:"content,omitempty"`
}

type wsResponse struct {
	Event      string              `json:"event"`
	Content    string              `json:"content,omitempty"`
	Code       ErrCode             `json:"code,omitempty"`
	Error      string              `json:"error,omitempty"`
	Transcript []study.ChatMessage `json:"transcript,omitempty"`
}

// buildUpgrader validates origins against allowedOrigins. An empty list
// permits all origins.
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// chatSocket streams the tutoring conversation over a WebSocket. Messages
// are handled one at a time, in order.
func (s *Server) chatSocket(c *gin.Context) {
	e := entryFrom(c)

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.With().Str("session", e.id.String()).Logger()
	log.Debug().Msg("chat socket connected")

	e.mu.Lock()
	ready := wsResponse{Event: wsEventReady, Transcript: e.state.Transcript}
	e.mu.Unlock()
	if err := writeWS(conn, ready); err != nil {
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	for {
		var req wsRequest
		if err := readWS(conn, &req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("unexpected close")
			} else {
				log.Debug().Msg("chat socket closed")
			}
			return
		}

		var resp wsResponse
		switch req.Action {
		case wsActionPing:
			resp = wsResponse{Event: wsEventPong}
		case wsActionStart:
			if err := s.execute(ctx, e, study.ActionChatStart); err != nil {
				resp = s.wsError(err)
				break
			}
			e.mu.Lock()
			resp = wsResponse{Event: wsEventStarted, Transcript: e.state.Transcript}
			e.mu.Unlock()
		case wsActionSend:
			reply, err := s.chat(ctx, e, req.Content)
			if err != nil {
				resp = s.wsError(err)
				break
			}
			resp = wsResponse{Event: wsEventReply, Content: reply}
		default:
			resp = wsResponse{Event: wsEventError, Code: ErrInvalidPayload, Error: s.cat.T(i18n.UnknownAction, req.Action)}
		}

		if err := writeWS(conn, resp); err != nil {
			log.Debug().Err(err).Msg("chat socket write failed")
			return
		}
	}
}

// wsError renders err the way fail does for HTTP.
func (s *Server) wsError(err error) wsResponse {
	e := s.describe(err)
	return wsResponse{Event: wsEventError, Code: e.code, Error: e.message}
}

func writeWS(conn *websocket.Conn, v any) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(v)
}

func readWS(conn *websocket.Conn, v any) error {
	conn.SetReadDeadline(time.Now().Add(30 * time.Minute))
	return conn.ReadJSON(v)
}
