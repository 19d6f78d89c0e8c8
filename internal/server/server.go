// Package server exposes study sessions over HTTP. Each session lives in
// memory and is driven through the same state machine as the terminal UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/abhisek/studyflow/internal/i18n"
	"github.com/abhisek/studyflow/internal/study"
)

// Options configures the server.
type Options struct {
	Service *study.Service
	Log     zerolog.Logger
	// AllowedOrigins restricts CORS and WebSocket origins. Empty allows all.
	AllowedOrigins []string
	SessionTTL     time.Duration
	MaxUploadBytes int64
	// GinMode is release, debug or test. Empty means release.
	GinMode string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Server is the HTTP API.
type Server struct {
	svc       *study.Service
	cat       *i18n.Catalog
	log       zerolog.Logger
	sessions  *registry
	validate  *requestValidator
	upgrader  websocket.Upgrader
	maxUpload int64
	now       func() time.Time
	engine    *gin.Engine
}

// New builds the server and its routes.
func New(opts Options) (*Server, error) {
	if opts.Service == nil {
		return nil, errors.New("server: nil study service")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 2 * time.Hour
	}
	if opts.GinMode == "" {
		opts.GinMode = gin.ReleaseMode
	}

	cat := opts.Service.Catalog()
	rv, err := newRequestValidator(cat.Locale())
	if err != nil {
		return nil, err
	}

	s := &Server{
		svc:       opts.Service,
		cat:       cat,
		log:       opts.Log.With().Str("component", "server").Logger(),
		sessions:  newRegistry(cat, opts.SessionTTL, opts.Now),
		validate:  rv,
		upgrader:  buildUpgrader(opts.AllowedOrigins),
		maxUpload: opts.MaxUploadBytes,
		now:       opts.Now,
	}
	s.engine = s.routes(opts)
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(opts Options) *gin.Engine {
	gin.SetMode(opts.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsConfig))

	r.Use(RequestIDMiddleware())
	r.Use(s.requestLogger())

	r.GET("/health", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.count()})
	})

	v1 := r.Group("/api/v1")
	v1.POST("/sessions", s.createSession)

	sess := v1.Group("/sessions/:id")
	sess.Use(s.loadSession())
	{
		sess.GET("", s.getSession)
		sess.DELETE("", s.deleteSession)
		sess.POST("/reset", s.resetSession)
		sess.PATCH("/inputs", s.updateInputs)
		sess.POST("/notes", s.uploadNotes)
		sess.PUT("/tool", s.selectTool)
		sess.DELETE("/error", s.dismissError)

		sess.POST("/plan", s.action(study.ActionPlan))
		sess.POST("/analysis", s.action(study.ActionAnalysis))
		sess.POST("/flashcards", s.action(study.ActionFlashcards))
		sess.POST("/quiz", s.action(study.ActionQuiz))
		sess.POST("/quiz/answers", s.answerQuiz)

		sess.POST("/chat/start", s.action(study.ActionChatStart))
		sess.POST("/chat", s.sendChat)
		sess.GET("/chat/ws", s.chatSocket)

		sess.GET("/progress", s.progress)
	}

	return r
}

// requestLogger logs one line per request at debug level, or warn for
// server errors.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := s.log.Debug()
		if status >= http.StatusInternalServerError {
			evt = s.log.Warn()
		}
		evt.Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// Run serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.sessions.runJanitor(janitorCtx, time.Minute, s.log)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
