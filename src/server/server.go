// Package server exposes the tutor over HTTP: streamed lessons as server-sent
// events, quizzes as JSON, and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/lattice-tutor/src/config"
	"github.com/Protocol-Lattice/lattice-tutor/src/metrics"
	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr     string
	backend  tutor.Backend
	log      *zap.Logger
	metrics  *metrics.Collector
	topic    tutor.Topic
	language string
	router   *gin.Engine
}

// New builds the router. Requests that name no topic or language fall back
// to the configured ones.
func New(cfg *config.Config, backend tutor.Backend, log *zap.Logger, m *metrics.Collector) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	switch cfg.Server.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		addr:     cfg.Server.Addr,
		backend:  backend,
		log:      log,
		metrics:  m,
		topic:    cfg.StartTopic(),
		language: cfg.Language,
	}
	if s.language == "" {
		s.language = tutor.DefaultLanguage
	}

	r := gin.New()
	r.Use(gin.Recovery(), cors(), requestLogger(log), metricsMiddleware(m))
	s.registerRoutes(r)
	s.router = r
	return s
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/topics", s.topics)
		api.GET("/languages", s.languages)

		api.POST("/learn", s.stream(tutor.ModeLearn))
		api.POST("/explain", s.stream(tutor.ModeExplain))
		api.POST("/generate", s.stream(tutor.ModeGenerate))
		api.POST("/projects", s.stream(tutor.ModeProjects))

		api.POST("/quiz", s.quiz)
		api.POST("/quiz/grade", s.grade)
	}
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("server exited")
	return nil
}
