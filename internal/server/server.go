// Package server exposes the mock test flows over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/toppers/mocktest/internal/feedback"
	"github.com/toppers/mocktest/internal/mcqtest"
)

// DefaultAddr is used when TOPPERS_ADDR is unset.
const DefaultAddr = ":8080"

// Config controls the HTTP listener.
type Config struct {
	Addr string

	// RequestTimeout bounds each request, model call included.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:            DefaultAddr,
		RequestTimeout:  2 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ConfigFromEnv reads TOPPERS_ADDR over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("TOPPERS_ADDR"); v != "" {
		cfg.Addr = v
	}
	return cfg
}

// TestGenerator produces MCQ tests.
type TestGenerator interface {
	Generate(ctx context.Context, req mcqtest.Request) (*mcqtest.Test, error)
}

// FeedbackGenerator produces motivational feedback.
type FeedbackGenerator interface {
	Generate(ctx context.Context, req feedback.Request) (*feedback.Result, error)
}

// Server serves the MCQ and feedback endpoints.
type Server struct {
	tests    TestGenerator
	feedback FeedbackGenerator
	model    string
	config   Config
	log      logrus.FieldLogger
}

// New creates a Server. model is reported by /healthz.
func New(tests TestGenerator, fb FeedbackGenerator, model string, cfg Config, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		tests:    tests,
		feedback: fb,
		model:    model,
		config:   cfg,
		log:      log,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	if s.config.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.config.RequestTimeout))
	}

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/mcq-test", s.generateTest)
		r.Post("/feedback", s.generateFeedback)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.config.Addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
