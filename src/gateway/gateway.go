package gateway

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Protocol-Lattice/lattice-tutor/src/metrics"
	"github.com/Protocol-Lattice/lattice-tutor/src/prompts"
	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// Gateway is the tutor's only way to reach the model.
type Gateway struct {
	provider Provider
	log      *zap.Logger
	metrics  *metrics.Collector
}

type Option func(*Gateway)

func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) { g.log = l }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(g *Gateway) { g.metrics = c }
}

func New(p Provider, opts ...Option) *Gateway {
	g := &Gateway{provider: p, log: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// StreamText starts a streamed generation for mode. Failures, whether at
// start or mid-stream, match ErrRequestFailed.
func (g *Gateway) StreamText(ctx context.Context, mode tutor.Mode, prompt string) (tutor.Fragments, error) {
	id := uuid.NewString()
	log := g.log.With(zap.String("request_id", id), zap.String("mode", mode.Slug()), zap.String("provider", g.provider.Name()))
	log.Debug("stream start", zap.Int("prompt_bytes", len(prompt)))

	start := time.Now()
	s, err := g.provider.Stream(ctx, prompt)
	if err != nil {
		g.observe(mode, "error", start)
		log.Error("stream open failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return &observedStream{Stream: s, g: g, mode: mode, log: log, start: start}, nil
}

// GenerateQuiz requests a structured quiz and validates it.
func (g *Gateway) GenerateQuiz(ctx context.Context, topic, language string) ([]tutor.QuizItem, error) {
	id := uuid.NewString()
	log := g.log.With(zap.String("request_id", id), zap.String("mode", tutor.ModeQuiz.Slug()), zap.String("provider", g.provider.Name()))
	start := time.Now()

	raw, err := g.provider.Complete(ctx, prompts.Quiz(topic, language), QuizSchema)
	if err != nil {
		g.observe(tutor.ModeQuiz, "error", start)
		log.Error("quiz request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	items, err := ParseQuiz(raw)
	if err != nil {
		g.observe(tutor.ModeQuiz, "invalid", start)
		log.Warn("quiz reply rejected", zap.Error(err), zap.Int("reply_bytes", len(raw)))
		return nil, err
	}
	g.observe(tutor.ModeQuiz, "ok", start)
	log.Info("quiz generated", zap.Duration("took", time.Since(start)))
	return items, nil
}

func (g *Gateway) observe(mode tutor.Mode, outcome string, start time.Time) {
	g.metrics.ObserveRequest(mode.Slug(), g.provider.Name(), outcome, time.Since(start))
}

// observedStream counts fragments, wraps failures and reports the outcome
// exactly once, when the stream ends or is closed early.
type observedStream struct {
	Stream
	g     *Gateway
	mode  tutor.Mode
	log   *zap.Logger
	start time.Time

	frags int
	once  sync.Once
}

func (s *observedStream) Next() bool {
	if s.Stream.Next() {
		s.frags++
		s.g.metrics.AddFragment(s.mode.Slug())
		return true
	}
	s.report(true)
	return false
}

func (s *observedStream) Err() error {
	if err := s.Stream.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return nil
}

func (s *observedStream) Close() error {
	s.report(false)
	return s.Stream.Close()
}

func (s *observedStream) report(finished bool) {
	s.once.Do(func() {
		fields := []zap.Field{zap.Int("fragments", s.frags), zap.Duration("took", time.Since(s.start))}
		switch err := s.Stream.Err(); {
		case err != nil:
			s.g.observe(s.mode, "error", s.start)
			s.log.Error("stream failed", append(fields, zap.Error(err))...)
		case !finished:
			s.g.observe(s.mode, "cancelled", s.start)
			s.log.Info("stream abandoned", fields...)
		default:
			s.g.observe(s.mode, "ok", s.start)
			s.log.Info("stream done", fields...)
		}
	})
}
