package cli

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Protocol-Lattice/lattice-tutor/src/config"
	"github.com/Protocol-Lattice/lattice-tutor/src/gateway"
	"github.com/Protocol-Lattice/lattice-tutor/src/logging"
	"github.com/Protocol-Lattice/lattice-tutor/src/metrics"
	"github.com/Protocol-Lattice/lattice-tutor/src/tutor"
)

// app is everything a command needs once configuration has been read.
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	metrics  *metrics.Collector
	gateway  *gateway.Gateway
	topic    tutor.Topic
	language string
	closers  []func() error
}

// newApp wires config, logging, metrics and the model gateway. topicID
// overrides the configured start topic when non-empty.
func newApp(ctx context.Context, topicID string, console bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	topic, err := resolveTopic(topicID, cfg.StartTopic())
	if err != nil {
		return nil, err
	}
	language, err := resolveLanguage(languageFlag, cfg.Language)
	if err != nil {
		return nil, err
	}
	cfg.Topic, cfg.Language = topic.ID, language

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		metrics:  metrics.New(),
		topic:    topic,
		language: language,
	}
	provider, err := a.provider(ctx)
	if err != nil {
		log.Error("model backend unavailable", zap.String("backend", cfg.Backend), zap.Error(err))
		a.Close()
		return nil, fmt.Errorf("%s backend: %w", cfg.Backend, err)
	}
	a.gateway = gateway.New(provider, gateway.WithLogger(log), gateway.WithMetrics(a.metrics))
	log.Info("tutor ready",
		zap.String("backend", cfg.Backend),
		zap.String("model", cfg.Model),
		zap.String("topic", topic.ID),
		zap.String("language", language),
	)
	return a, nil
}

func (a *app) provider(ctx context.Context) (gateway.Provider, error) {
	switch a.cfg.Backend {
	case config.BackendAgent:
		// The agent's Gemini module reads its key from the environment.
		if os.Getenv("GOOGLE_API_KEY") == "" {
			os.Setenv("GOOGLE_API_KEY", a.cfg.APIKey)
		}
		return gateway.NewAgentProvider(ctx, a.cfg.Model)
	default:
		p, err := gateway.NewGeminiProvider(ctx, a.cfg.APIKey, a.cfg.Model)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, p.Close)
		return p, nil
	}
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Debug("close failed", zap.Error(err))
		}
	}
	_ = a.log.Sync()
}

// resolveTopic prefers an explicit flag over the configured topic.
// topicArg prefers a positional topic over --topic.
func topicArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return topicFlag
}

func resolveTopic(flag string, fallback tutor.Topic) (tutor.Topic, error) {
	if flag == "" {
		return fallback, nil
	}
	t, ok := tutor.LookupTopic(flag)
	if !ok {
		return tutor.Topic{}, fmt.Errorf("unknown topic %q (see lattice-tutor topics)", flag)
	}
	return t, nil
}

func resolveLanguage(flag, fallback string) (string, error) {
	if flag == "" {
		if fallback == "" {
			return tutor.DefaultLanguage, nil
		}
		return fallback, nil
	}
	l, ok := tutor.LookupLanguage(flag)
	if !ok {
		return "", fmt.Errorf("unsupported language %q (see lattice-tutor topics)", flag)
	}
	return l, nil
}
