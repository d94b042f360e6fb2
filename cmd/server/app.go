package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlowerence/Learn-Better/internal/auth"
	"github.com/cmlowerence/Learn-Better/internal/config"
	"github.com/cmlowerence/Learn-Better/internal/events"
	"github.com/cmlowerence/Learn-Better/internal/generation"
	"github.com/cmlowerence/Learn-Better/internal/metrics"
	"github.com/cmlowerence/Learn-Better/internal/platform/gemini"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds the wired dependencies of the server.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	generator  generation.Generator
	validator  auth.TokenValidator
	registry   *prometheus.Registry
	retryAfter time.Duration
}

// AuditLogHandler writes generation events to the log: attempts at debug
// level, completed calls at info.
type AuditLogHandler struct {
	logger *slog.Logger
}

// HandleEvent implements events.EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Type {
	case events.TypeAttempt:
		a := event.Attempt
		h.logger.DebugContext(ctx, "generation attempt",
			"call_id", event.CallID,
			"attempt", a.Number,
			"model", a.Model,
			"credential", a.Credential,
			"outcome", a.Outcome,
			"duration", a.Duration,
			"backoff", a.Backoff)
	case events.TypeCompleted:
		c := event.Completion
		h.logger.InfoContext(ctx, "generation completed",
			"call_id", event.CallID,
			"kind", c.OutputKind,
			"result", c.Result,
			"model", c.Model,
			"attempts", c.Attempts,
			"items", c.Items,
			"duration", c.Duration)
	default:
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
	}
	return nil
}

// newApplication wires metrics, events, the Gemini-backed generator and,
// when a secret is configured, token validation.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	collector, err := metrics.NewCollector(registry)
	if err != nil {
		return nil, err
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(collector)
	emitter.RegisterHandler(&AuditLogHandler{logger: logger.With("component", "generation_audit")})

	generator, err := gemini.NewGenerator(logger, cfg.LLM, generation.WithEmitter(emitter))
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		generator:  generator,
		registry:   registry,
		retryAfter: gemini.Backoff(cfg.LLM).Delay(max(cfg.LLM.MaxBackoffEscalations, 1)),
	}

	if cfg.Auth.Enabled() {
		app.validator, err = auth.NewTokenValidator(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to create token validator: %w", err)
		}
	} else {
		logger.Warn("auth.jwt_secret not set; /api/generate is unauthenticated")
	}

	return app, nil
}
