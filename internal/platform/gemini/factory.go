package gemini

import (
	"fmt"
	"log/slog"

	"github.com/cmlowerence/Learn-Better/internal/config"
	"github.com/cmlowerence/Learn-Better/internal/generation"
)

// NewGenerator wires a Gemini-backed generation.Orchestrator from
// configuration. Extra options are applied after the configured ones, so
// callers can add an emitter or override the sleeper in tests.
func NewGenerator(
	logger *slog.Logger,
	cfg config.LLMConfig,
	opts ...generation.Option,
) (*generation.Orchestrator, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	executor, err := NewExecutor(logger, cfg)
	if err != nil {
		return nil, err
	}

	models, err := generation.NewModelList(cfg.Models)
	if err != nil {
		return nil, err
	}

	creds, err := generation.NewCredentialPool(cfg.APIKeys)
	if err != nil {
		return nil, err
	}

	prompts, err := generation.NewPromptBuilder(cfg.PromptTemplateDir)
	if err != nil {
		return nil, err
	}

	logger.Info("initializing Gemini generator",
		"models", cfg.Models,
		"credentials", creds.Len(),
		"base_delay", cfg.BaseDelay,
		"max_backoff_escalations", cfg.MaxBackoffEscalations)

	base := []generation.Option{
		generation.WithBackoff(Backoff(cfg)),
		generation.WithMaxItems(cfg.MaxItems),
		generation.WithPromptBuilder(prompts),
	}
	return generation.NewOrchestrator(logger, executor, models, creds, append(base, opts...)...)
}

// Backoff returns the rate-limit policy described by cfg.
func Backoff(cfg config.LLMConfig) generation.BackoffPolicy {
	return generation.BackoffPolicy{
		BaseDelay:      cfg.BaseDelay,
		MaxEscalations: cfg.MaxBackoffEscalations,
	}
}
