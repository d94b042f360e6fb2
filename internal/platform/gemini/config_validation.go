package gemini

import (
	"fmt"
	"log/slog"

	"github.com/cmlowerence/Learn-Better/internal/config"
	"github.com/cmlowerence/Learn-Better/internal/generation"
)

// validateConfig checks the settings the executor itself depends on. The
// credential pool and model list are validated where they are built.
func validateConfig(logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.AttemptTimeout <= 0 {
		logger.Error("invalid attempt timeout", "value", cfg.AttemptTimeout)
		return fmt.Errorf("%w: attempt timeout must be positive", generation.ErrInvalidConfig)
	}

	if cfg.BaseURL != "" {
		logger.Info("using custom Gemini endpoint", "base_url", cfg.BaseURL)
	}

	return nil
}
