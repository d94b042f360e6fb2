package gemini

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cmlowerence/Learn-Better/internal/generation"
)

const generateContentAction = "generateContent"

// ListModels returns the models cred can use for content generation, with
// the "models/" resource prefix removed.
func (e *Executor) ListModels(ctx context.Context, cred generation.Credential) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	client, err := e.newClient(ctx, cred)
	if err != nil {
		return nil, err
	}

	var names []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if !slices.Contains(model.SupportedActions, generateContentAction) {
			continue
		}
		names = append(names, strings.TrimPrefix(model.Name, "models/"))
	}

	e.logger.DebugContext(ctx, "listed models", "credential", cred, "count", len(names))
	return names, nil
}
