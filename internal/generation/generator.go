package generation

import "context"

// Generator defines the interface for producing study items.
// This interface serves as a boundary between the application core and
// its callers (HTTP handlers, the CLI), which never see models or credentials.
type Generator interface {
	// Generate returns a non-empty validated batch for req, or a
	// *GenerationError describing why none could be produced.
	Generate(ctx context.Context, req Request) (*Outcome, error)
}

var _ Generator = (*Orchestrator)(nil)
