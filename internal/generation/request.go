package generation

import (
	"fmt"
	"strings"

	"github.com/cmlowerence/Learn-Better/internal/domain"
)

// Request defaults and limits.
const (
	DefaultItemCount  = 5
	DefaultMaxItems   = 50
	DefaultDifficulty = "medium"
	DefaultFocus      = "concept"
)

// Request describes the items a caller wants. Difficulty and Focus are free
// text handed to the model unchanged.
type Request struct {
	Topic      string
	ItemCount  int
	Difficulty string
	Focus      string
	Kind       domain.OutputKind
}

// Normalize returns a copy of r with defaults applied and ItemCount clamped
// to [1, maxItems]. A zero ItemCount means DefaultItemCount.
func (r Request) Normalize(maxItems int) (Request, error) {
	if maxItems < 1 {
		maxItems = DefaultMaxItems
	}

	r.Topic = strings.TrimSpace(r.Topic)
	if r.Topic == "" {
		return Request{}, fmt.Errorf("%w: topic cannot be empty", ErrInvalidRequest)
	}

	if !r.Kind.Valid() {
		return Request{}, fmt.Errorf("%w: %w: %q", ErrInvalidRequest, domain.ErrUnknownOutputKind, r.Kind)
	}

	switch {
	case r.ItemCount == 0:
		r.ItemCount = DefaultItemCount
	case r.ItemCount < 1:
		r.ItemCount = 1
	}
	if r.ItemCount > maxItems {
		r.ItemCount = maxItems
	}

	r.Difficulty = strings.TrimSpace(r.Difficulty)
	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	r.Focus = strings.TrimSpace(r.Focus)
	if r.Focus == "" {
		r.Focus = DefaultFocus
	}

	return r, nil
}
