package generation

import (
	"fmt"
	"strings"
)

// ModelCandidate is one model the orchestrator may call. Lower Rank is preferred.
type ModelCandidate struct {
	Name string
	Rank int
}

// ModelList is the static, priority-ordered list of model candidates.
type ModelList struct {
	candidates []ModelCandidate
}

// NewModelList ranks names in the order given, most preferred first.
func NewModelList(names []string) (*ModelList, error) {
	candidates := make([]ModelCandidate, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
		}
		candidates = append(candidates, ModelCandidate{Name: name, Rank: len(candidates)})
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: at least one model is required", ErrInvalidConfig)
	}
	return &ModelList{candidates: candidates}, nil
}

// Candidates returns a copy of the list in priority order.
func (l *ModelList) Candidates() []ModelCandidate {
	out := make([]ModelCandidate, len(l.candidates))
	copy(out, l.candidates)
	return out
}

// Len returns the number of candidates.
func (l *ModelList) Len() int {
	return len(l.candidates)
}
