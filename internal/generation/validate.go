package generation

import (
	"encoding/json"
	"fmt"

	"github.com/cmlowerence/Learn-Better/internal/domain"
)

// Batch is a validated, non-empty set of items of a single kind. Only the
// slice matching Kind is populated.
type Batch struct {
	Kind       domain.OutputKind      `json:"kind"`
	Quiz       []domain.QuizItem      `json:"quiz,omitempty"`
	Flashcards []domain.FlashcardItem `json:"flashcards,omitempty"`
}

// Len returns the number of items in the batch.
func (b Batch) Len() int {
	if b.Kind == domain.KindFlashcard {
		return len(b.Flashcards)
	}
	return len(b.Quiz)
}

// Items returns the populated slice as a value suitable for encoding.
func (b Batch) Items() any {
	if b.Kind == domain.KindFlashcard {
		return b.Flashcards
	}
	return b.Quiz
}

// quizWire mirrors domain.QuizItem with a pointer index so that a missing
// correctIndex is distinguishable from 0. Decoding into *int also rejects
// fractional and quoted numbers.
type quizWire struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex *int     `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// Decode parses candidate text as a JSON array, leaving elements undecoded.
func Decode(candidate string) ([]json.RawMessage, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &elems); err != nil {
		return nil, fmt.Errorf("%w: decode array: %v", ErrSchemaInvalid, err)
	}
	return elems, nil
}

// Validate checks every element against the schema for kind. Any invalid
// element rejects the whole batch.
func Validate(elems []json.RawMessage, kind domain.OutputKind) (Batch, error) {
	if len(elems) == 0 {
		return Batch{}, fmt.Errorf("%w: empty item list", ErrSchemaInvalid)
	}

	switch kind {
	case domain.KindQuiz:
		items := make([]domain.QuizItem, 0, len(elems))
		for i, raw := range elems {
			item, err := decodeQuizItem(raw)
			if err != nil {
				return Batch{}, fmt.Errorf("%w: item %d: %w", ErrSchemaInvalid, i, err)
			}
			items = append(items, item)
		}
		return Batch{Kind: kind, Quiz: items}, nil

	case domain.KindFlashcard:
		items := make([]domain.FlashcardItem, 0, len(elems))
		for i, raw := range elems {
			var item domain.FlashcardItem
			if err := json.Unmarshal(raw, &item); err != nil {
				return Batch{}, fmt.Errorf("%w: item %d: %v", ErrSchemaInvalid, i, err)
			}
			if err := item.Validate(); err != nil {
				return Batch{}, fmt.Errorf("%w: item %d: %w", ErrSchemaInvalid, i, err)
			}
			items = append(items, item)
		}
		return Batch{Kind: kind, Flashcards: items}, nil

	default:
		return Batch{}, fmt.Errorf("%w: %q", domain.ErrUnknownOutputKind, kind)
	}
}

func decodeQuizItem(raw json.RawMessage) (domain.QuizItem, error) {
	var w quizWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.QuizItem{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if w.CorrectIndex == nil {
		return domain.QuizItem{}, fmt.Errorf("%w: correctIndex is missing", domain.ErrValidation)
	}

	item := domain.QuizItem{
		Question:     w.Question,
		Options:      w.Options,
		CorrectIndex: *w.CorrectIndex,
		Explanation:  w.Explanation,
	}
	if err := item.Validate(); err != nil {
		return domain.QuizItem{}, err
	}
	return item, nil
}

// Parse runs the full acceptance pipeline on raw model text:
// Repair, Decode, then Validate.
func Parse(raw string, kind domain.OutputKind) (Batch, error) {
	candidate, err := Repair(raw)
	if err != nil {
		return Batch{}, err
	}
	elems, err := Decode(candidate)
	if err != nil {
		return Batch{}, err
	}
	return Validate(elems, kind)
}
