package domain

import (
	"fmt"
	"strings"
)

// OutputKind selects the shape of generated study items.
type OutputKind string

const (
	// KindQuiz produces multiple-choice questions.
	KindQuiz OutputKind = "quiz"

	// KindFlashcard produces front/back recall cards.
	KindFlashcard OutputKind = "flashcard"
)

// ParseOutputKind converts user input into an OutputKind. Matching is
// case-insensitive and tolerates the plural forms the UI sends.
func ParseOutputKind(s string) (OutputKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiz", "quizzes":
		return KindQuiz, nil
	case "flashcard", "flashcards":
		return KindFlashcard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOutputKind, s)
	}
}

// Valid reports whether k is one of the supported kinds.
func (k OutputKind) Valid() bool {
	return k == KindQuiz || k == KindFlashcard
}

func (k OutputKind) String() string {
	return string(k)
}
