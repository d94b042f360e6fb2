package domain

import "fmt"

// FlashcardItem is a single recall card. Reference optionally points the
// learner at a source (textbook section, formula name).
type FlashcardItem struct {
	Front     string `json:"front" validate:"required"`
	Back      string `json:"back" validate:"required"`
	Reference string `json:"reference,omitempty"`
}

// Validate checks that both sides of the card carry text.
func (f FlashcardItem) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: flashcard item: %v", ErrValidation, err)
	}
	return nil
}
