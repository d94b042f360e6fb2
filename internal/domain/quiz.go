package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// QuizOptionCount is the number of answer options every quiz item carries.
const QuizOptionCount = 4

// validate is shared by all entity validations; validator.Validate is safe
// for concurrent use once constructed.
var validate = validator.New(validator.WithRequiredStructEnabled())

// QuizItem is a single multiple-choice question.
type QuizItem struct {
	Question     string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"len=4,dive,required"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0,lt=4"`
	Explanation  string   `json:"explanation" validate:"required"`
}

// Validate checks the item's shape: non-empty question and explanation,
// exactly four non-empty options and an answer index that addresses one of
// them.
func (q QuizItem) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: quiz item: %v", ErrValidation, err)
	}

	if q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: index %d with %d options",
			ErrCorrectIndexOutOfRange, q.CorrectIndex, len(q.Options))
	}

	return nil
}

// CorrectOption returns the text of the correct answer.
func (q QuizItem) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}
