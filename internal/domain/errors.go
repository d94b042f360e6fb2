// Package domain defines the core study content entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is usually wrapped with the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownOutputKind is returned when an output kind is not quiz or flashcard.
	ErrUnknownOutputKind = errors.New("unknown output kind")

	// ErrCorrectIndexOutOfRange is returned when a quiz item's answer index
	// does not address one of its options.
	ErrCorrectIndexOutOfRange = errors.New("correct index out of range")
)
