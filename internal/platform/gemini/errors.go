package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyResponse is returned when the API answers without any candidate text.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrContentBlocked is returned when the response was withheld by safety filters.
	ErrContentBlocked = errors.New("content blocked by model safety filters")

	// ErrEmptyPrompt is returned when an attempt is made without a prompt.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
