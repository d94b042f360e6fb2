package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cmlowerence/Learn-Better/internal/domain"
	"github.com/cmlowerence/Learn-Better/internal/generation"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, domain.ErrUnknownOutputKind):
		return http.StatusBadRequest

	// try again soon
	case errors.Is(err, generation.ErrAllRateLimited):
		return http.StatusTooManyRequests

	// the request cannot succeed as phrased
	case errors.Is(err, generation.ErrSchemaInvalid):
		return http.StatusUnprocessableEntity

	// misconfigured upstream
	case errors.Is(err, generation.ErrNoValidModel):
		return http.StatusBadGateway

	case errors.Is(err, generation.ErrNetworkUnavailable),
		errors.Is(err, generation.ErrCanceled):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrUnknownOutputKind):
		return "Unknown output kind; use quiz or flashcard"
	case errors.Is(err, generation.ErrInvalidRequest):
		return "Invalid generation request"
	case errors.Is(err, generation.ErrAllRateLimited):
		return "The generator is handling high traffic; please retry shortly"
	case errors.Is(err, generation.ErrSchemaInvalid):
		return "Could not produce valid items for this request; try rephrasing the topic"
	case errors.Is(err, generation.ErrNoValidModel):
		return "The generation service is misconfigured"
	case errors.Is(err, generation.ErrNetworkUnavailable):
		return "The generation service is unavailable"
	case errors.Is(err, generation.ErrCanceled):
		return "The request was canceled"
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'GenerateRequest.Topic' Error:Field validation for 'Topic' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
