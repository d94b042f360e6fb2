package generation

import (
	"errors"
	"fmt"
)

// Sentinel errors for terminal generation outcomes. A *GenerationError
// matches exactly one of these through errors.Is.
var (
	// ErrInvalidRequest is returned when the request cannot be served as given
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrAllRateLimited is returned when every attempt in the search was rate limited
	ErrAllRateLimited = errors.New("all model candidates are rate limited")

	// ErrNoValidModel is returned when no model could be reached with any credential
	ErrNoValidModel = errors.New("no valid model available")

	// ErrSchemaInvalid is returned when model output could not be repaired into
	// a valid batch. Per-attempt repair and validation failures wrap it too.
	ErrSchemaInvalid = errors.New("model output does not match the item schema")

	// ErrNetworkUnavailable is returned when every attempt failed in transport
	ErrNetworkUnavailable = errors.New("generation service unreachable")

	// ErrCanceled is returned when the caller's context ends the search
	ErrCanceled = errors.New("generation canceled")

	// ErrInvalidConfig is returned when the orchestrator is built with unusable configuration
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// ErrorKind classifies a terminal generation failure.
type ErrorKind string

// Terminal classifications.
const (
	KindInvalidRequest     ErrorKind = "invalid_request"
	KindAllRateLimited     ErrorKind = "all_candidates_rate_limited"
	KindNoValidModel       ErrorKind = "no_valid_model"
	KindSchemaInvalid      ErrorKind = "schema_invalid"
	KindNetworkUnavailable ErrorKind = "network_unavailable"
	KindCanceled           ErrorKind = "canceled"
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidRequest:     ErrInvalidRequest,
	KindAllRateLimited:     ErrAllRateLimited,
	KindNoValidModel:       ErrNoValidModel,
	KindSchemaInvalid:      ErrSchemaInvalid,
	KindNetworkUnavailable: ErrNetworkUnavailable,
	KindCanceled:           ErrCanceled,
}

// GenerationError is the terminal error returned by Generate.
type GenerationError struct {
	Kind ErrorKind

	// Attempts is the number of executor calls made before giving up.
	Attempts int

	// Err is the last underlying cause, if any.
	Err error
}

func (e *GenerationError) Error() string {
	msg := kindSentinels[e.Kind].Error()
	if e.Attempts > 0 {
		msg = fmt.Sprintf("%s after %d attempts", msg, e.Attempts)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the sentinel for Kind and the underlying cause, so
// errors.Is(err, ErrCanceled) and errors.Is(err, context.Canceled) both hold
// for a canceled call.
func (e *GenerationError) Unwrap() []error {
	errs := []error{kindSentinels[e.Kind]}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the classification of err if it is, or wraps, a
// *GenerationError.
func KindOf(err error) (ErrorKind, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return "", false
}
