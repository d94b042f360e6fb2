package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	// TypeAttempt is emitted after every (model, credential) attempt.
	TypeAttempt = "generation.attempt"

	// TypeCompleted is emitted once per generation call, success or failure.
	TypeCompleted = "generation.completed"
)

// Event describes something that happened during a generation call.
// Exactly one of Attempt or Completion is set, matching Type.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is TypeAttempt or TypeCompleted
	Type string `json:"type"`

	// CallID groups all events produced by one generation call
	CallID uuid.UUID `json:"call_id"`

	Attempt    *Attempt    `json:"attempt,omitempty"`
	Completion *Completion `json:"completion,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// Attempt records a single call to one model under one credential.
type Attempt struct {
	Number int    `json:"number"`
	Model  string `json:"model"`

	// Credential is always masked; raw secrets never enter events.
	Credential string `json:"credential"`

	// Outcome is success, rate_limited, not_found, transient or schema_invalid.
	Outcome string `json:"outcome"`
	Detail  string `json:"detail,omitempty"`

	Duration time.Duration `json:"duration"`

	// Backoff is the delay taken after this attempt, zero when none.
	Backoff time.Duration `json:"backoff"`
}

// Completion summarises a finished generation call.
type Completion struct {
	OutputKind string `json:"output_kind"`

	// Result is "success" or the terminal error classification.
	Result   string        `json:"result"`
	Model    string        `json:"model,omitempty"`
	Attempts int           `json:"attempts"`
	Items    int           `json:"items"`
	Duration time.Duration `json:"duration"`
}

// NewAttemptEvent creates an attempt event for the given call.
func NewAttemptEvent(callID uuid.UUID, attempt Attempt) *Event {
	return &Event{
		ID:        uuid.New(),
		Type:      TypeAttempt,
		CallID:    callID,
		Attempt:   &attempt,
		CreatedAt: time.Now(),
	}
}

// NewCompletionEvent creates a completion event for the given call.
func NewCompletionEvent(callID uuid.UUID, completion Completion) *Event {
	return &Event{
		ID:         uuid.New(),
		Type:       TypeCompleted,
		CallID:     callID,
		Completion: &completion,
		CreatedAt:  time.Now(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows the generation loop to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *Event) error { return nil }
