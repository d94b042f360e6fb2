package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlowerence/Learn-Better/internal/events"
	"github.com/cmlowerence/Learn-Better/internal/redact"
	"github.com/google/uuid"
)

// outcomeSchemaInvalid is reported on attempt events when the model answered
// but its output was rejected.
const outcomeSchemaInvalid = "schema_invalid"

// Outcome is a successful generation result.
type Outcome struct {
	Batch

	// Model is the candidate that produced the batch.
	Model string

	// Attempts is the number of executor calls made, including the successful one.
	Attempts int

	// CallID identifies the call on emitted events and log lines.
	CallID uuid.UUID
}

// Orchestrator implements Generator by searching models and credentials.
// It holds only read-only configuration, so one instance serves concurrent
// calls.
type Orchestrator struct {
	logger   *slog.Logger
	executor Executor
	models   *ModelList
	creds    *CredentialPool
	prompts  *PromptBuilder
	backoff  BackoffPolicy
	maxItems int
	sleep    Sleeper
	shuffle  ShuffleFunc
	emitter  events.EventEmitter
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithBackoff sets the rate-limit backoff policy.
func WithBackoff(p BackoffPolicy) Option {
	return func(o *Orchestrator) { o.backoff = p }
}

// WithMaxItems sets the upper clamp for Request.ItemCount.
func WithMaxItems(n int) Option {
	return func(o *Orchestrator) { o.maxItems = n }
}

// WithPromptBuilder replaces the embedded prompt templates.
func WithPromptBuilder(b *PromptBuilder) Option {
	return func(o *Orchestrator) { o.prompts = b }
}

// WithSleeper replaces the backoff wait, mainly for tests.
func WithSleeper(s Sleeper) Option {
	return func(o *Orchestrator) { o.sleep = s }
}

// WithShuffle replaces the per-call credential shuffle, mainly for tests.
func WithShuffle(f ShuffleFunc) Option {
	return func(o *Orchestrator) { o.shuffle = f }
}

// WithEmitter publishes attempt and completion events to e.
func WithEmitter(e events.EventEmitter) Option {
	return func(o *Orchestrator) { o.emitter = e }
}

// NewOrchestrator creates an Orchestrator over the given executor, model
// list and credential pool.
func NewOrchestrator(
	logger *slog.Logger,
	executor Executor,
	models *ModelList,
	creds *CredentialPool,
	opts ...Option,
) (*Orchestrator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if executor == nil {
		return nil, fmt.Errorf("%w: executor cannot be nil", ErrInvalidConfig)
	}
	if models == nil || models.Len() == 0 {
		return nil, fmt.Errorf("%w: model list cannot be empty", ErrInvalidConfig)
	}
	if creds == nil || creds.Len() == 0 {
		return nil, fmt.Errorf("%w: credential pool cannot be empty", ErrInvalidConfig)
	}

	o := &Orchestrator{
		logger:   logger.With("component", "generation_orchestrator"),
		executor: executor,
		models:   models,
		creds:    creds,
		backoff:  DefaultBackoff(),
		maxItems: DefaultMaxItems,
		sleep:    Sleep,
		emitter:  events.NopEmitter{},
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.backoff.BaseDelay < 0 || o.backoff.MaxEscalations < 0 {
		return nil, fmt.Errorf("%w: backoff values cannot be negative", ErrInvalidConfig)
	}
	if o.prompts == nil {
		prompts, err := NewPromptBuilder("")
		if err != nil {
			return nil, err
		}
		o.prompts = prompts
	}

	return o, nil
}

// search tallies attempt outcomes for the terminal classification.
type search struct {
	attempts    int
	rateLimited int
	network     int
	answered    int
	lastErr     error
}

// classify picks the terminal kind for an exhausted search. Rate limits win
// only when they were the sole outcome; a model that answered with unusable
// output points at the request rather than at availability.
func (s *search) classify() ErrorKind {
	switch {
	case s.rateLimited == s.attempts:
		return KindAllRateLimited
	case s.network == s.attempts:
		return KindNetworkUnavailable
	case s.answered > 0:
		return KindSchemaInvalid
	default:
		return KindNoValidModel
	}
}

// Generate searches every model in priority order and, within each model,
// every credential in a freshly shuffled order, until one attempt yields a
// valid batch.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Outcome, error) {
	start := time.Now()
	callID := uuid.New()
	logger := o.logger.With("call_id", callID)

	normalized, err := req.Normalize(o.maxItems)
	if err != nil {
		logger.Debug("rejected generation request", "error", err)
		return nil, o.fail(ctx, callID, req, start, &GenerationError{Kind: KindInvalidRequest, Err: err})
	}
	req = normalized

	prompt, err := o.prompts.Build(req)
	if err != nil {
		logger.Error("failed to build prompt", "error", err, "kind", req.Kind)
		return nil, o.fail(ctx, callID, req, start, &GenerationError{Kind: KindNoValidModel, Err: err})
	}

	logger = logger.With("kind", req.Kind, "item_count", req.ItemCount)
	logger.Info("starting generation", "topic_length", len(req.Topic))

	total := o.models.Len() * o.creds.Len()
	var s search

	for _, model := range o.models.Candidates() {
		for _, cred := range o.creds.Shuffled(o.shuffle) {
			if err := ctx.Err(); err != nil {
				return nil, o.fail(ctx, callID, req, start, o.canceled(logger, &s, err))
			}

			s.attempts++
			attemptLog := logger.With("model", model.Name, "credential", cred, "attempt", s.attempts)
			attemptStart := time.Now()
			res := o.executor.Execute(ctx, model.Name, cred, prompt)

			if res.Outcome != OutcomeSuccess && ctx.Err() != nil {
				return nil, o.fail(ctx, callID, req, start, o.canceled(logger, &s, ctx.Err()))
			}

			attempt := events.Attempt{
				Number:     s.attempts,
				Model:      model.Name,
				Credential: cred.String(),
				Outcome:    res.Outcome.String(),
				Duration:   time.Since(attemptStart),
			}
			if res.Err != nil {
				attempt.Detail = redact.Error(res.Err)
				s.lastErr = res.Err
			}

			var delay time.Duration
			switch res.Outcome {
			case OutcomeSuccess:
				s.answered++
				batch, err := Parse(res.Text, req.Kind)
				if err == nil {
					o.emit(ctx, logger, events.NewAttemptEvent(callID, attempt))
					return o.succeed(ctx, logger, callID, req, start, model.Name, s.attempts, batch), nil
				}
				s.lastErr = err
				attempt.Outcome = outcomeSchemaInvalid
				attempt.Detail = redact.Error(err)
				attemptLog.Warn("model output rejected", "error", attempt.Detail)

			case OutcomeRateLimited:
				s.rateLimited++
				if s.attempts < total {
					delay = o.backoff.Delay(s.rateLimited)
				}
				attempt.Backoff = delay
				attemptLog.Warn("credential rate limited", "backoff", delay, "rate_limit_hits", s.rateLimited)

			case OutcomeNotFound:
				attemptLog.Warn("model not available for credential", "error", attempt.Detail)

			case OutcomeTransient:
				if res.Network {
					s.network++
				}
				attemptLog.Warn("transient attempt failure", "error", attempt.Detail, "network", res.Network)
			}

			o.emit(ctx, logger, events.NewAttemptEvent(callID, attempt))

			if delay > 0 {
				if err := o.sleep(ctx, delay); err != nil {
					return nil, o.fail(ctx, callID, req, start, o.canceled(logger, &s, err))
				}
			}
		}
	}

	genErr := &GenerationError{Kind: s.classify(), Attempts: s.attempts, Err: s.lastErr}
	logger.Error("generation exhausted all candidates",
		"classification", genErr.Kind,
		"attempts", s.attempts,
		"rate_limited", s.rateLimited,
		"network_failures", s.network)
	return nil, o.fail(ctx, callID, req, start, genErr)
}

func (o *Orchestrator) succeed(
	ctx context.Context,
	logger *slog.Logger,
	callID uuid.UUID,
	req Request,
	start time.Time,
	model string,
	attempts int,
	batch Batch,
) *Outcome {
	if batch.Len() != req.ItemCount {
		logger.Warn("model returned a different number of items than requested",
			"model", model, "requested", req.ItemCount, "received", batch.Len())
	}
	logger.Info("generation succeeded", "model", model, "attempts", attempts, "items", batch.Len())

	o.emit(ctx, logger, events.NewCompletionEvent(callID, events.Completion{
		OutputKind: req.Kind.String(),
		Result:     "success",
		Model:      model,
		Attempts:   attempts,
		Items:      batch.Len(),
		Duration:   time.Since(start),
	}))

	return &Outcome{Batch: batch, Model: model, Attempts: attempts, CallID: callID}
}

func (o *Orchestrator) canceled(logger *slog.Logger, s *search, cause error) *GenerationError {
	logger.Info("generation canceled", "attempts", s.attempts, "error", cause)
	return &GenerationError{Kind: KindCanceled, Attempts: s.attempts, Err: cause}
}

func (o *Orchestrator) fail(
	ctx context.Context,
	callID uuid.UUID,
	req Request,
	start time.Time,
	genErr *GenerationError,
) error {
	o.emit(ctx, o.logger, events.NewCompletionEvent(callID, events.Completion{
		OutputKind: req.Kind.String(),
		Result:     string(genErr.Kind),
		Attempts:   genErr.Attempts,
		Duration:   time.Since(start),
	}))
	return genErr
}

// emit publishes an event without letting handler failures or caller
// cancellation reach the search.
func (o *Orchestrator) emit(ctx context.Context, logger *slog.Logger, event *events.Event) {
	if err := o.emitter.EmitEvent(context.WithoutCancel(ctx), event); err != nil {
		logger.Debug("event handler failed", "error", err, "event_type", event.Type)
	}
}
