package generation

import "context"

// AttemptOutcome tags the result of a single executor call.
type AttemptOutcome int

const (
	// OutcomeSuccess means the model returned text.
	OutcomeSuccess AttemptOutcome = iota
	// OutcomeRateLimited means the credential hit a rate limit or quota.
	OutcomeRateLimited
	// OutcomeNotFound means the model is unknown or unavailable to the credential.
	OutcomeNotFound
	// OutcomeTransient covers every other failure.
	OutcomeTransient
)

func (o AttemptOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// AttemptResult is the classified result of one (model, credential) call.
type AttemptResult struct {
	Outcome AttemptOutcome

	// Text is the raw model output; set only for OutcomeSuccess.
	Text string

	// Err carries the provider error for failed outcomes.
	Err error

	// Network marks a transient failure that never reached the provider.
	Network bool
}

// Succeeded wraps raw model text.
func Succeeded(text string) AttemptResult {
	return AttemptResult{Outcome: OutcomeSuccess, Text: text}
}

// RateLimited reports a rate limit or quota rejection.
func RateLimited(err error) AttemptResult {
	return AttemptResult{Outcome: OutcomeRateLimited, Err: err}
}

// NotFound reports an unknown or unsupported model.
func NotFound(err error) AttemptResult {
	return AttemptResult{Outcome: OutcomeNotFound, Err: err}
}

// Transient reports any other failure. network is true for transport-level
// failures such as DNS errors, refused connections and timeouts.
func Transient(err error, network bool) AttemptResult {
	return AttemptResult{Outcome: OutcomeTransient, Err: err, Network: network}
}

// Executor performs exactly one model call. Implementations must classify
// every failure into an AttemptResult rather than return it, and must not
// mutate state shared between calls.
type Executor interface {
	Execute(ctx context.Context, model string, cred Credential, prompt string) AttemptResult
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, model string, cred Credential, prompt string) AttemptResult

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, model string, cred Credential, prompt string) AttemptResult {
	return f(ctx, model, cred, prompt)
}
