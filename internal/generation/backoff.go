package generation

import (
	"context"
	"time"
)

// Backoff defaults.
const (
	DefaultBaseDelay      = 2 * time.Second
	DefaultMaxEscalations = 3
)

// BackoffPolicy is a capped linear backoff applied after rate limits.
// A MaxEscalations of zero leaves the delay uncapped.
type BackoffPolicy struct {
	BaseDelay      time.Duration
	MaxEscalations int
}

// DefaultBackoff returns the 2s x 3 policy.
func DefaultBackoff() BackoffPolicy {
	return BackoffPolicy{BaseDelay: DefaultBaseDelay, MaxEscalations: DefaultMaxEscalations}
}

// Delay returns the wait after the hits-th rate limit of a call:
// min(hits, MaxEscalations) * BaseDelay.
func (p BackoffPolicy) Delay(hits int) time.Duration {
	if hits <= 0 || p.BaseDelay <= 0 {
		return 0
	}
	steps := hits
	if p.MaxEscalations > 0 && steps > p.MaxEscalations {
		steps = p.MaxEscalations
	}
	return time.Duration(steps) * p.BaseDelay
}

// Sleeper waits for d or until ctx is done, returning ctx.Err() in the
// latter case.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the production Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
