package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlowerence/Learn-Better/internal/events"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "learn"

// ErrUnknownEvent is returned for events the collector has no metric for.
var ErrUnknownEvent = errors.New("unknown event type")

// Collector records attempt and call metrics from generation events.
type Collector struct {
	attempts *prometheus.CounterVec
	backoff  prometheus.Counter
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ events.EventHandler = (*Collector)(nil)

// NewCollector creates the generation metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "attempts_total",
			Help:      "Model attempts by model and outcome.",
		}, []string{"model", "outcome"}),
		backoff: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "backoff_seconds_total",
			Help:      "Time spent waiting after rate limits.",
		}),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "calls_total",
			Help:      "Completed generation calls by output kind and result.",
		}, []string{"kind", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "call_duration_seconds",
			Help:      "Wall time of generation calls, backoff included.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"kind", "result"}),
	}

	for _, collector := range []prometheus.Collector{c.attempts, c.backoff, c.calls, c.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register generation metrics: %w", err)
		}
	}
	return c, nil
}

// HandleEvent implements events.EventHandler.
func (c *Collector) HandleEvent(_ context.Context, event *events.Event) error {
	switch event.Type {
	case events.TypeAttempt:
		if event.Attempt == nil {
			return fmt.Errorf("%w: attempt event without payload", ErrUnknownEvent)
		}
		a := event.Attempt
		c.attempts.WithLabelValues(a.Model, a.Outcome).Inc()
		if a.Backoff > 0 {
			c.backoff.Add(a.Backoff.Seconds())
		}

	case events.TypeCompleted:
		if event.Completion == nil {
			return fmt.Errorf("%w: completion event without payload", ErrUnknownEvent)
		}
		done := event.Completion
		c.calls.WithLabelValues(done.OutputKind, done.Result).Inc()
		c.duration.WithLabelValues(done.OutputKind, done.Result).Observe(done.Duration.Seconds())

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event.Type)
	}
	return nil
}
