package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cmlowerence/Learn-Better/internal/events"
	"github.com/stretchr/testify/require"
)

type executorCall struct {
	model  string
	cred   Credential
	prompt string
}

// scriptedExecutor answers each call with respond and records what it saw.
type scriptedExecutor struct {
	mu      sync.Mutex
	calls   []executorCall
	respond func(n int, model string, cred Credential) AttemptResult
}

func (e *scriptedExecutor) Execute(_ context.Context, model string, cred Credential, prompt string) AttemptResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, executorCall{model: model, cred: cred, prompt: prompt})
	return e.respond(len(e.calls), model, cred)
}

func (e *scriptedExecutor) callCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}

func always(res AttemptResult) func(int, string, Credential) AttemptResult {
	return func(int, string, Credential) AttemptResult { return res }
}

// recordingSleeper records requested delays without waiting.
type recordingSleeper struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.delays = append(s.delays, d)
	s.mu.Unlock()
	return ctx.Err()
}

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.Event
}

func (r *recordingEmitter) EmitEvent(_ context.Context, e *events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func noShuffle(int, func(i, j int)) {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func quizJSON(n int) string {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{
			"question":     fmt.Sprintf("Q%d", i+1),
			"options":      []string{"A", "B", "C", "D"},
			"correctIndex": i % 4,
			"explanation":  fmt.Sprintf("E%d", i+1),
		}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

type fixture struct {
	orch    *Orchestrator
	exec    *scriptedExecutor
	sleeper *recordingSleeper
	emitter *recordingEmitter
	models  []string
	keys    []string
}

func newFixture(t *testing.T, models, keys []string, respond func(int, string, Credential) AttemptResult, opts ...Option) *fixture {
	t.Helper()

	list, err := NewModelList(models)
	require.NoError(t, err)
	pool, err := NewCredentialPool(keys)
	require.NoError(t, err)

	f := &fixture{
		exec:    &scriptedExecutor{respond: respond},
		sleeper: &recordingSleeper{},
		emitter: &recordingEmitter{},
		models:  models,
		keys:    keys,
	}

	base := []Option{
		WithSleeper(f.sleeper.Sleep),
		WithShuffle(noShuffle),
		WithEmitter(f.emitter),
		WithBackoff(BackoffPolicy{BaseDelay: 2 * time.Second, MaxEscalations: 3}),
	}
	f.orch, err = NewOrchestrator(testLogger(), f.exec, list, pool, append(base, opts...)...)
	require.NoError(t, err)
	return f
}
