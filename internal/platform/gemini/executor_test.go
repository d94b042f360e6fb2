package gemini

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlowerence/Learn-Better/internal/config"
	"github.com/cmlowerence/Learn-Better/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "AIzaSyTestTestTestTestTest0001"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestExecutor(t *testing.T, baseURL string, timeout time.Duration) *Executor {
	t.Helper()
	exec, err := NewExecutor(testLogger(), config.LLMConfig{BaseURL: baseURL, AttemptTimeout: timeout})
	require.NoError(t, err)
	return exec
}

// fakeGemini serves canned responses for generateContent and records the
// models and keys it was called with.
type fakeGemini struct {
	mu     sync.Mutex
	models []string
	keys   []string
	handle func(w http.ResponseWriter, r *http.Request)
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, ":generateContent") {
		name := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		f.mu.Lock()
		f.models = append(f.models, strings.TrimSuffix(name, ":generateContent"))
		f.keys = append(f.keys, r.Header.Get("x-goog-api-key"))
		f.mu.Unlock()
	}
	f.handle(w, r)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{
				"role":  "model",
				"parts": []any{map[string]any{"text": text}},
			},
			"finishReason": "STOP",
		}},
	}
}

func apiError(code int, status, message string) map[string]any {
	return map[string]any{"error": map[string]any{"code": code, "status": status, "message": message}}
}

func TestExecutor_Success(t *testing.T) {
	t.Parallel()

	payload := `[{"question":"Q","options":["A","B","C","D"],"correctIndex":0,"explanation":"E"}]`
	fake := &fakeGemini{handle: func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		cfg, _ := body["generationConfig"].(map[string]any)
		if cfg["responseMimeType"] != "application/json" {
			writeJSON(w, http.StatusBadRequest, apiError(400, "INVALID_ARGUMENT", "json mode not requested"))
			return
		}
		writeJSON(w, http.StatusOK, textResponse(payload))
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	exec := newTestExecutor(t, srv.URL, 5*time.Second)
	res := exec.Execute(context.Background(), "gemini-2.0-flash", generation.Credential(testKey), "make a quiz")

	require.Equal(t, generation.OutcomeSuccess, res.Outcome, "err: %v", res.Err)
	assert.Equal(t, payload, res.Text)
	assert.Equal(t, []string{"gemini-2.0-flash"}, fake.models)
	assert.Equal(t, []string{testKey}, fake.keys)
}

func TestExecutor_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        any
		wantOutcome generation.AttemptOutcome
	}{
		{
			name:        "rate limited",
			status:      http.StatusTooManyRequests,
			body:        apiError(429, "RESOURCE_EXHAUSTED", "Resource has been exhausted (e.g. check quota)."),
			wantOutcome: generation.OutcomeRateLimited,
		},
		{
			name:        "model not found",
			status:      http.StatusNotFound,
			body:        apiError(404, "NOT_FOUND", "models/gemini-0 is not found for API version v1beta"),
			wantOutcome: generation.OutcomeNotFound,
		},
		{
			name:        "server error",
			status:      http.StatusInternalServerError,
			body:        apiError(500, "INTERNAL", "internal error"),
			wantOutcome: generation.OutcomeTransient,
		},
		{
			name:        "safety block",
			status:      http.StatusOK,
			body:        map[string]any{"candidates": []any{map[string]any{"finishReason": "SAFETY"}}},
			wantOutcome: generation.OutcomeTransient,
		},
		{
			name:        "no candidates",
			status:      http.StatusOK,
			body:        map[string]any{"candidates": []any{}},
			wantOutcome: generation.OutcomeTransient,
		},
		{
			name:        "blank text",
			status:      http.StatusOK,
			body:        textResponse("   "),
			wantOutcome: generation.OutcomeTransient,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(&fakeGemini{handle: func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tc.status, tc.body)
			}})
			defer srv.Close()

			exec := newTestExecutor(t, srv.URL, 5*time.Second)
			res := exec.Execute(context.Background(), "gemini-2.0-flash", generation.Credential(testKey), "prompt")

			assert.Equal(t, tc.wantOutcome, res.Outcome, "err: %v", res.Err)
			assert.Error(t, res.Err)
			assert.False(t, res.Network)
		})
	}
}

func TestExecutor_NetworkFailures(t *testing.T) {
	t.Parallel()

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		res := newTestExecutor(t, url, 5*time.Second).
			Execute(context.Background(), "gemini-2.0-flash", generation.Credential(testKey), "prompt")

		assert.Equal(t, generation.OutcomeTransient, res.Outcome)
		assert.True(t, res.Network, "err: %v", res.Err)
	})

	t.Run("attempt timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		defer srv.Close()

		start := time.Now()
		res := newTestExecutor(t, srv.URL, 100*time.Millisecond).
			Execute(context.Background(), "gemini-2.0-flash", generation.Credential(testKey), "prompt")

		assert.Equal(t, generation.OutcomeTransient, res.Outcome)
		assert.True(t, res.Network, "err: %v", res.Err)
		assert.Less(t, time.Since(start), 3*time.Second)
	})
}

func TestExecutor_EmptyPrompt(t *testing.T) {
	t.Parallel()

	exec := newTestExecutor(t, "http://127.0.0.1:1", time.Second)
	res := exec.Execute(context.Background(), "m", generation.Credential(testKey), "")

	assert.Equal(t, generation.OutcomeTransient, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrEmptyPrompt)
}

func TestNewExecutor_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewExecutor(nil, config.LLMConfig{AttemptTimeout: time.Second})
	assert.Error(t, err)

	_, err = NewExecutor(testLogger(), config.LLMConfig{})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestExecutor_DrivesOrchestrator(t *testing.T) {
	t.Parallel()

	payload := `[{"front":"F","back":"B"}]`
	fake := &fakeGemini{handle: func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "gemini-2.5-flash") {
			writeJSON(w, http.StatusNotFound, apiError(404, "NOT_FOUND", "model not found"))
			return
		}
		writeJSON(w, http.StatusOK, textResponse("```json\n"+payload+"\n```"))
	}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	models, err := generation.NewModelList([]string{"gemini-2.5-flash", "gemini-2.0-flash"})
	require.NoError(t, err)
	pool, err := generation.NewCredentialPool([]string{testKey})
	require.NoError(t, err)

	orch, err := generation.NewOrchestrator(testLogger(), newTestExecutor(t, srv.URL, 5*time.Second), models, pool)
	require.NoError(t, err)

	out, err := orch.Generate(context.Background(),
		generation.Request{Topic: "Optics", ItemCount: 1, Kind: "flashcard"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", out.Model)
	assert.Equal(t, 1, out.Len())
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.0-flash"}, fake.models)
}
