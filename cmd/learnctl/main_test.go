package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.NotZero(t, stdout.Len(), "expected help output on stdout")
}

func TestRootCommand_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"nonexistent"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown command")
}

func TestSubcommandRegistration(t *testing.T) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd(&stdout, &stderr)

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"models", "generate", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "learnctl dev")
}

func TestGenerate_RejectsUnknownKind(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"generate", "Optics", "--kind", "essay"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown output kind")
}

// fakeGeminiServer answers generateContent with payload and model listings
// with two models, one of which cannot generate content.
func fakeGeminiServer(t *testing.T, status int, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, ":generateContent"):
			w.WriteHeader(status)
			if status != http.StatusOK {
				fmt.Fprintf(w, `{"error":{"code":%d,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`, status)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []any{map[string]any{
					"content":      map[string]any{"role": "model", "parts": []any{map[string]any{"text": payload}}},
					"finishReason": "STOP",
				}},
			})
		case strings.HasSuffix(r.URL.Path, "/models"):
			fmt.Fprint(w, `{"models":[`+
				`{"name":"models/gemini-2.0-flash","supportedGenerationMethods":["generateContent"]},`+
				`{"name":"models/embedding-001","supportedGenerationMethods":["embedContent"]}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf(`llm:
  api_keys: ["AIzaSyCliTestCliTestCliTest0001"]
  models: ["gemini-2.0-flash"]
  base_url: %q
  base_delay: 1ms
  attempt_timeout: 5s
`, baseURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGenerate_PrintsItems(t *testing.T) {
	payload := `[{"front":"Snell's law","back":"n1 sin θ1 = n2 sin θ2"}]`
	srv := fakeGeminiServer(t, http.StatusOK, payload)

	var stdout, stderr bytes.Buffer
	code := run([]string{"generate", "Optics", "-n", "1", "-k", "flashcards", "--config", writeConfig(t, srv.URL)},
		&stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var items []map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Snell's law", items[0]["front"])
	assert.Contains(t, stderr.String(), "model gemini-2.0-flash")
}

func TestGenerate_ReportsClassification(t *testing.T) {
	srv := fakeGeminiServer(t, http.StatusTooManyRequests, "")

	var stdout, stderr bytes.Buffer
	code := run([]string{"generate", "Optics", "--config", writeConfig(t, srv.URL)}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "all_candidates_rate_limited")
	assert.NotContains(t, stderr.String(), "CliTestCliTest")
}

func TestModels_ListsPerCredential(t *testing.T) {
	srv := fakeGeminiServer(t, http.StatusOK, "")

	var stdout, stderr bytes.Buffer
	code := run([]string{"models", "--config", writeConfig(t, srv.URL)}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "gemini-2.0-flash")
	assert.NotContains(t, stdout.String(), "embedding-001")
	assert.NotContains(t, stdout.String(), "CliTestCliTest")
}
