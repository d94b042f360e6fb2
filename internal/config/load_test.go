package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for the duration of the test. Keys
// mapped to "" are cleared so values from the developer's shell cannot leak in.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for _, name := range []string{
		"LEARN_SERVER_PORT",
		"LEARN_SERVER_LOG_LEVEL",
		"LEARN_AUTH_JWT_SECRET",
		"LEARN_LLM_API_KEYS",
		"LEARN_LLM_MODELS",
		"LEARN_LLM_BASE_URL",
		"LEARN_LLM_BASE_DELAY",
		"LEARN_LLM_MAX_BACKOFF_ESCALATIONS",
		"LEARN_LLM_ATTEMPT_TIMEOUT",
		"LEARN_LLM_MAX_ITEMS",
		"LEARN_LLM_PROMPT_TEMPLATE_DIR",
		"GEMINI_API_KEY",
	} {
		t.Setenv(name, "")
	}
	for name, value := range envVars {
		t.Setenv(name, value)
	}
	// Load searches the working directory for config.yaml.
	t.Chdir(t.TempDir())
}

// TestLoadDefaults verifies that the Load function sets the expected default values
// when only the credential pool is provided.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"LEARN_LLM_API_KEYS": "key-one",
	})

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, []string{"key-one"}, cfg.LLM.APIKeys)
	assert.Equal(t, DefaultModels, cfg.LLM.Models)
	assert.Equal(t, 2*time.Second, cfg.LLM.BaseDelay)
	assert.Equal(t, 3, cfg.LLM.MaxBackoffEscalations)
	assert.Equal(t, 45*time.Second, cfg.LLM.AttemptTimeout)
	assert.Equal(t, 50, cfg.LLM.MaxItems)
	assert.False(t, cfg.Auth.Enabled())
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"LEARN_SERVER_PORT":                 "9090",
		"LEARN_SERVER_LOG_LEVEL":            "debug",
		"LEARN_AUTH_JWT_SECRET":             "thisisasecretkeythatis32charslong!!",
		"LEARN_LLM_API_KEYS":                "key-one, key-two,key-one,",
		"LEARN_LLM_MODELS":                  "gemini-pro,gemini-lite",
		"LEARN_LLM_BASE_URL":                "http://127.0.0.1:9999/",
		"LEARN_LLM_BASE_DELAY":              "500ms",
		"LEARN_LLM_MAX_BACKOFF_ESCALATIONS": "5",
		"LEARN_LLM_ATTEMPT_TIMEOUT":         "10s",
		"LEARN_LLM_MAX_ITEMS":               "20",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.True(t, cfg.Auth.Enabled())
	assert.Equal(t, []string{"key-one", "key-two"}, cfg.LLM.APIKeys, "keys are trimmed and deduplicated")
	assert.Equal(t, []string{"gemini-pro", "gemini-lite"}, cfg.LLM.Models)
	assert.Equal(t, "http://127.0.0.1:9999/", cfg.LLM.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.LLM.BaseDelay)
	assert.Equal(t, 5, cfg.LLM.MaxBackoffEscalations)
	assert.Equal(t, 10*time.Second, cfg.LLM.AttemptTimeout)
	assert.Equal(t, 20, cfg.LLM.MaxItems)
}

func TestLoadFallsBackToGeminiAPIKey(t *testing.T) {
	setupEnv(t, map[string]string{
		"GEMINI_API_KEY": "legacy-key",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"legacy-key"}, cfg.LLM.APIKeys)
}

// TestLoadValidationErrors verifies that the Load function correctly validates the configuration.
func TestLoadValidationErrors(t *testing.T) {
	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "missing credential pool",
			envVars: map[string]string{},
		},
		{
			name: "invalid port number",
			envVars: map[string]string{
				"LEARN_SERVER_PORT":  "999999",
				"LEARN_LLM_API_KEYS": "key",
			},
		},
		{
			name: "invalid log level",
			envVars: map[string]string{
				"LEARN_SERVER_LOG_LEVEL": "verbose",
				"LEARN_LLM_API_KEYS":     "key",
			},
		},
		{
			name: "short jwt secret",
			envVars: map[string]string{
				"LEARN_AUTH_JWT_SECRET": "too-short",
				"LEARN_LLM_API_KEYS":    "key",
			},
		},
		{
			name: "item cap out of range",
			envVars: map[string]string{
				"LEARN_LLM_MAX_ITEMS": "0",
				"LEARN_LLM_API_KEYS":  "key",
			},
		},
		{
			name: "invalid base url",
			envVars: map[string]string{
				"LEARN_LLM_BASE_URL": "not a url",
				"LEARN_LLM_API_KEYS": "key",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load()

			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	setupEnv(t, map[string]string{
		"LEARN_SERVER_PORT": "7070",
	})

	path := filepath.Join(t.TempDir(), "learn.yaml")
	content := `
server:
  port: 6060
  log_level: warn
llm:
  api_keys:
    - file-key
  models:
    - gemini-file
  base_delay: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port, "environment overrides file")
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, []string{"file-key"}, cfg.LLM.APIKeys)
	assert.Equal(t, []string{"gemini-file"}, cfg.LLM.Models)
	assert.Equal(t, time.Second, cfg.LLM.BaseDelay)
}

func TestLoadFromMissingFile(t *testing.T) {
	setupEnv(t, map[string]string{"LEARN_LLM_API_KEYS": "key"})

	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
