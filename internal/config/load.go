package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. LEARN_SERVER_PORT or LEARN_LLM_API_KEYS.
const EnvPrefix = "LEARN"

// DefaultModels is the built-in model priority list.
var DefaultModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the given config file instead of
// searching for config.yaml in the working directory.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LLM.APIKeys = cleanList(cfg.LLM.APIKeys)
	cfg.LLM.Models = cleanList(cfg.LLM.Models)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("llm.models", DefaultModels)
	v.SetDefault("llm.base_delay", 2*time.Second)
	v.SetDefault("llm.max_backoff_escalations", 3)
	v.SetDefault("llm.attempt_timeout", 45*time.Second)
	v.SetDefault("llm.max_items", 50)
}

// bindEnv registers keys that have no default so AutomaticEnv can see them
// during Unmarshal. The credential pool also honours the conventional
// GEMINI_API_KEY variable when no pool is configured.
func bindEnv(v *viper.Viper) error {
	bindings := [][]string{
		{"auth.jwt_secret"},
		{"llm.base_url"},
		{"llm.prompt_template_dir"},
		{"llm.api_keys", EnvPrefix + "_LLM_API_KEYS", "GEMINI_API_KEY"},
	}
	for _, b := range bindings {
		if err := v.BindEnv(b...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", b[0], err)
		}
	}
	return nil
}

// cleanList trims entries, drops blanks and removes duplicates while keeping
// the first occurrence, so list order stays meaningful.
func cleanList(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
