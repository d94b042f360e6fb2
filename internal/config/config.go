package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Auth   AuthConfig   `mapstructure:"auth"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// AuthConfig holds the settings used to verify access tokens minted by the
// account service. An empty secret disables authentication on the API.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
}

// Enabled reports whether bearer-token authentication is configured.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// LLMConfig contains the generative model settings: credentials, the ordered
// model candidate list and the retry budget.
type LLMConfig struct {
	// APIKeys is the credential pool. Order does not matter; it is shuffled
	// on every generation call.
	APIKeys []string `mapstructure:"api_keys" validate:"required,min=1,dive,required"`

	// Models lists model identifiers, most preferred first.
	Models []string `mapstructure:"models" validate:"required,min=1,dive,required"`

	// BaseURL overrides the Gemini endpoint. Empty means the SDK default.
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	// BaseDelay is the linear backoff step applied after each rate limit.
	BaseDelay time.Duration `mapstructure:"base_delay" validate:"gte=0"`

	// MaxBackoffEscalations caps how many steps the backoff may grow to.
	MaxBackoffEscalations int `mapstructure:"max_backoff_escalations" validate:"gte=0"`

	// AttemptTimeout bounds a single model call.
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" validate:"gt=0"`

	// MaxItems is the upper clamp for requested item counts.
	MaxItems int `mapstructure:"max_items" validate:"gte=1,lte=100"`

	// PromptTemplateDir optionally holds quiz.tmpl and flashcard.tmpl
	// overriding the built-in prompts.
	PromptTemplateDir string `mapstructure:"prompt_template_dir"`
}
