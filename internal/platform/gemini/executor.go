package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlowerence/Learn-Better/internal/config"
	"github.com/cmlowerence/Learn-Better/internal/generation"
	"github.com/cmlowerence/Learn-Better/internal/redact"
	"google.golang.org/genai"
)

// jsonMIMEType asks the API for structured output.
const jsonMIMEType = "application/json"

// Executor implements generation.Executor against the Gemini API.
type Executor struct {
	// logger is used for structured logging
	logger *slog.Logger

	// baseURL overrides the API endpoint when non-empty
	baseURL string

	// timeout bounds a single attempt
	timeout time.Duration

	// httpClient is shared by all per-attempt clients; it holds no credentials
	httpClient *http.Client
}

var _ generation.Executor = (*Executor)(nil)

// NewExecutor creates an Executor from the LLM configuration.
func NewExecutor(logger *slog.Logger, cfg config.LLMConfig) (*Executor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	logger = logger.With("component", "gemini_executor")

	if err := validateConfig(logger, cfg); err != nil {
		return nil, err
	}

	return &Executor{
		logger:     logger,
		baseURL:    cfg.BaseURL,
		timeout:    cfg.AttemptTimeout,
		httpClient: &http.Client{},
	}, nil
}

// newClient builds a client bound to one credential. Clients are cheap and
// never cached, so concurrent attempts cannot observe each other's keys.
func (e *Executor) newClient(ctx context.Context, cred generation.Credential) (*genai.Client, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     cred.Secret(),
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: e.httpClient,
	}
	if e.baseURL != "" {
		clientConfig.HTTPOptions.BaseURL = e.baseURL
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// Execute makes exactly one GenerateContent call and classifies the result.
func (e *Executor) Execute(
	ctx context.Context,
	model string,
	cred generation.Credential,
	prompt string,
) generation.AttemptResult {
	if prompt == "" {
		return generation.Transient(ErrEmptyPrompt, false)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	client, err := e.newClient(ctx, cred)
	if err != nil {
		return generation.Transient(err, false)
	}

	e.logger.DebugContext(ctx, "calling Gemini",
		"model", model,
		"credential", cred,
		"prompt_length", len(prompt))

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: jsonMIMEType})
	if err != nil {
		res := classify(err)
		e.logger.DebugContext(ctx, "Gemini call failed",
			"model", model,
			"credential", cred,
			"outcome", res.Outcome,
			"error", redact.Error(err))
		return res
	}

	text, err := responseText(resp)
	if err != nil {
		return generation.Transient(err, false)
	}
	return generation.Succeeded(text)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", ErrEmptyResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason %s", ErrContentBlocked, candidate.FinishReason)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content", ErrEmptyResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: candidate text is blank", ErrEmptyResponse)
	}
	return b.String(), nil
}
