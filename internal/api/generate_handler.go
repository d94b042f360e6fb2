package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/cmlowerence/Learn-Better/internal/api/shared"
	"github.com/cmlowerence/Learn-Better/internal/domain"
	"github.com/cmlowerence/Learn-Better/internal/generation"
	"github.com/cmlowerence/Learn-Better/internal/platform/logger"
)

// GenerateRequest is the body of POST /api/generate. Kind defaults to quiz.
type GenerateRequest struct {
	Topic      string `json:"topic" validate:"required,max=200"`
	ItemCount  int    `json:"item_count" validate:"gte=0"`
	Difficulty string `json:"difficulty" validate:"max=50"`
	Focus      string `json:"focus" validate:"max=50"`
	Kind       string `json:"kind" validate:"max=20"`
}

// GenerateResponse carries the validated items. Items holds quiz items or
// flashcards depending on Kind.
type GenerateResponse struct {
	Kind  string `json:"kind"`
	Model string `json:"model"`
	Count int    `json:"count"`
	Items any    `json:"items"`
}

// GenerateHandler serves generation requests.
type GenerateHandler struct {
	generator  generation.Generator
	retryAfter time.Duration
}

// NewGenerateHandler creates a GenerateHandler. retryAfter is advertised to
// clients when every candidate is rate limited.
func NewGenerateHandler(generator generation.Generator, retryAfter time.Duration) *GenerateHandler {
	return &GenerateHandler{
		generator:  generator,
		retryAfter: retryAfter,
	}
}

// Generate handles POST /api/generate requests
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	kind := domain.KindQuiz
	if req.Kind != "" {
		parsed, err := domain.ParseOutputKind(req.Kind)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
			return
		}
		kind = parsed
	}

	out, err := h.generator.Generate(r.Context(), generation.Request{
		Topic:      req.Topic,
		ItemCount:  req.ItemCount,
		Difficulty: req.Difficulty,
		Focus:      req.Focus,
		Kind:       kind,
	})
	if err != nil {
		var opts []shared.ResponseOption
		if errors.Is(err, generation.ErrAllRateLimited) && h.retryAfter > 0 {
			opts = append(opts, shared.WithRetryAfter(h.retryAfter))
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err, opts...)
		return
	}

	logger.FromContext(r.Context()).Info("generation request served",
		"kind", out.Kind,
		"model", out.Model,
		"items", out.Len(),
		"attempts", out.Attempts,
		"call_id", out.CallID)

	shared.RespondWithJSON(w, r, http.StatusOK, GenerateResponse{
		Kind:  out.Kind.String(),
		Model: out.Model,
		Count: out.Len(),
		Items: out.Items(),
	})
}
