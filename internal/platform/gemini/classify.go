package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/cmlowerence/Learn-Better/internal/generation"
	"google.golang.org/genai"
)

// classify maps an error from GenerateContent onto an attempt result.
// Status codes are preferred; message matching covers errors that reach us
// without a parsed API status.
func classify(err error) generation.AttemptResult {
	if code, status, ok := apiStatus(err); ok {
		switch {
		case code == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED":
			return generation.RateLimited(err)
		case code == http.StatusNotFound || status == "NOT_FOUND":
			return generation.NotFound(err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted"):
		return generation.RateLimited(err)
	case strings.Contains(msg, "model not found") || strings.Contains(msg, "is not found"):
		return generation.NotFound(err)
	}

	return generation.Transient(err, isNetworkError(err))
}

func apiStatus(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Status, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Status, true
	}
	return 0, "", false
}

// isNetworkError reports failures that never produced an HTTP response.
func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
