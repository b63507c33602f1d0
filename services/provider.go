package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"atelierapi/models"
)

// RawImage is what a provider hands back: bytes plus whatever content type
// the provider declared. Encoding for display is the caller's concern.
type RawImage struct {
	Data        []byte
	ContentType string
}

type ImageProvider interface {
	Name() models.Provider
	Generate(ctx context.Context, prompt string) (*RawImage, error)
}

// Generation parameters are fixed across all requests, same values for both
// providers.
const (
	generationSteps    = 30
	generationGuidance = 7.5
	generationWidth    = 768
	generationHeight   = 1024
)

// Backoff hints from providers are capped so a misbehaving response can
// never park a request for minutes.
const (
	maxModelLoadingHint = 15 * time.Second
	maxRetryAfterHint   = 30 * time.Second
)

// classifyHTTPFailure is the single classification both provider clients
// share. 503 is a cold-start ("model loading"), 429 a rate limit, both
// retryable. 401/403 means bad credentials and fails fast to the next
// tier. Everything else is fatal with status and body surfaced.
func classifyHTTPFailure(provider models.Provider, status int, body []byte, header http.Header) *models.ProviderError {
	switch status {
	case http.StatusServiceUnavailable:
		return &models.ProviderError{
			Provider:   provider,
			Reason:     models.ReasonModelLoading,
			Retryable:  true,
			HTTPStatus: status,
			RetryAfter: estimatedTimeHint(body),
			Detail:     truncateBody(body),
		}
	case http.StatusTooManyRequests:
		return &models.ProviderError{
			Provider:   provider,
			Reason:     models.ReasonRateLimited,
			Retryable:  true,
			HTTPStatus: status,
			RetryAfter: retryAfterHint(header),
			Detail:     truncateBody(body),
		}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &models.ProviderError{
			Provider:   provider,
			Reason:     models.ReasonBadCredentials,
			HTTPStatus: status,
			Detail:     "invalid or missing API credentials",
		}
	default:
		return &models.ProviderError{
			Provider:   provider,
			Reason:     models.ReasonAPIError,
			HTTPStatus: status,
			Detail:     truncateBody(body),
		}
	}
}

// classifyTransportFailure covers errors without an HTTP response. A
// canceled inbound request is fatal for the attempt, plain transport
// errors are retryable.
func classifyTransportFailure(provider models.Provider, err error) *models.ProviderError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &models.ProviderError{
			Provider: provider,
			Reason:   models.ReasonCanceled,
			Detail:   err.Error(),
		}
	}
	return &models.ProviderError{
		Provider:  provider,
		Reason:    models.ReasonNetwork,
		Retryable: true,
		Detail:    err.Error(),
	}
}

func oversizedResponseFailure(provider models.Provider, limit int64) *models.ProviderError {
	return &models.ProviderError{
		Provider: provider,
		Reason:   models.ReasonOversizedResponse,
		Detail:   fmt.Sprintf("response exceeded %d bytes buffer limit", limit),
	}
}

// Hugging Face 503 bodies carry {"estimated_time": seconds} while the
// model spins up.
func estimatedTimeHint(body []byte) time.Duration {
	var payload struct {
		EstimatedTime float64 `json:"estimated_time"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.EstimatedTime <= 0 {
		return 0
	}
	hint := time.Duration(payload.EstimatedTime * float64(time.Second))
	if hint > maxModelLoadingHint {
		return maxModelLoadingHint
	}
	return hint
}

func retryAfterHint(header http.Header) time.Duration {
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return 0
	}
	hint := time.Duration(seconds) * time.Second
	if hint > maxRetryAfterHint {
		return maxRetryAfterHint
	}
	return hint
}

func truncateBody(body []byte) string {
	if len(body) > 512 {
		return string(body[:512]) + "..."
	}
	return string(body)
}
