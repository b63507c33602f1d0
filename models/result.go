package models

import (
	"errors"
	"fmt"
	"time"
)

type Provider string

const (
	ProviderPrimary     Provider = "primary"
	ProviderBackup      Provider = "backup"
	ProviderPlaceholder Provider = "placeholder"
)

// GenerationResult is the envelope every generation request resolves to,
// placeholder tier included. Never mutated after construction.
type GenerationResult struct {
	ID               string    `json:"id"`
	ImageData        string    `json:"image_data"` // base64 data URL, jpeg or svg
	Prompt           string    `json:"prompt"`
	ProviderUsed     Provider  `json:"provider_used"`
	GenerationTimeMs int64     `json:"generation_time_ms"`
	IsPlaceholder    bool      `json:"is_placeholder"`
	ArchiveKey       *string   `json:"archive_key,omitempty"`
	ShareUrl         *string   `json:"share_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type AttemptOutcome string

const (
	OutcomeSuccess   AttemptOutcome = "success"
	OutcomeRetryable AttemptOutcome = "retryable-failure"
	OutcomeFatal     AttemptOutcome = "fatal-failure"
)

// ProviderAttempt is logged per provider call, never persisted.
type ProviderAttempt struct {
	Provider      Provider       `json:"provider"`
	AttemptNumber int            `json:"attempt_number"`
	Outcome       AttemptOutcome `json:"outcome"`
	HTTPStatus    *int           `json:"http_status,omitempty"`
}

type FailureReason string

const (
	ReasonModelLoading      FailureReason = "model_loading"
	ReasonRateLimited       FailureReason = "rate_limited"
	ReasonNetwork           FailureReason = "network"
	ReasonBadCredentials    FailureReason = "bad_credentials"
	ReasonOversizedResponse FailureReason = "oversized_response"
	ReasonMalformedResponse FailureReason = "malformed_response"
	ReasonAPIError          FailureReason = "api_error"
	ReasonCanceled          FailureReason = "canceled"
)

// ProviderError is the classified form of every provider failure. Clients
// classify at their boundary, the orchestrator only looks at Retryable and
// RetryAfter.
type ProviderError struct {
	Provider   Provider
	Reason     FailureReason
	Retryable  bool
	HTTPStatus int           // 0 when the request never got a response
	RetryAfter time.Duration // backoff hint from the provider, 0 when none
	Detail     string
}

func (e *ProviderError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("provider %s: %s (status %d): %s", e.Provider, e.Reason, e.HTTPStatus, e.Detail)
	}
	return fmt.Sprintf("provider %s: %s: %s", e.Provider, e.Reason, e.Detail)
}

// Logged and alerted when the placeholder tier is reached after real
// provider failures. Never surfaced to callers, the placeholder always
// produces a result.
var ErrAllProvidersExhausted = errors.New("all image providers exhausted, serving placeholder")
