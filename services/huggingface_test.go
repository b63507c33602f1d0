package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"atelierapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHFClient(serverURL string) *HuggingFaceClient {
	return NewHuggingFaceClient(HuggingFaceConfig{
		Token:   "test-token",
		Model:   "test/model",
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	})
}

func TestHuggingFaceSuccess(t *testing.T) {
	var gotRequest hfRequest
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	img, err := newHFClient(server.URL).Generate(t.Context(), "a prompt")
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg-bytes"), img.Data)
	require.Equal(t, "image/jpeg", img.ContentType)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "a prompt", gotRequest.Inputs)
	assert.Equal(t, generationSteps, gotRequest.Parameters.NumInferenceSteps)
	assert.Equal(t, generationGuidance, gotRequest.Parameters.GuidanceScale)
	assert.Equal(t, generationWidth, gotRequest.Parameters.Width)
	assert.Equal(t, generationHeight, gotRequest.Parameters.Height)
}

func TestHuggingFaceModelLoadingRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model is currently loading","estimated_time":8.5}`))
	}))
	defer server.Close()

	_, err := newHFClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonModelLoading, perr.Reason)
	assert.True(t, perr.Retryable)
	assert.Equal(t, http.StatusServiceUnavailable, perr.HTTPStatus)
	assert.Equal(t, 8500*time.Millisecond, perr.RetryAfter)
}

func TestHuggingFaceEstimatedTimeHintCapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"estimated_time":300}`))
	}))
	defer server.Close()

	_, err := newHFClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, maxModelLoadingHint, perr.RetryAfter)
}

func TestHuggingFaceRateLimitedHonorsRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newHFClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonRateLimited, perr.Reason)
	assert.True(t, perr.Retryable)
	assert.Equal(t, 7*time.Second, perr.RetryAfter)
}

func TestHuggingFaceBadCredentialsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newHFClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonBadCredentials, perr.Reason)
	assert.False(t, perr.Retryable)
}

func TestHuggingFaceOtherErrorFatalWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer server.Close()

	_, err := newHFClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonAPIError, perr.Reason)
	assert.False(t, perr.Retryable)
	assert.Equal(t, http.StatusPaymentRequired, perr.HTTPStatus)
	assert.Contains(t, perr.Detail, "quota exceeded")
}

func TestHuggingFaceNonImageResponseFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"generated_text":"not an image"}]`))
	}))
	defer server.Close()

	_, err := newHFClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonMalformedResponse, perr.Reason)
	assert.False(t, perr.Retryable)
}

func TestHuggingFaceOversizedResponseFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(make([]byte, 64))
	}))
	defer server.Close()

	client := NewHuggingFaceClient(HuggingFaceConfig{
		Token:            "test-token",
		Model:            "test/model",
		BaseURL:          server.URL,
		MaxResponseBytes: 16,
	})
	_, err := client.Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonOversizedResponse, perr.Reason)
	assert.False(t, perr.Retryable)
}

func TestHuggingFaceNetworkErrorRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := newHFClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonNetwork, perr.Reason)
	assert.True(t, perr.Retryable)
	assert.Equal(t, 0, perr.HTTPStatus)
}
