package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"atelierapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReplicateClient(serverURL string) *ReplicateClient {
	return NewReplicateClient(ReplicateConfig{
		Token:        "test-token",
		Version:      "test-version-hash",
		BaseURL:      serverURL,
		Timeout:      5 * time.Second,
		PollInterval: 5 * time.Millisecond,
	})
}

func TestReplicatePollsUntilSucceeded(t *testing.T) {
	var polls int32
	var gotCreate replicateCreateRequest
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("POST /v1/predictions", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Token test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotCreate))
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "p1",
			"status": "starting",
			"urls":   map[string]string{"get": server.URL + "/v1/predictions/p1"},
		})
	})
	mux.HandleFunc("GET /v1/predictions/p1", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&polls, 1)
		status := "processing"
		var output []string
		if n >= 2 {
			status = "succeeded"
			output = []string{server.URL + "/output.png"}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "p1",
			"status": status,
			"output": output,
			"urls":   map[string]string{"get": server.URL + "/v1/predictions/p1"},
		})
	})
	mux.HandleFunc("GET /output.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	})

	img, err := newReplicateClient(server.URL).Generate(t.Context(), "a prompt")
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), img.Data)
	require.Equal(t, "image/png", img.ContentType)
	require.GreaterOrEqual(t, atomic.LoadInt32(&polls), int32(2))

	assert.Equal(t, "test-version-hash", gotCreate.Version)
	assert.Equal(t, "a prompt", gotCreate.Input.Prompt)
	assert.Equal(t, generationSteps, gotCreate.Input.NumInferenceSteps)
	assert.Equal(t, generationGuidance, gotCreate.Input.GuidanceScale)
}

func TestReplicateFailedPredictionFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "p2",
			"status": "failed",
			"error":  "NSFW content detected",
		})
	}))
	defer server.Close()

	_, err := newReplicateClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonAPIError, perr.Reason)
	assert.False(t, perr.Retryable)
	assert.Contains(t, perr.Detail, "NSFW content detected")
}

func TestReplicateEmptyOutputMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": "p3", "status": "succeeded"})
	}))
	defer server.Close()

	_, err := newReplicateClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonMalformedResponse, perr.Reason)
}

func TestReplicateBadCredentialsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newReplicateClient(server.URL).Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonBadCredentials, perr.Reason)
	assert.False(t, perr.Retryable)
}

func TestReplicatePollingStopsOnCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// prediction never leaves "starting"
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "p4",
			"status": "starting",
			"urls":   map[string]string{"get": fmt.Sprintf("http://%s/v1/predictions/p4", r.Host)},
		})
	}))
	defer server.Close()

	client := NewReplicateClient(ReplicateConfig{
		Token:        "test-token",
		Version:      "v",
		BaseURL:      server.URL,
		Timeout:      50 * time.Millisecond,
		PollInterval: 5 * time.Millisecond,
	})
	_, err := client.Generate(t.Context(), "a prompt")
	var perr *models.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, models.ReasonCanceled, perr.Reason)
}
