package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelierapi/models"
	"atelierapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitFeedbackOk(t *testing.T) {
	notifier := &test.NotifierMock{}
	e := newTestServer(test.SucceedingProvider(models.ProviderPrimary), test.SucceedingProvider(models.ProviderBackup), notifier)

	reqBody := models.FeedbackIn{
		Rating:  5,
		Comment: StrPointer("Love the vintage looks!"),
		Email:   StrPointer("fan@example.com"),
	}
	req := test.NewJSONRequest("POST", "/api/feedback", reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, "Expected status code 202, got %d: %s", rec.Code, rec.Body.String())
	require.Len(t, notifier.Messages, 1)
	assert.Contains(t, notifier.Messages[0], "Love the vintage looks!")
	assert.Contains(t, notifier.Messages[0], "fan@example.com")
}

func TestSubmitFeedbackRatingOutOfRange(t *testing.T) {
	notifier := &test.NotifierMock{}
	e := newTestServer(test.SucceedingProvider(models.ProviderPrimary), test.SucceedingProvider(models.ProviderBackup), notifier)

	req := test.NewJSONRequest("POST", "/api/feedback", models.FeedbackIn{Rating: 6})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, notifier.Messages)
}

func TestSubmitFeedbackMissingRating(t *testing.T) {
	notifier := &test.NotifierMock{}
	e := newTestServer(test.SucceedingProvider(models.ProviderPrimary), test.SucceedingProvider(models.ProviderBackup), notifier)

	req := test.NewJSONRequest("POST", "/api/feedback", map[string]string{"comment": "no rating"})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var response map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], "Rating")
}

func TestSubmitFeedbackInvalidEmail(t *testing.T) {
	notifier := &test.NotifierMock{}
	e := newTestServer(test.SucceedingProvider(models.ProviderPrimary), test.SucceedingProvider(models.ProviderBackup), notifier)

	req := test.NewJSONRequest("POST", "/api/feedback", models.FeedbackIn{Rating: 4, Email: StrPointer("not-an-email")})
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, notifier.Messages)
}
