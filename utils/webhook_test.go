package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	forms "github.com/astraclub/club-platform-go/forms"
)

func samplePayload() WebhookPayload {
	return WebhookPayload{
		EventID:     "ev1",
		EventTitle:  "Hack Night",
		SubmittedAt: "2026-09-01T10:00:00Z",
		Responses: map[string]forms.Entry{
			"f1": {Label: "Name", Value: "Alex", Type: forms.FieldText},
		},
		ResponseID: "resp1",
	}
}

func TestSendWebhookSuccess(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := SendWebhook(context.Background(), srv.URL, samplePayload())
	require.NoError(t, result.Error)
	assert.True(t, result.Sent)

	// wire keys are camelCase
	assert.Equal(t, "ev1", received["eventId"])
	assert.Equal(t, "Hack Night", received["eventTitle"])
	assert.Equal(t, "2026-09-01T10:00:00Z", received["submittedAt"])
	assert.Equal(t, "resp1", received["responseId"])
	assert.Contains(t, received, "responses")
}

func TestSendWebhookNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	result := SendWebhook(context.Background(), srv.URL, samplePayload())
	assert.False(t, result.Sent)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "webhook failed")
}

func TestSendWebhookTransportError(t *testing.T) {
	result := SendWebhook(context.Background(), "http://127.0.0.1:1", samplePayload())
	assert.False(t, result.Sent)
	assert.Error(t, result.Error)
}
