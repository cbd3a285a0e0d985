package alerts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantradar/plantradar/pkg/config"
)

func TestWebhookAlerterDisabled(t *testing.T) {
	alerter := NewWebhookAlerter(WebhookConfig{Enabled: false})

	err := alerter.Alert(context.Background(), "", &Alert{Title: "test"})
	assert.ErrorIs(t, err, ErrWebhookDisabled)
}

func TestWebhookAlerterSends(t *testing.T) {
	var received Alert

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token123", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled: true,
		URL:     server.URL,
		Headers: []config.Header{
			{Key: "Authorization", Value: "Bearer token123"},
		},
	})

	err := alerter.Alert(context.Background(), "", &Alert{
		Level:     Error,
		Title:     "Channel Critical",
		Message:   "temperature exceeded critical boundary",
		MachineID: "extruder-02",
		Details:   map[string]any{"value": 85.0},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, received.ID, "an alert id is assigned before sending")
	assert.NotEmpty(t, received.Timestamp)
	assert.Equal(t, Error, received.Level)
	assert.Equal(t, "extruder-02", received.MachineID)
}

func TestWebhookAlerterCooldown(t *testing.T) {
	var hits int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	alerter := NewWebhookAlerter(WebhookConfig{
		Enabled:  true,
		URL:      server.URL,
		Cooldown: config.Duration(time.Minute),
	})

	require.NoError(t, alerter.Alert(context.Background(), "temperature", &Alert{Title: "first"}))

	err := alerter.Alert(context.Background(), "temperature", &Alert{Title: "second"})
	assert.ErrorIs(t, err, ErrWebhookCooldown)

	// A different key is not throttled.
	require.NoError(t, alerter.Alert(context.Background(), "vibration", &Alert{Title: "third"}))

	assert.Equal(t, 2, hits)
}

func TestWebhookAlerterNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	alerter := NewWebhookAlerter(WebhookConfig{Enabled: true, URL: server.URL})

	err := alerter.Alert(context.Background(), "", &Alert{Title: "test"})
	assert.ErrorIs(t, err, ErrWebhookStatus)
}

func TestWebhookConfigCooldownFormats(t *testing.T) {
	var cfg WebhookConfig

	require.NoError(t, json.Unmarshal([]byte(`{"enabled":true,"url":"http://x","cooldown":"5m"}`), &cfg))
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Cooldown))
}
