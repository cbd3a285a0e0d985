// Package alerts delivers operational notifications to configured
// webhook receivers.
package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plantradar/plantradar/pkg/config"
)

const webhookTimeout = 10 * time.Second

// WebhookConfig configures one webhook receiver.
type WebhookConfig struct {
	Enabled  bool            `json:"enabled"`
	URL      string          `json:"url"`
	Headers  []config.Header `json:"headers,omitempty"`
	Cooldown config.Duration `json:"cooldown,omitempty"`
}

// Level is the severity of an alert.
type Level string

const (
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Alert is the notification document posted to receivers.
type Alert struct {
	ID        string         `json:"id"`
	Level     Level          `json:"level"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	MachineID string         `json:"machine_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// WebhookAlerter posts alerts to a single receiver. Alerts sharing a
// cooldown key are rate limited so a flapping channel does not flood
// the receiver.
type WebhookAlerter struct {
	config        WebhookConfig
	client        *http.Client
	lastSentTimes map[string]time.Time
	mu            sync.Mutex
}

// NewWebhookAlerter creates an alerter for one receiver.
func NewWebhookAlerter(cfg WebhookConfig) *WebhookAlerter {
	return &WebhookAlerter{
		config: cfg,
		client: &http.Client{
			Timeout: webhookTimeout,
		},
		lastSentTimes: make(map[string]time.Time),
	}
}

// IsEnabled returns whether the alerter is enabled.
func (w *WebhookAlerter) IsEnabled() bool {
	return w.config.Enabled
}

// Alert sends an alert. The cooldown key defaults to the title when
// empty.
func (w *WebhookAlerter) Alert(ctx context.Context, key string, alert *Alert) error {
	if !w.IsEnabled() {
		log.Printf("Webhook alerter disabled, skipping alert: %s", alert.Title)
		return ErrWebhookDisabled
	}

	if key == "" {
		key = alert.Title
	}

	if err := w.checkCooldown(key); err != nil {
		return err
	}

	w.finalize(alert)

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	return w.sendRequest(ctx, payload)
}

func (w *WebhookAlerter) checkCooldown(key string) error {
	if w.config.Cooldown <= 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	lastSent, exists := w.lastSentTimes[key]
	if exists && time.Since(lastSent) < time.Duration(w.config.Cooldown) {
		log.Printf("Alert '%s' is within cooldown period, skipping", key)
		return ErrWebhookCooldown
	}

	w.lastSentTimes[key] = time.Now()

	return nil
}

func (*WebhookAlerter) finalize(alert *Alert) {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}

	if alert.Timestamp == "" {
		alert.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
}

func (w *WebhookAlerter) sendRequest(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.config.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	w.setHeaders(req)

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status=%d body=%s", ErrWebhookStatus, resp.StatusCode, string(body))
	}

	return nil
}

func (w *WebhookAlerter) setHeaders(req *http.Request) {
	hasContentType := false

	for _, header := range w.config.Headers {
		if strings.EqualFold(header.Key, "content-type") {
			hasContentType = true
		}

		req.Header.Set(header.Key, header.Value)
	}

	if !hasContentType {
		req.Header.Set("Content-Type", "application/json")
	}
}
