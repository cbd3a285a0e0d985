// Package alerts pkg/alerts/fanout.go
package alerts

import (
	"context"
	"log"
)

// Fanout delivers each alert to every enabled receiver. Cooldown and
// disabled results are expected outcomes, not delivery failures.
type Fanout struct {
	services []AlertService
}

// NewFanout creates a fanout over the given receivers.
func NewFanout(services ...AlertService) *Fanout {
	return &Fanout{services: services}
}

// IsEnabled reports whether any receiver is enabled.
func (f *Fanout) IsEnabled() bool {
	for _, svc := range f.services {
		if svc.IsEnabled() {
			return true
		}
	}

	return false
}

// Alert sends to all enabled receivers and returns the last delivery
// failure, if any.
func (f *Fanout) Alert(ctx context.Context, key string, alert *Alert) error {
	if !f.IsEnabled() {
		return ErrWebhookDisabled
	}

	var lastErr error

	for _, svc := range f.services {
		if !svc.IsEnabled() {
			continue
		}

		switch err := svc.Alert(ctx, key, alert); err {
		case nil, ErrWebhookCooldown:
		default:
			log.Printf("Error delivering alert '%s': %v", alert.Title, err)
			lastErr = err
		}
	}

	return lastErr
}
