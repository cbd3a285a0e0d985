// Package alerts pkg/alerts/interfaces.go

//go:generate mockgen -destination=mock_alerts.go -package=alerts github.com/plantradar/plantradar/pkg/alerts AlertService

package alerts

import (
	"context"
)

// AlertService defines the interface for alert implementations.
type AlertService interface {
	// Alert sends an alert; alerts sharing a key share a cooldown
	Alert(ctx context.Context, key string, alert *Alert) error

	// IsEnabled returns whether the alerter is enabled
	IsEnabled() bool
}
