// Package health pkg/health/interfaces.go
package health

import (
	"context"

	"github.com/plantradar/plantradar/pkg/models"
)

//go:generate mockgen -destination=mock_health.go -package=health github.com/plantradar/plantradar/pkg/health Checker,Service

// Checker probes a single dependency for liveness.
type Checker interface {
	// Check returns availability and a human-readable status message.
	Check(ctx context.Context) (bool, string)
}

// Service is the capability interface over the monitor handed to
// components that need the health signal. There are no ambient
// globals; consumers receive an instance.
type Service interface {
	// State returns the latest committed health state.
	State() models.HealthState
	// Probe runs a probe cycle unless one is already in flight or ran
	// too recently, and returns the resulting state.
	Probe(ctx context.Context) models.HealthState
	// MarkOffline forces the state to offline without probing.
	MarkOffline(reason string)
	// Invalidate returns the state to checking until the next probe.
	Invalidate()
	// Subscribe returns a channel receiving committed state changes.
	Subscribe() <-chan models.HealthState
}
