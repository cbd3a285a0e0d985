// Package poller pkg/poller/interfaces.go
package poller

import (
	"context"

	"github.com/plantradar/plantradar/pkg/fetch"
	"github.com/plantradar/plantradar/pkg/models"
)

//go:generate mockgen -destination=mock_poller.go -package=poller github.com/plantradar/plantradar/pkg/poller DataSource,Drainer,StateSink

// DataSource is the resilient view of the upstream endpoints. Every
// call succeeds; the origin tag says whether the data is live.
type DataSource interface {
	Readings(ctx context.Context) ([]models.RawReading, models.Origin)
	Predictions(ctx context.Context) ([]models.Prediction, models.Origin)
	Status(ctx context.Context, endpoint fetch.Endpoint) (fetch.SubsystemStatus, models.Origin)
}

// Drainer hands over telemetry buffered since the last poll.
type Drainer interface {
	Drain() []models.RawReading
}

// StateSink receives each published state update, typically the API
// server.
type StateSink interface {
	UpdateHealth(state models.HealthState)
	UpdateSnapshot(snapshot models.Snapshot, origin models.Origin)
	UpdatePredictions(items []models.Prediction, origin models.Origin)
	UpdateDerived(window *models.DerivedWindow)
	UpdateSubsystem(name string, status fetch.SubsystemStatus)
}
