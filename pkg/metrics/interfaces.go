// Package metrics pkg/metrics/interfaces.go
package metrics

import (
	"time"

	"github.com/plantradar/plantradar/pkg/models"
)

//go:generate mockgen -destination=mock_metrics.go -package=metrics github.com/plantradar/plantradar/pkg/metrics SampleStore,Recorder

// SampleStore holds a bounded history of fetch samples.
type SampleStore interface {
	Add(timestamp time.Time, elapsed int64, origin models.Origin)
	GetSamples() []models.FetchSample
}

// Recorder collects fetch samples per endpoint.
type Recorder interface {
	Record(endpoint string, timestamp time.Time, elapsed int64, origin models.Origin)
	GetSamples(endpoint string) []models.FetchSample
}
