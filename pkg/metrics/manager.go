// Package metrics pkg/metrics/manager.go
package metrics

import (
	"sync"
	"time"

	"github.com/plantradar/plantradar/pkg/models"
)

const defaultRetention = 256

// Manager keeps one sample buffer per endpoint.
type Manager struct {
	endpoints sync.Map // endpoint -> SampleStore
	config    models.MetricsConfig
}

// NewManager creates a recorder with the given config. Zero retention
// falls back to the default buffer size.
func NewManager(cfg models.MetricsConfig) *Manager {
	if cfg.Retention <= 0 {
		cfg.Retention = defaultRetention
	}

	return &Manager{config: cfg}
}

// Record stores a fetch sample for the endpoint. A no-op when metrics
// are disabled.
func (m *Manager) Record(endpoint string, timestamp time.Time, elapsed int64, origin models.Origin) {
	if !m.config.Enabled {
		return
	}

	store, _ := m.endpoints.LoadOrStore(endpoint, NewBuffer(endpoint, m.config.Retention))
	store.(SampleStore).Add(timestamp, elapsed, origin)
}

// GetSamples returns the recorded samples for an endpoint, newest
// first, or nil when the endpoint has never been fetched.
func (m *Manager) GetSamples(endpoint string) []models.FetchSample {
	store, ok := m.endpoints.Load(endpoint)
	if !ok {
		return nil
	}

	return store.(SampleStore).GetSamples()
}

// Endpoints returns the endpoints with recorded samples.
func (m *Manager) Endpoints() []string {
	var names []string

	m.endpoints.Range(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})

	return names
}
