// Package derive computes windowed stability statistics and risk
// tiers over recent telemetry.
package derive

import (
	"sort"
	"sync"
	"time"
)

const defaultRetention = 15 * time.Minute

type point struct {
	ts    time.Time
	value float64
}

// WindowStore keeps a bounded recent history per series. Points older
// than the retention horizon are dropped on write.
type WindowStore struct {
	mu        sync.RWMutex
	series    map[string][]point
	retention time.Duration
}

// NewWindowStore creates a store with the given retention. Zero or
// negative retention falls back to the default.
func NewWindowStore(retention time.Duration) *WindowStore {
	if retention <= 0 {
		retention = defaultRetention
	}

	return &WindowStore{
		series:    make(map[string][]point),
		retention: retention,
	}
}

// Observe appends a value to a series and trims expired points.
func (w *WindowStore) Observe(name string, ts time.Time, value float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	points := append(w.series[name], point{ts: ts, value: value})

	cutoff := ts.Add(-w.retention)
	start := 0

	for start < len(points) && points[start].ts.Before(cutoff) {
		start++
	}

	w.series[name] = points[start:]
}

// Values returns the series values inside [now-window, now] in
// insertion order.
func (w *WindowStore) Values(name string, window time.Duration, now time.Time) []float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()

	cutoff := now.Add(-window)

	var values []float64

	for _, p := range w.series[name] {
		if p.ts.Before(cutoff) || p.ts.After(now) {
			continue
		}

		values = append(values, p.value)
	}

	return values
}

// Names returns the tracked series names, sorted.
func (w *WindowStore) Names() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	names := make([]string, 0, len(w.series))
	for name := range w.series {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
