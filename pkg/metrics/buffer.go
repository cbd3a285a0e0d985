// Package metrics pkg/metrics/buffer.go
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/plantradar/plantradar/pkg/models"
)

// samplePoint is the compact in-buffer representation of one sample.
type samplePoint struct {
	timestamp int64
	elapsed   int64
	origin    models.Origin
}

// RingBuffer is a fixed-size sample buffer with an atomic position
// counter; writers never block readers.
type RingBuffer struct {
	points   []samplePoint
	pos      int64
	size     int64
	endpoint string
}

// NewBuffer creates a SampleStore for one endpoint.
func NewBuffer(endpoint string, size int) SampleStore {
	return &RingBuffer{
		points:   make([]samplePoint, size),
		size:     int64(size),
		endpoint: endpoint,
	}
}

// Add records a sample, overwriting the oldest entry when full.
func (b *RingBuffer) Add(timestamp time.Time, elapsed int64, origin models.Origin) {
	pos := atomic.AddInt64(&b.pos, 1) - 1
	idx := pos % b.size

	b.points[idx] = samplePoint{
		timestamp: timestamp.UnixNano(),
		elapsed:   elapsed,
		origin:    origin,
	}
}

// GetSamples returns the recorded samples, newest first.
func (b *RingBuffer) GetSamples() []models.FetchSample {
	pos := atomic.LoadInt64(&b.pos)

	count := pos
	if count > b.size {
		count = b.size
	}

	samples := make([]models.FetchSample, 0, count)

	for i := int64(0); i < count; i++ {
		idx := (pos - i - 1 + b.size) % b.size
		p := b.points[idx]

		samples = append(samples, models.FetchSample{
			Timestamp: time.Unix(0, p.timestamp),
			Elapsed:   p.elapsed,
			Endpoint:  b.endpoint,
			Origin:    p.origin,
		})
	}

	return samples
}
