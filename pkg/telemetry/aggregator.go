// Package telemetry pkg/telemetry/aggregator.go
package telemetry

import (
	"log"
	"math"

	"github.com/plantradar/plantradar/pkg/models"
)

// Aggregator folds batches of raw readings into a per-channel
// snapshot. It holds no state of its own; the caller owns the
// snapshot and passes the previous value in on each pass.
type Aggregator struct {
	table    *ChannelTable
	resolver *Resolver
	sources  []HintSource
}

// NewAggregator creates an aggregator over the given channel table.
// A nil sources slice falls back to the default hint extraction order.
func NewAggregator(table *ChannelTable, sources []HintSource) *Aggregator {
	if sources == nil {
		sources = DefaultHintSources()
	}

	return &Aggregator{
		table:    table,
		resolver: NewResolver(table),
		sources:  sources,
	}
}

// Aggregate resolves, classifies, and merges a batch into a copy of
// the previous snapshot. Unresolved readings are dropped silently.
// Non-finite values are dropped before classification. A reading
// replaces a channel's entry only when strictly newer; equal or older
// timestamps never overwrite, so replaying a batch is idempotent and
// batch order does not matter.
func (a *Aggregator) Aggregate(prev models.Snapshot, batch []models.RawReading) models.Snapshot {
	next := prev.Clone()

	for i := range batch {
		reading := &batch[i]

		channel, ok := a.resolver.ResolveReading(reading, a.sources)
		if !ok {
			continue
		}

		if math.IsNaN(reading.Value) || math.IsInf(reading.Value, 0) {
			log.Printf("Dropping non-finite reading for channel %s from sensor %s", channel, reading.SensorID)
			continue
		}

		cfg, ok := a.table.Get(channel)
		if !ok {
			continue
		}

		if current, exists := next[channel]; exists && !reading.Timestamp.After(current.Timestamp) {
			continue
		}

		unit := reading.Unit
		if unit == "" {
			unit = cfg.Unit
		}

		next[channel] = models.ClassifiedReading{
			Channel:   channel,
			Value:     reading.Value,
			Unit:      unit,
			Status:    Classify(cfg, reading.Value),
			Timestamp: reading.Timestamp,
			SensorID:  reading.SensorID,
		}
	}

	return next
}
