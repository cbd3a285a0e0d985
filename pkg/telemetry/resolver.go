// Package telemetry pkg/telemetry/resolver.go
package telemetry

import (
	"strings"

	"github.com/plantradar/plantradar/pkg/models"
)

// HintSource extracts one candidate label from a raw reading. Sources
// are tried in priority order; an empty result means the source has
// nothing to offer for this reading.
type HintSource func(r *models.RawReading) string

// DefaultHintSources returns the extraction order used against the
// upstream envelope: explicit metadata first, then the free-text
// channel hint, then the sensor identity itself.
func DefaultHintSources() []HintSource {
	return []HintSource{
		func(r *models.RawReading) string { return r.Metadata["alias"] },
		func(r *models.RawReading) string { return r.Metadata["category"] },
		func(r *models.RawReading) string { return r.Metadata["sensor_type"] },
		func(r *models.RawReading) string { return r.ChannelHint },
		func(r *models.RawReading) string { return r.SensorID },
	}
}

type aliasEntry struct {
	alias   string
	channel models.ChannelID
}

// Resolver maps vendor/source-specific labels onto the fixed channel
// set. The alias table is built once from static configuration and
// never mutated afterwards.
type Resolver struct {
	entries []aliasEntry
}

// NewResolver builds a resolver from the channel table. Each channel
// matches its own ID plus its configured aliases.
func NewResolver(table *ChannelTable) *Resolver {
	r := &Resolver{}

	for _, cfg := range table.Configs() {
		r.entries = append(r.entries, aliasEntry{
			alias:   normalizeLabel(string(cfg.ID)),
			channel: cfg.ID,
		})

		for _, alias := range cfg.Aliases {
			norm := normalizeLabel(alias)
			if norm == "" || norm == normalizeLabel(string(cfg.ID)) {
				continue
			}

			r.entries = append(r.entries, aliasEntry{alias: norm, channel: cfg.ID})
		}
	}

	return r
}

// Resolve tries each candidate in order: first an exact match against
// the alias table, then substring containment in either direction.
// The first hit wins. No match means the reading should be dropped by
// the caller; it is not an error.
func (r *Resolver) Resolve(candidates ...string) (models.ChannelID, bool) {
	for _, candidate := range candidates {
		norm := normalizeLabel(candidate)
		if norm == "" {
			continue
		}

		for _, e := range r.entries {
			if norm == e.alias {
				return e.channel, true
			}
		}

		for _, e := range r.entries {
			if strings.Contains(norm, e.alias) || strings.Contains(e.alias, norm) {
				return e.channel, true
			}
		}
	}

	return "", false
}

// ResolveReading applies the hint sources to a reading and resolves
// the extracted candidates.
func (r *Resolver) ResolveReading(reading *models.RawReading, sources []HintSource) (models.ChannelID, bool) {
	candidates := make([]string, 0, len(sources))
	for _, src := range sources {
		candidates = append(candidates, src(reading))
	}

	return r.Resolve(candidates...)
}

// normalizeLabel lower-cases a label, trims it, and collapses spaces
// and hyphens to underscores so "Motor Current" and "motor-current"
// both match "motor_current".
func normalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")

	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}

	return strings.Trim(s, "_")
}
