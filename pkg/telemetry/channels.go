// Package telemetry pkg/telemetry/channels.go
package telemetry

import (
	"fmt"

	"github.com/plantradar/plantradar/pkg/models"
)

// ChannelConfig holds the canonical unit, classification boundaries,
// and alias table for one logical channel. Boundaries are
// exclusive-lower: value > Warning is at least warning, value >
// Critical is critical.
type ChannelConfig struct {
	ID       models.ChannelID `json:"id"`
	Unit     string           `json:"unit"`
	Warning  float64          `json:"warning"`
	Critical float64          `json:"critical"`
	Aliases  []string         `json:"aliases,omitempty"`
}

// ChannelTable is the closed set of channels for a deployment.
type ChannelTable struct {
	channels map[models.ChannelID]ChannelConfig
	order    []models.ChannelID
}

// NewChannelTable builds a table from the given configs. Inverted
// boundaries (warning >= critical) fail fast here rather than at
// classification time.
func NewChannelTable(configs []ChannelConfig) (*ChannelTable, error) {
	if len(configs) == 0 {
		return nil, ErrNoChannels
	}

	t := &ChannelTable{
		channels: make(map[models.ChannelID]ChannelConfig, len(configs)),
		order:    make([]models.ChannelID, 0, len(configs)),
	}

	for i := range configs {
		cfg := configs[i]

		if cfg.ID == "" {
			return nil, fmt.Errorf("channel %d: %w", i+1, ErrEmptyChannelID)
		}

		if _, exists := t.channels[cfg.ID]; exists {
			return nil, fmt.Errorf("channel %s: %w", cfg.ID, ErrDuplicateChannel)
		}

		if cfg.Warning >= cfg.Critical {
			return nil, fmt.Errorf("channel %s (warning %v >= critical %v): %w",
				cfg.ID, cfg.Warning, cfg.Critical, ErrInvertedBoundaries)
		}

		t.channels[cfg.ID] = cfg
		t.order = append(t.order, cfg.ID)
	}

	return t, nil
}

// DefaultChannels returns the channel set used by the extruder line
// deployments: thresholds in each channel's canonical unit.
func DefaultChannels() []ChannelConfig {
	return []ChannelConfig{
		{
			ID:       models.ChannelTemperature,
			Unit:     "°C",
			Warning:  70,
			Critical: 80,
			Aliases:  []string{"temp", "temperature"},
		},
		{
			ID:       models.ChannelVibration,
			Unit:     "mm/s",
			Warning:  4,
			Critical: 6,
			Aliases:  []string{"vib", "vibration"},
		},
		{
			ID:       models.ChannelPressure,
			Unit:     "bar",
			Warning:  8,
			Critical: 10,
			Aliases:  []string{"pressure"},
		},
		{
			ID:       models.ChannelMotorCurrent,
			Unit:     "A",
			Warning:  15,
			Critical: 20,
			Aliases:  []string{"current", "motor_current"},
		},
		{
			ID:       models.ChannelWearIndex,
			Unit:     "%",
			Warning:  70,
			Critical: 85,
			Aliases:  []string{"wear", "wear_index"},
		},
	}
}

// Get returns the config for a channel.
func (t *ChannelTable) Get(id models.ChannelID) (ChannelConfig, bool) {
	cfg, ok := t.channels[id]
	return cfg, ok
}

// IDs returns the channel IDs in declaration order.
func (t *ChannelTable) IDs() []models.ChannelID {
	out := make([]models.ChannelID, len(t.order))
	copy(out, t.order)

	return out
}

// Configs returns the channel configs in declaration order.
func (t *ChannelTable) Configs() []ChannelConfig {
	out := make([]ChannelConfig, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.channels[id])
	}

	return out
}
