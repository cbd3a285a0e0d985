// Package telemetry pkg/telemetry/classifier.go
package telemetry

import (
	"fmt"

	"github.com/plantradar/plantradar/pkg/models"
)

// Classify maps a value to its status tier for one channel. Both
// boundaries are exclusive-lower, so classification is total over the
// real line. Callers must reject non-finite values before calling;
// the classifier never receives NaN.
func Classify(cfg ChannelConfig, value float64) models.Status {
	switch {
	case value > cfg.Critical:
		return models.StatusCritical
	case value > cfg.Warning:
		return models.StatusWarning
	default:
		return models.StatusNormal
	}
}

// Classify looks up the channel in the table and classifies the value.
func (t *ChannelTable) Classify(id models.ChannelID, value float64) (models.Status, error) {
	cfg, ok := t.channels[id]
	if !ok {
		return models.StatusNormal, fmt.Errorf("%w: %s", ErrUnknownChannel, id)
	}

	return Classify(cfg, value), nil
}
