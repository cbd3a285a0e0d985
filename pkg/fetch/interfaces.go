// Package fetch pkg/fetch/interfaces.go
package fetch

import (
	"encoding/json"

	"github.com/plantradar/plantradar/pkg/models"
)

//go:generate mockgen -destination=mock_fetch.go -package=fetch github.com/plantradar/plantradar/pkg/fetch HealthGate,Synthesizer

// HealthGate is the slice of the health monitor the fetcher needs:
// read the committed state, and force offline after repeated
// failures.
type HealthGate interface {
	State() models.HealthState
	MarkOffline(reason string)
}

// Synthesizer produces substitute data shaped identically to the live
// response for an endpoint. It must never fail.
type Synthesizer interface {
	Synthesize(endpoint Endpoint) json.RawMessage
}
