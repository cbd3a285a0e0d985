// Package models pkg/models/telemetry.go
package models

import "time"

// ChannelID identifies a logical sensor channel, independent of the
// vendor-specific naming used by the upstream source.
type ChannelID string

const (
	ChannelTemperature  ChannelID = "temperature"
	ChannelVibration    ChannelID = "vibration"
	ChannelPressure     ChannelID = "pressure"
	ChannelMotorCurrent ChannelID = "motor_current"
	ChannelWearIndex    ChannelID = "wear_index"
)

// Status is the classification tier of a reading.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Severity returns the ordering of a status; higher is worse.
func (s Status) Severity() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusCritical:
		return 2
	default:
		return 0
	}
}

// WorstStatus returns the most severe of the given statuses.
func WorstStatus(statuses ...Status) Status {
	worst := StatusNormal

	for _, s := range statuses {
		if s.Severity() > worst.Severity() {
			worst = s
		}
	}

	return worst
}

// RawReading is a single reading as produced by the upstream source.
// Readings are immutable; ordering by Timestamp is the only invariant
// the layer relies on.
type RawReading struct {
	SensorID    string            `json:"sensor_id"`
	ChannelHint string            `json:"channel_hint,omitempty"`
	Value       float64           `json:"value"`
	Unit        string            `json:"unit,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// ClassifiedReading is a reading after alias resolution and threshold
// classification. Recomputed on every aggregation pass, never stored.
type ClassifiedReading struct {
	Channel   ChannelID `json:"channel"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	SensorID  string    `json:"sensor_id"`
}

// Snapshot maps each channel to its most recent classified reading.
type Snapshot map[ChannelID]ClassifiedReading

// Clone returns a copy of the snapshot safe for independent mutation.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for id, r := range s {
		out[id] = r
	}

	return out
}

// Origin tags a fetch result as live upstream data or synthesized
// fallback data. The tag, not content inspection, is the sole
// discriminator downstream.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginFallback Origin = "fallback"
)

// Prediction is an anomaly prediction item from the AI subsystem.
type Prediction struct {
	Timestamp  time.Time `json:"timestamp"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
	Prediction string    `json:"prediction"`
	Status     Status    `json:"status"`
}
