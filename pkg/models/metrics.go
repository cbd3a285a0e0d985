// Package models pkg/models/metrics.go
package models

import "time"

// FetchSample records one resilient-fetch call against an endpoint.
type FetchSample struct {
	Timestamp time.Time `json:"timestamp"`
	Elapsed   int64     `json:"elapsed_ns"`
	Endpoint  string    `json:"endpoint"`
	Origin    Origin    `json:"origin"`
}

// MetricsConfig controls fetch sample retention.
type MetricsConfig struct {
	Enabled   bool `json:"metrics_enabled"`
	Retention int  `json:"metrics_retention"`
}
