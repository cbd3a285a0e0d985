// Package models pkg/models/health.go
package models

import "time"

// HealthStatus is the tri-state availability signal for the upstream
// data source and its auxiliary services.
type HealthStatus string

const (
	HealthChecking HealthStatus = "checking"
	HealthOnline   HealthStatus = "online"
	HealthOffline  HealthStatus = "offline"
)

// DependencyStatus is the probe result for a single dependency.
type DependencyStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}

// HealthState is the committed output of a probe cycle. It is written
// atomically by the health monitor; readers only ever see a fully
// committed value.
type HealthState struct {
	Status        HealthStatus       `json:"status"`
	LastCheckedAt time.Time          `json:"last_checked_at"`
	Dependencies  []DependencyStatus `json:"dependencies,omitempty"`
}
