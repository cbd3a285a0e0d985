// Package models pkg/models/derived.go
package models

import "time"

// RiskTier classifies windowed stability per series and overall.
type RiskTier string

const (
	RiskGreen   RiskTier = "green"
	RiskYellow  RiskTier = "yellow"
	RiskRed     RiskTier = "red"
	RiskUnknown RiskTier = "unknown"
)

// Severity returns the ordering of a tier; higher is worse. Unknown
// ranks below green so it never dominates a computed tier.
func (r RiskTier) Severity() int {
	switch r {
	case RiskGreen:
		return 1
	case RiskYellow:
		return 2
	case RiskRed:
		return 3
	default:
		return 0
	}
}

// WorstTier returns the most severe computed tier, or unknown when no
// tier was computed at all.
func WorstTier(tiers ...RiskTier) RiskTier {
	worst := RiskUnknown

	for _, t := range tiers {
		if t.Severity() > worst.Severity() {
			worst = t
		}
	}

	return worst
}

// SeriesStats holds the windowed statistics for one tracked series.
// Unstable is set when the learned baseline deviation is zero while
// the window deviation is not; StabilityRatio is meaningless then.
type SeriesStats struct {
	Current        float64 `json:"current"`
	Mean           float64 `json:"mean"`
	StdDev         float64 `json:"std_dev"`
	BaselineStdDev float64 `json:"baseline_std_dev"`
	StabilityRatio float64 `json:"stability_ratio"`
	Unstable       bool    `json:"unstable,omitempty"`
	Samples        int     `json:"samples"`
}

// AggregateStat is a configured cross-series aggregate and its tier.
type AggregateStat struct {
	Value float64  `json:"value"`
	Tier  RiskTier `json:"tier"`
}

// DerivedWindow is the windowed risk assessment. It is recomputed per
// request and carries no identity across requests.
type DerivedWindow struct {
	WindowMinutes int                      `json:"window_minutes"`
	GeneratedAt   time.Time                `json:"generated_at"`
	Series        map[string]SeriesStats   `json:"series"`
	Risk          map[string]RiskTier      `json:"risk"`
	Aggregates    map[string]AggregateStat `json:"aggregates,omitempty"`
	OverallRisk   RiskTier                 `json:"overall_risk"`
}
