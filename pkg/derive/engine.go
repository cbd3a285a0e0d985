// Package derive pkg/derive/engine.go
package derive

import (
	"math"
	"sort"
	"time"

	"github.com/plantradar/plantradar/pkg/models"
)

const (
	defaultWindowMinutes = 5
	defaultGreenMax      = 1.2
	defaultYellowMax     = 2.0
)

// AggregateOp selects how an aggregate combines its member series.
type AggregateOp string

const (
	// AggregateMean averages the windowed means of the member series.
	AggregateMean AggregateOp = "mean"
	// AggregateSpread is the gap between the highest and lowest
	// windowed mean across the member series.
	AggregateSpread AggregateOp = "spread"
)

// AggregateSpec configures one cross-series aggregate. The aggregate
// value is tiered against its own boundaries: value > Yellow is at
// least yellow, value > Red is red.
type AggregateSpec struct {
	Name   string      `json:"name"`
	Op     AggregateOp `json:"op"`
	Series []string    `json:"series"`
	Yellow float64     `json:"yellow"`
	Red    float64     `json:"red"`
}

// Config tunes the derived metrics engine. Baselines holds the
// learned steady-state deviation per series; a series missing here
// has baseline zero.
type Config struct {
	WindowMinutes int                `json:"window_minutes,omitempty"`
	GreenMax      float64            `json:"green_max,omitempty"`
	YellowMax     float64            `json:"yellow_max,omitempty"`
	Baselines     map[string]float64 `json:"baselines,omitempty"`
	Aggregates    []AggregateSpec    `json:"aggregates,omitempty"`
}

// Engine computes a derived risk window from the store. Compute is a
// pure function of store contents and configuration; nothing is
// carried between invocations.
type Engine struct {
	config Config
	store  *WindowStore
}

// NewEngine creates an engine over the given store.
func NewEngine(cfg Config, store *WindowStore) *Engine {
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = defaultWindowMinutes
	}

	if cfg.GreenMax <= 0 {
		cfg.GreenMax = defaultGreenMax
	}

	if cfg.YellowMax <= cfg.GreenMax {
		cfg.YellowMax = defaultYellowMax
	}

	return &Engine{config: cfg, store: store}
}

// Compute derives per-series stability stats, risk tiers, and
// configured aggregates as of now.
func (e *Engine) Compute(now time.Time) *models.DerivedWindow {
	window := time.Duration(e.config.WindowMinutes) * time.Minute

	names := e.seriesNames()

	series := make(map[string]models.SeriesStats, len(names))
	risk := make(map[string]models.RiskTier, len(names))
	tiers := make([]models.RiskTier, 0, len(names))

	for _, name := range names {
		values := e.store.Values(name, window, now)

		stats, tier := e.assess(name, values)
		series[name] = stats
		risk[name] = tier

		if tier != models.RiskUnknown {
			tiers = append(tiers, tier)
		}
	}

	aggregates := e.aggregates(series)
	for _, agg := range aggregates {
		if agg.Tier != models.RiskUnknown {
			tiers = append(tiers, agg.Tier)
		}
	}

	return &models.DerivedWindow{
		WindowMinutes: e.config.WindowMinutes,
		GeneratedAt:   now,
		Series:        series,
		Risk:          risk,
		Aggregates:    aggregates,
		OverallRisk:   models.WorstTier(tiers...),
	}
}

// assess computes the stats and tier for one series window.
func (e *Engine) assess(name string, values []float64) (models.SeriesStats, models.RiskTier) {
	if len(values) == 0 {
		return models.SeriesStats{}, models.RiskUnknown
	}

	mean := meanOf(values)
	stddev := stdDevOf(values, mean)
	baseline := e.config.Baselines[name]

	stats := models.SeriesStats{
		Current:        values[len(values)-1],
		Mean:           mean,
		StdDev:         stddev,
		BaselineStdDev: baseline,
		Samples:        len(values),
	}

	if baseline == 0 {
		if stddev == 0 {
			return stats, models.RiskGreen
		}

		stats.Unstable = true

		return stats, models.RiskRed
	}

	stats.StabilityRatio = stddev / baseline

	switch {
	case stats.StabilityRatio <= e.config.GreenMax:
		return stats, models.RiskGreen
	case stats.StabilityRatio <= e.config.YellowMax:
		return stats, models.RiskYellow
	default:
		return stats, models.RiskRed
	}
}

func (e *Engine) aggregates(series map[string]models.SeriesStats) map[string]models.AggregateStat {
	if len(e.config.Aggregates) == 0 {
		return nil
	}

	out := make(map[string]models.AggregateStat, len(e.config.Aggregates))

	for _, spec := range e.config.Aggregates {
		var means []float64

		for _, name := range spec.Series {
			stats, ok := series[name]
			if !ok || stats.Samples == 0 {
				continue
			}

			means = append(means, stats.Mean)
		}

		if len(means) == 0 {
			out[spec.Name] = models.AggregateStat{Tier: models.RiskUnknown}
			continue
		}

		var value float64

		switch spec.Op {
		case AggregateSpread:
			value = maxOf(means) - minOf(means)
		default:
			value = meanOf(means)
		}

		out[spec.Name] = models.AggregateStat{
			Value: value,
			Tier:  tierFor(value, spec.Yellow, spec.Red),
		}
	}

	return out
}

// seriesNames is the union of tracked series and configured
// baselines, so a silent series still shows up as unknown.
func (e *Engine) seriesNames() []string {
	seen := make(map[string]struct{})

	for _, name := range e.store.Names() {
		seen[name] = struct{}{}
	}

	for name := range e.config.Baselines {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func tierFor(value, yellow, red float64) models.RiskTier {
	switch {
	case red > 0 && value > red:
		return models.RiskRed
	case yellow > 0 && value > yellow:
		return models.RiskYellow
	default:
		return models.RiskGreen
	}
}

func meanOf(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// stdDevOf is the population standard deviation around the given
// mean.
func stdDevOf(values []float64, mean float64) float64 {
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)))
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}

	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}

	return m
}
