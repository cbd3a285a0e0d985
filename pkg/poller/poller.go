// Package poller drives the poll cycle: fetch, merge, classify,
// derive, publish, alert.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/plantradar/plantradar/pkg/alerts"
	"github.com/plantradar/plantradar/pkg/config"
	"github.com/plantradar/plantradar/pkg/derive"
	"github.com/plantradar/plantradar/pkg/fetch"
	"github.com/plantradar/plantradar/pkg/health"
	"github.com/plantradar/plantradar/pkg/models"
	"github.com/plantradar/plantradar/pkg/telemetry"
)

const (
	defaultInterval = 3 * time.Second
	defaultMinGap   = time.Second
)

// Config tunes the poll loop. MinGap is a floor on the inter-poll
// spacing so a misconfigured interval cannot hammer the source.
type Config struct {
	Interval config.Duration `json:"interval,omitempty"`
	MinGap   config.Duration `json:"min_gap,omitempty"`
}

// Poller owns the canonical snapshot and republishes derived state on
// every cycle. All mutation happens on the loop goroutine; the sink
// handles its own synchronization.
type Poller struct {
	config     Config
	source     DataSource
	drainer    Drainer
	aggregator *telemetry.Aggregator
	windows    *derive.WindowStore
	engine     *derive.Engine
	health     health.Service
	sink       StateSink
	alerter    alerts.AlertService
	limiter    *rate.Limiter

	mu         sync.Mutex
	snapshot   models.Snapshot
	lastHealth models.HealthStatus
	done       chan struct{}
	wg         sync.WaitGroup
}

// Deps collects the poller's collaborators. Drainer and Alerter are
// optional.
type Deps struct {
	Source     DataSource
	Drainer    Drainer
	Aggregator *telemetry.Aggregator
	Windows    *derive.WindowStore
	Engine     *derive.Engine
	Health     health.Service
	Sink       StateSink
	Alerter    alerts.AlertService
}

// New creates a poller.
func New(cfg Config, deps Deps) (*Poller, error) {
	if deps.Source == nil || deps.Aggregator == nil || deps.Sink == nil || deps.Health == nil {
		return nil, ErrMissingDependency
	}

	if cfg.Interval <= 0 {
		cfg.Interval = config.Duration(defaultInterval)
	}

	minGap := time.Duration(cfg.MinGap)
	if minGap <= 0 {
		minGap = defaultMinGap
	}

	if time.Duration(cfg.Interval) < minGap {
		cfg.Interval = config.Duration(minGap)
	}

	return &Poller{
		config:     cfg,
		source:     deps.Source,
		drainer:    deps.Drainer,
		aggregator: deps.Aggregator,
		windows:    deps.Windows,
		engine:     deps.Engine,
		health:     deps.Health,
		sink:       deps.Sink,
		alerter:    deps.Alerter,
		limiter:    rate.NewLimiter(rate.Every(minGap), 1),
		snapshot:   models.Snapshot{},
		lastHealth: models.HealthChecking,
		done:       make(chan struct{}),
	}, nil
}

// Start launches the poll loop. The first cycle runs immediately.
func (p *Poller) Start(ctx context.Context) {
	p.wg.Add(1)

	go p.run(ctx)
}

// Stop terminates the loop and waits for the in-flight cycle.
func (p *Poller) Stop() {
	close(p.done)
	p.wg.Wait()
}

// Snapshot returns a copy of the current snapshot.
func (p *Poller) Snapshot() models.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.snapshot.Clone()
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(time.Duration(p.config.Interval))
	defer ticker.Stop()

	healthCh := p.health.Subscribe()

	p.poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.done:
			return
		case state := <-healthCh:
			p.publishHealth(ctx, state)
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

// poll runs one cycle. The limiter enforces the minimum inter-poll
// gap regardless of how ticks arrive.
func (p *Poller) poll(ctx context.Context) {
	if !p.limiter.Allow() {
		return
	}

	readings, origin := p.source.Readings(ctx)

	if p.drainer != nil {
		readings = append(readings, p.drainer.Drain()...)
	}

	p.mu.Lock()
	prev := p.snapshot
	next := p.aggregator.Aggregate(prev, readings)
	p.snapshot = next
	p.mu.Unlock()

	p.observeAdvances(prev, next)

	p.sink.UpdateSnapshot(next, origin)

	if p.engine != nil {
		p.sink.UpdateDerived(p.engine.Compute(time.Now()))
	}

	predictions, predOrigin := p.source.Predictions(ctx)
	p.sink.UpdatePredictions(predictions, predOrigin)

	aiStatus, _ := p.source.Status(ctx, fetch.EndpointAIStatus)
	p.sink.UpdateSubsystem("ai", aiStatus)

	brokerStatus, _ := p.source.Status(ctx, fetch.EndpointBrokerStatus)
	p.sink.UpdateSubsystem("broker", brokerStatus)

	p.alertTransitions(ctx, prev, next)
}

// observeAdvances feeds the window store with channels whose reading
// actually advanced this cycle, so repeated polls of an idle source
// do not inflate the window.
func (p *Poller) observeAdvances(prev, next models.Snapshot) {
	if p.windows == nil {
		return
	}

	for channel, reading := range next {
		if old, ok := prev[channel]; ok && !reading.Timestamp.After(old.Timestamp) {
			continue
		}

		p.windows.Observe(string(channel), reading.Timestamp, reading.Value)
	}
}

// alertTransitions raises an alert for each channel that entered the
// critical tier this cycle.
func (p *Poller) alertTransitions(ctx context.Context, prev, next models.Snapshot) {
	if p.alerter == nil {
		return
	}

	for channel, reading := range next {
		if reading.Status != models.StatusCritical {
			continue
		}

		if old, ok := prev[channel]; ok && old.Status == models.StatusCritical {
			continue
		}

		p.sendAlert(ctx, fmt.Sprintf("channel:%s", channel), &alerts.Alert{
			Level:   alerts.Error,
			Title:   fmt.Sprintf("Channel %s critical", channel),
			Message: fmt.Sprintf("%s reached %.2f %s from sensor %s", channel, reading.Value, reading.Unit, reading.SensorID),
			Details: map[string]any{
				"channel":   string(channel),
				"value":     reading.Value,
				"unit":      reading.Unit,
				"sensor_id": reading.SensorID,
				"timestamp": reading.Timestamp,
			},
		})
	}
}

// publishHealth forwards committed health states to the sink and
// raises alerts on offline/recovery transitions.
func (p *Poller) publishHealth(ctx context.Context, state models.HealthState) {
	p.sink.UpdateHealth(state)

	p.mu.Lock()
	last := p.lastHealth
	p.lastHealth = state.Status
	p.mu.Unlock()

	if state.Status == last {
		return
	}

	switch {
	case state.Status == models.HealthOffline:
		p.sendAlert(ctx, "health", &alerts.Alert{
			Level:   alerts.Error,
			Title:   "Data source offline",
			Message: "Upstream data source is unreachable, serving fallback data",
		})
	case state.Status == models.HealthOnline && last == models.HealthOffline:
		p.sendAlert(ctx, "health", &alerts.Alert{
			Level:   alerts.Info,
			Title:   "Data source recovered",
			Message: "Upstream data source is reachable again",
		})
	}
}

func (p *Poller) sendAlert(ctx context.Context, key string, alert *alerts.Alert) {
	if p.alerter == nil {
		return
	}

	err := p.alerter.Alert(ctx, key, alert)
	if err != nil && !errors.Is(err, alerts.ErrWebhookDisabled) && !errors.Is(err, alerts.ErrWebhookCooldown) {
		log.Printf("Error sending alert '%s': %v", alert.Title, err)
	}
}
