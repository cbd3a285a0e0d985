// Package core wires the layer's components into one runnable
// service.
package core

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/plantradar/plantradar/pkg/alerts"
	"github.com/plantradar/plantradar/pkg/api"
	"github.com/plantradar/plantradar/pkg/derive"
	"github.com/plantradar/plantradar/pkg/fetch"
	"github.com/plantradar/plantradar/pkg/health"
	"github.com/plantradar/plantradar/pkg/ingest"
	"github.com/plantradar/plantradar/pkg/metrics"
	"github.com/plantradar/plantradar/pkg/poller"
	"github.com/plantradar/plantradar/pkg/telemetry"
)

const (
	defaultLivenessPath = "/health"
	primaryDependency   = "backend"
)

// Server owns the wired component graph and implements the lifecycle
// service contract.
type Server struct {
	config   Config
	monitor  *health.Monitor
	consumer *ingest.Consumer
	poller   *poller.Poller
	api      *api.APIServer
}

// NewServer builds the full component graph from configuration.
func NewServer(cfg *Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	channels := cfg.Channels
	if len(channels) == 0 {
		channels = telemetry.DefaultChannels()
	}

	table, err := telemetry.NewChannelTable(channels)
	if err != nil {
		return nil, fmt.Errorf("invalid channel table: %w", err)
	}

	monitor, err := newMonitor(cfg)
	if err != nil {
		return nil, err
	}

	recorder := metrics.NewManager(cfg.Metrics)

	fetcher, err := fetch.New(cfg.Source, monitor, fetch.NewProvider(channels), recorder)
	if err != nil {
		return nil, err
	}

	var metricsSource api.MetricsSource
	if cfg.Metrics.Enabled {
		metricsSource = recorder
	}

	apiServer := api.NewAPIServer(channels, metricsSource)

	var consumer *ingest.Consumer
	if cfg.MQTT != nil {
		consumer, err = ingest.NewConsumer(*cfg.MQTT)
		if err != nil {
			return nil, err
		}
	}

	windows := derive.NewWindowStore(time.Duration(cfg.Derived.WindowMinutes) * 3 * time.Minute)
	engine := derive.NewEngine(cfg.Derived, windows)

	deps := poller.Deps{
		Source:     fetcher,
		Aggregator: telemetry.NewAggregator(table, nil),
		Windows:    windows,
		Engine:     engine,
		Health:     monitor,
		Sink:       apiServer,
		Alerter:    newAlerter(cfg.Webhooks),
	}

	if consumer != nil {
		deps.Drainer = consumer
	}

	loop, err := poller.New(cfg.Poll, deps)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:   *cfg,
		monitor:  monitor,
		consumer: consumer,
		poller:   loop,
		api:      apiServer,
	}, nil
}

func newMonitor(cfg *Config) (*health.Monitor, error) {
	livenessPath := cfg.Health.LivenessPath
	if livenessPath == "" {
		livenessPath = defaultLivenessPath
	}

	timeout := time.Duration(cfg.Health.Timeout)
	livenessURL := strings.TrimSuffix(cfg.Source.BaseURL, "/") + livenessPath

	checkers := map[string]health.Checker{
		primaryDependency: health.NewHTTPChecker(livenessURL, timeout),
	}

	for name, url := range cfg.Health.Auxiliary {
		checkers[name] = health.NewHTTPChecker(url, timeout)
	}

	return health.NewMonitor(primaryDependency, checkers, time.Duration(cfg.Health.Interval))
}

func newAlerter(configs []alerts.WebhookConfig) alerts.AlertService {
	if len(configs) == 0 {
		return nil
	}

	services := make([]alerts.AlertService, 0, len(configs))
	for _, cfg := range configs {
		services = append(services, alerts.NewWebhookAlerter(cfg))
	}

	return alerts.NewFanout(services...)
}

// Start launches the background components. It does not block; the
// lifecycle layer owns the process lifetime.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		if err := s.monitor.Start(ctx); err != nil && ctx.Err() == nil {
			log.Printf("Health monitor stopped: %v", err)
		}
	}()

	if s.consumer != nil {
		// Connect retries run in the background; a down broker must
		// not hold up startup.
		go func() {
			if err := s.consumer.Start(); err != nil {
				log.Printf("Error starting MQTT consumer: %v", err)
			}
		}()
	}

	s.poller.Start(ctx)

	return nil
}

// Stop shuts the components down in reverse dependency order.
func (s *Server) Stop(ctx context.Context) error {
	s.poller.Stop()

	if s.consumer != nil {
		s.consumer.Stop()
	}

	return s.monitor.Stop(ctx)
}

// Router returns the HTTP API handler.
func (s *Server) Router() http.Handler {
	return s.api.Router()
}
