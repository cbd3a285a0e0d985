// Package core pkg/core/types.go
package core

import (
	"github.com/plantradar/plantradar/pkg/alerts"
	"github.com/plantradar/plantradar/pkg/config"
	"github.com/plantradar/plantradar/pkg/derive"
	"github.com/plantradar/plantradar/pkg/fetch"
	"github.com/plantradar/plantradar/pkg/ingest"
	"github.com/plantradar/plantradar/pkg/models"
	"github.com/plantradar/plantradar/pkg/poller"
	"github.com/plantradar/plantradar/pkg/telemetry"
)

// HealthConfig tunes the upstream health probes.
type HealthConfig struct {
	LivenessPath string            `json:"liveness_path,omitempty"`
	Interval     config.Duration   `json:"interval,omitempty"`
	Timeout      config.Duration   `json:"timeout,omitempty"`
	Auxiliary    map[string]string `json:"auxiliary,omitempty"`
}

// Config is the top-level service configuration.
type Config struct {
	ListenAddr     string                    `json:"listen_addr"`
	GRPCHealthAddr string                    `json:"grpc_health_addr,omitempty"`
	Source         fetch.Config              `json:"source"`
	Poll           poller.Config             `json:"poll,omitempty"`
	Health         HealthConfig              `json:"health,omitempty"`
	Channels       []telemetry.ChannelConfig `json:"channels,omitempty"`
	Derived        derive.Config             `json:"derived,omitempty"`
	MQTT           *ingest.Config            `json:"mqtt,omitempty"`
	Webhooks       []alerts.WebhookConfig    `json:"webhooks,omitempty"`
	Metrics        models.MetricsConfig      `json:"metrics,omitempty"`
}

// Validate ensures the configuration is complete enough to start.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrListenAddrRequired
	}

	if c.Source.BaseURL == "" {
		return ErrSourceRequired
	}

	if c.MQTT != nil && c.MQTT.BrokerURL == "" {
		return ErrBrokerURLRequired
	}

	return nil
}
