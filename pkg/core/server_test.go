package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantradar/plantradar/pkg/config"
	"github.com/plantradar/plantradar/pkg/fetch"
	"github.com/plantradar/plantradar/pkg/ingest"
	"github.com/plantradar/plantradar/pkg/models"
	"github.com/plantradar/plantradar/pkg/telemetry"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "missing listen addr",
			config:  Config{Source: fetch.Config{BaseURL: "http://backend:8000"}},
			wantErr: ErrListenAddrRequired,
		},
		{
			name:    "missing source",
			config:  Config{ListenAddr: ":8080"},
			wantErr: ErrSourceRequired,
		},
		{
			name: "mqtt without broker",
			config: Config{
				ListenAddr: ":8080",
				Source:     fetch.Config{BaseURL: "http://backend:8000"},
				MQTT:       &ingest.Config{},
			},
			wantErr: ErrBrokerURLRequired,
		},
		{
			name: "valid",
			config: Config{
				ListenAddr: ":8080",
				Source:     fetch.Config{BaseURL: "http://backend:8000"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigFromJSON(t *testing.T) {
	raw := `{
		"listen_addr": ":8090",
		"source": {
			"base_url": "http://backend:8000",
			"failure_limit": 5
		},
		"poll": {"interval": "3s", "min_gap": "1s"},
		"health": {"interval": "30s", "liveness_path": "/health"},
		"derived": {"window_minutes": 5, "baselines": {"temperature": 2.5}},
		"webhooks": [{"enabled": true, "url": "http://hooks/x", "cooldown": "5m"}],
		"metrics": {"enabled": true, "retention": 100}
	}`

	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(raw), &cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8090", cfg.ListenAddr)
	assert.Equal(t, 5, cfg.Source.FailureLimit)
	assert.Equal(t, config.Duration(3*time.Second), cfg.Poll.Interval)
	assert.Equal(t, 2.5, cfg.Derived.Baselines["temperature"])
	require.Len(t, cfg.Webhooks, 1)
	assert.Equal(t, config.Duration(5*time.Minute), cfg.Webhooks[0].Cooldown)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestNewServerWiring(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/api/v1/sensor-data/recent":
			_, _ = w.Write([]byte(`{"items":[],"total":0}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	cfg := &Config{
		ListenAddr: ":0",
		Source:     fetch.Config{BaseURL: backend.URL},
		Metrics:    models.MetricsConfig{Enabled: true},
	}

	server, err := NewServer(cfg)
	require.NoError(t, err)
	require.NotNil(t, server.Router())

	// The API answers before any component is started.
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/channels", nil)
	server.Router().ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var channels []telemetry.ChannelConfig
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &channels))
	assert.Len(t, channels, len(telemetry.DefaultChannels()))
}

func TestNewServerRejectsInvalidChannels(t *testing.T) {
	cfg := &Config{
		ListenAddr: ":0",
		Source:     fetch.Config{BaseURL: "http://backend:8000"},
		Channels: []telemetry.ChannelConfig{
			{ID: "temperature", Warning: 90, Critical: 80},
		},
	}

	_, err := NewServer(cfg)
	assert.ErrorIs(t, err, telemetry.ErrInvertedBoundaries)
}
