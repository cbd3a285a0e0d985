package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/plantradar/plantradar/pkg/config"
	"github.com/plantradar/plantradar/pkg/models"
)

func onlineState() models.HealthState {
	return models.HealthState{Status: models.HealthOnline}
}

func offlineState() models.HealthState {
	return models.HealthState{Status: models.HealthOffline}
}

func TestFetchLive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sensor-data/recent", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"sensor_id":"opcua_temperature","value":42.5}],"total":1}`))
	}))
	defer server.Close()

	gate := NewMockHealthGate(ctrl)
	gate.EXPECT().State().Return(onlineState())

	fetcher, err := New(Config{BaseURL: server.URL}, gate, NewMockSynthesizer(ctrl), nil)
	require.NoError(t, err)

	result := fetcher.Fetch(context.Background(), EndpointReadings)

	assert.Equal(t, models.OriginLive, result.Origin)
	assert.NoError(t, result.Err)
	assert.JSONEq(t, `{"items":[{"sensor_id":"opcua_temperature","value":42.5}],"total":1}`, string(result.Data))
}

func TestFetchOfflineSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	gate := NewMockHealthGate(ctrl)
	gate.EXPECT().State().Return(offlineState())

	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Synthesize(EndpointReadings).Return([]byte(`{"items":[],"total":0}`))

	fetcher, err := New(Config{BaseURL: server.URL}, gate, synth, nil)
	require.NoError(t, err)

	result := fetcher.Fetch(context.Background(), EndpointReadings)

	assert.Equal(t, models.OriginFallback, result.Origin)
	assert.ErrorIs(t, result.Err, errSourceOffline)
	assert.Equal(t, int32(0), hits.Load(), "offline fetch must not touch the network")
}

func TestFetchUpstreamErrorFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gate := NewMockHealthGate(ctrl)
	gate.EXPECT().State().Return(onlineState())

	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Synthesize(EndpointPredictions).Return([]byte(`{"items":[]}`))

	fetcher, err := New(Config{BaseURL: server.URL}, gate, synth, nil)
	require.NoError(t, err)

	result := fetcher.Fetch(context.Background(), EndpointPredictions)

	assert.Equal(t, models.OriginFallback, result.Origin)
	assert.ErrorIs(t, result.Err, errUpstreamStatus)
	assert.JSONEq(t, `{"items":[]}`, string(result.Data))
}

func TestFetchTimeoutBounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	defer close(release)

	gate := NewMockHealthGate(ctrl)
	gate.EXPECT().State().Return(onlineState())

	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Synthesize(EndpointReadings).Return([]byte(`{"items":[],"total":0}`))

	fetcher, err := New(Config{
		BaseURL: server.URL,
		Timeout: config.Duration(50 * time.Millisecond),
	}, gate, synth, nil)
	require.NoError(t, err)

	start := time.Now()
	result := fetcher.Fetch(context.Background(), EndpointReadings)

	assert.Equal(t, models.OriginFallback, result.Origin)
	assert.Error(t, result.Err)
	assert.Less(t, time.Since(start), 2*time.Second, "fallback must answer within the fetch bound")
}

func TestFetchFailureStreakForcesOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	gate := NewMockHealthGate(ctrl)
	gate.EXPECT().State().Return(onlineState()).Times(3)
	gate.EXPECT().MarkOffline(gomock.Any()).Times(1)

	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Synthesize(EndpointReadings).Return([]byte(`{}`)).Times(3)

	fetcher, err := New(Config{BaseURL: server.URL, FailureLimit: 3}, gate, synth, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		fetcher.Fetch(context.Background(), EndpointReadings)
	}
}

func TestFetchSuccessResetsFailureStreak(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var fail atomic.Bool

	fail.Store(true)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	gate := NewMockHealthGate(ctrl)
	gate.EXPECT().State().Return(onlineState()).AnyTimes()

	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Synthesize(EndpointReadings).Return([]byte(`{}`)).AnyTimes()

	fetcher, err := New(Config{BaseURL: server.URL, FailureLimit: 3}, gate, synth, nil)
	require.NoError(t, err)

	// Two failures, a success, then two more failures: the streak
	// restarts and never reaches the limit, so MarkOffline is not
	// expected on the gate.
	fetcher.Fetch(context.Background(), EndpointReadings)
	fetcher.Fetch(context.Background(), EndpointReadings)

	fail.Store(false)
	fetcher.Fetch(context.Background(), EndpointReadings)

	fail.Store(true)
	fetcher.Fetch(context.Background(), EndpointReadings)
	fetcher.Fetch(context.Background(), EndpointReadings)
}

func TestFetchUnknownEndpoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gate := NewMockHealthGate(ctrl)

	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Synthesize(Endpoint("bogus")).Return([]byte(`{}`))

	fetcher, err := New(Config{BaseURL: "http://127.0.0.1:1"}, gate, synth, nil)
	require.NoError(t, err)

	result := fetcher.Fetch(context.Background(), Endpoint("bogus"))

	assert.Equal(t, models.OriginFallback, result.Origin)
	assert.ErrorIs(t, result.Err, ErrUnknownEndpoint)
}

func TestNewRequiresBaseURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, err := New(Config{}, NewMockHealthGate(ctrl), NewMockSynthesizer(ctrl), nil)
	assert.ErrorIs(t, err, ErrBaseURLRequired)
}

func TestDecodeReadingsTolerance(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 1, 11, 59, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payload string
		want    []models.RawReading
	}{
		{
			name: "full item",
			payload: `{"items":[{"sensor_id":"opcua_vibration","value":3.2,"unit":"mm/s",` +
				`"timestamp":"2026-03-01T11:58:00Z","metadata":{"alias":"vib","slot":4}}]}`,
			want: []models.RawReading{{
				SensorID:  "opcua_vibration",
				Value:     3.2,
				Unit:      "mm/s",
				Timestamp: time.Date(2026, 3, 1, 11, 58, 0, 0, time.UTC),
				Metadata:  map[string]string{"alias": "vib"},
			}},
		},
		{
			name:    "missing value defaults to zero",
			payload: `{"items":[{"sensor_id":"opcua_pressure","created_at":"2026-03-01T11:59:00Z"}]}`,
			want: []models.RawReading{{
				SensorID:  "opcua_pressure",
				Timestamp: created,
			}},
		},
		{
			name:    "missing timestamps fall back to receipt time",
			payload: `{"items":[{"sensor_id":"opcua_temperature","value":55}]}`,
			want: []models.RawReading{{
				SensorID:  "opcua_temperature",
				Value:     55,
				Timestamp: now,
			}},
		},
		{
			name:    "malformed payload decodes to empty",
			payload: `{"items":`,
			want:    nil,
		},
		{
			name:    "empty page",
			payload: `{"items":[],"total":0}`,
			want:    []models.RawReading{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeReadings([]byte(tt.payload), now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePredictionsAliases(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	payload := `{"items":[
		{"timestamp":"2026-03-01T11:58:00Z","score":0.9,"prediction":"bearing_wear","status":"warning"},
		{"created_at":"2026-03-01T11:57:00Z","confidence":0.4}
	]}`

	got := decodePredictions([]byte(payload), now)
	require.Len(t, got, 2)

	assert.Equal(t, 0.9, got[0].Score)
	assert.Equal(t, "bearing_wear", got[0].Prediction)
	assert.Equal(t, models.StatusWarning, got[0].Status)

	assert.Equal(t, 0.4, got[1].Score)
	assert.Equal(t, 0.4, got[1].Confidence)
	assert.Equal(t, models.StatusNormal, got[1].Status)
	assert.Equal(t, string(models.StatusNormal), got[1].Prediction)
	assert.Equal(t, time.Date(2026, 3, 1, 11, 57, 0, 0, time.UTC), got[1].Timestamp)
}

func TestSubsystemStatusAvailable(t *testing.T) {
	connected := true
	disconnected := false

	tests := []struct {
		name   string
		status SubsystemStatus
		want   bool
	}{
		{"connected flag wins", SubsystemStatus{Status: "error", Connected: &connected}, true},
		{"disconnected flag wins", SubsystemStatus{Status: "ok", Connected: &disconnected}, false},
		{"ok status", SubsystemStatus{Status: "ok"}, true},
		{"healthy status", SubsystemStatus{Status: "healthy"}, true},
		{"unknown status", SubsystemStatus{Status: "degraded"}, false},
		{"empty", SubsystemStatus{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.Available())
		})
	}
}
