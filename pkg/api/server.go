// Package api pkg/api/server.go

package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/plantradar/plantradar/pkg/fetch"
	"github.com/plantradar/plantradar/pkg/models"
	"github.com/plantradar/plantradar/pkg/telemetry"
)

// MetricsSource exposes recorded fetch samples per endpoint.
type MetricsSource interface {
	GetSamples(endpoint string) []models.FetchSample
	Endpoints() []string
}

// SnapshotView is the response body for the snapshot endpoint.
type SnapshotView struct {
	Origin    models.Origin   `json:"origin"`
	UpdatedAt time.Time       `json:"updated_at"`
	Readings  models.Snapshot `json:"readings"`
	Overall   models.Status   `json:"overall"`
}

// PredictionsView is the response body for the predictions endpoint.
type PredictionsView struct {
	Origin models.Origin       `json:"origin"`
	Items  []models.Prediction `json:"items"`
}

// APIServer serves the read API over the layer's last published
// state. All state fields are replaced wholesale by the poll loop;
// handlers only ever read under the lock.
type APIServer struct {
	mu          sync.RWMutex
	health      models.HealthState
	snapshot    SnapshotView
	predictions PredictionsView
	derived     *models.DerivedWindow
	subsystems  map[string]fetch.SubsystemStatus
	channels    []telemetry.ChannelConfig
	metrics     MetricsSource
	hub         *Hub
	router      *mux.Router
}

// NewAPIServer creates the server. The metrics source may be nil when
// fetch metrics are disabled.
func NewAPIServer(channels []telemetry.ChannelConfig, metrics MetricsSource) *APIServer {
	s := &APIServer{
		health:     models.HealthState{Status: models.HealthChecking},
		snapshot:   SnapshotView{Readings: models.Snapshot{}, Overall: models.StatusNormal},
		subsystems: make(map[string]fetch.SubsystemStatus),
		channels:   channels,
		metrics:    metrics,
		hub:        NewHub(),
		router:     mux.NewRouter(),
	}
	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	// Add CORS middleware
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	s.router.HandleFunc("/api/health", s.getHealth).Methods("GET")
	s.router.HandleFunc("/api/snapshot", s.getSnapshot).Methods("GET")
	s.router.HandleFunc("/api/channels", s.getChannels).Methods("GET")
	s.router.HandleFunc("/api/predictions", s.getPredictions).Methods("GET")
	s.router.HandleFunc("/api/derived", s.getDerived).Methods("GET")
	s.router.HandleFunc("/api/subsystems", s.getSubsystems).Methods("GET")
	s.router.HandleFunc("/api/metrics", s.getMetrics).Methods("GET")
	s.router.HandleFunc("/api/ws", s.hub.Handle)
}

// Router returns the HTTP handler for embedding in a server.
func (s *APIServer) Router() http.Handler {
	return s.router
}

func (s *APIServer) getHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	health := s.health
	s.mu.RUnlock()

	writeJSON(w, health)
}

func (s *APIServer) getSnapshot(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	view := s.snapshot
	view.Readings = s.snapshot.Readings.Clone()
	s.mu.RUnlock()

	writeJSON(w, view)
}

func (s *APIServer) getChannels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.channels)
}

func (s *APIServer) getPredictions(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	view := s.predictions
	s.mu.RUnlock()

	if view.Items == nil {
		view.Items = []models.Prediction{}
	}

	writeJSON(w, view)
}

func (s *APIServer) getDerived(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	derived := s.derived
	s.mu.RUnlock()

	if derived == nil {
		http.Error(w, "Derived metrics not yet computed", http.StatusNotFound)
		return
	}

	writeJSON(w, derived)
}

func (s *APIServer) getSubsystems(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	subsystems := make(map[string]fetch.SubsystemStatus, len(s.subsystems))
	for name, status := range s.subsystems {
		subsystems[name] = status
	}
	s.mu.RUnlock()

	writeJSON(w, subsystems)
}

func (s *APIServer) getMetrics(w http.ResponseWriter, _ *http.Request) {
	if s.metrics == nil {
		http.Error(w, "Metrics are disabled", http.StatusNotFound)
		return
	}

	samples := make(map[string][]models.FetchSample)
	for _, endpoint := range s.metrics.Endpoints() {
		samples[endpoint] = s.metrics.GetSamples(endpoint)
	}

	writeJSON(w, samples)
}

// UpdateHealth publishes a new health state and pushes it to
// websocket subscribers.
func (s *APIServer) UpdateHealth(state models.HealthState) {
	s.mu.Lock()
	s.health = state
	s.mu.Unlock()

	s.hub.Broadcast("health", state)
}

// UpdateSnapshot publishes a new channel snapshot.
func (s *APIServer) UpdateSnapshot(snapshot models.Snapshot, origin models.Origin) {
	statuses := make([]models.Status, 0, len(snapshot))
	for _, reading := range snapshot {
		statuses = append(statuses, reading.Status)
	}

	view := SnapshotView{
		Origin:    origin,
		UpdatedAt: time.Now(),
		Readings:  snapshot.Clone(),
		Overall:   models.WorstStatus(statuses...),
	}

	s.mu.Lock()
	s.snapshot = view
	s.mu.Unlock()

	s.hub.Broadcast("snapshot", view)
}

// UpdatePredictions publishes the latest prediction batch.
func (s *APIServer) UpdatePredictions(items []models.Prediction, origin models.Origin) {
	view := PredictionsView{Origin: origin, Items: items}

	s.mu.Lock()
	s.predictions = view
	s.mu.Unlock()

	s.hub.Broadcast("predictions", view)
}

// UpdateDerived publishes a freshly computed derived window.
func (s *APIServer) UpdateDerived(window *models.DerivedWindow) {
	s.mu.Lock()
	s.derived = window
	s.mu.Unlock()

	s.hub.Broadcast("derived", window)
}

// UpdateSubsystem publishes the status of one auxiliary subsystem.
func (s *APIServer) UpdateSubsystem(name string, status fetch.SubsystemStatus) {
	s.mu.Lock()
	s.subsystems[name] = status
	s.mu.Unlock()

	s.hub.Broadcast("subsystem", map[string]any{"name": name, "status": status})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
