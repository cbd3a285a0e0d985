// Package fetch pkg/fetch/fetcher.go provides health-gated access to
// the upstream data source with automatic fallback substitution.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/plantradar/plantradar/pkg/config"
	"github.com/plantradar/plantradar/pkg/metrics"
	"github.com/plantradar/plantradar/pkg/models"
)

const (
	defaultFetchTimeout = 5 * time.Second
	defaultFailureLimit = 3
	maxResponseBytes    = 4 << 20
)

// Config holds the upstream location and fetch tuning.
type Config struct {
	BaseURL      string              `json:"base_url"`
	Paths        map[Endpoint]string `json:"paths,omitempty"`
	Timeout      config.Duration     `json:"timeout,omitempty"`
	FailureLimit int                 `json:"failure_limit,omitempty"`
}

// Result is the outcome of a fetch. Data is always usable: on any
// upstream problem it holds synthesized fallback content and Origin
// says so. Err records the underlying cause for logging only.
type Result struct {
	Endpoint Endpoint        `json:"endpoint"`
	Origin   models.Origin   `json:"origin"`
	Data     json.RawMessage `json:"data"`
	Err      error           `json:"-"`
	Elapsed  time.Duration   `json:"elapsed"`
}

// Fetcher retrieves endpoint data from the upstream source. It never
// surfaces an error to callers; failures degrade to fallback data.
type Fetcher struct {
	baseURL      string
	paths        map[Endpoint]string
	client       *http.Client
	health       HealthGate
	fallback     Synthesizer
	recorder     metrics.Recorder
	failureLimit int32
	failures     atomic.Int32
}

// New creates a fetcher. The recorder may be nil when fetch metrics
// are disabled.
func New(cfg Config, gate HealthGate, fallback Synthesizer, recorder metrics.Recorder) (*Fetcher, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	timeout := time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	limit := cfg.FailureLimit
	if limit <= 0 {
		limit = defaultFailureLimit
	}

	paths := DefaultPaths()
	for endpoint, path := range cfg.Paths {
		paths[endpoint] = path
	}

	return &Fetcher{
		baseURL:      cfg.BaseURL,
		paths:        paths,
		client:       &http.Client{Timeout: timeout},
		health:       gate,
		fallback:     fallback,
		recorder:     recorder,
		failureLimit: int32(limit),
	}, nil
}

// Fetch retrieves one endpoint. When the source is marked offline no
// network attempt is made at all; the fallback answers immediately.
func (f *Fetcher) Fetch(ctx context.Context, endpoint Endpoint) *Result {
	start := time.Now()

	path, ok := f.paths[endpoint]
	if !ok {
		return f.degrade(endpoint, start, fmt.Errorf("%s: %w", endpoint, ErrUnknownEndpoint))
	}

	if f.health.State().Status == models.HealthOffline {
		return f.degrade(endpoint, start, errSourceOffline)
	}

	data, err := f.get(ctx, f.baseURL+path)
	if err != nil {
		f.noteFailure(endpoint, err)
		return f.degrade(endpoint, start, err)
	}

	f.failures.Store(0)

	result := &Result{
		Endpoint: endpoint,
		Origin:   models.OriginLive,
		Data:     data,
		Elapsed:  time.Since(start),
	}

	f.record(result)

	return result
}

// Readings fetches and decodes the recent readings endpoint.
func (f *Fetcher) Readings(ctx context.Context) ([]models.RawReading, models.Origin) {
	result := f.Fetch(ctx, EndpointReadings)
	return decodeReadings(result.Data, time.Now()), result.Origin
}

// Predictions fetches and decodes the recent predictions endpoint.
func (f *Fetcher) Predictions(ctx context.Context) ([]models.Prediction, models.Origin) {
	result := f.Fetch(ctx, EndpointPredictions)
	return decodePredictions(result.Data, time.Now()), result.Origin
}

// Status fetches a subsystem status endpoint (AI or broker).
func (f *Fetcher) Status(ctx context.Context, endpoint Endpoint) (SubsystemStatus, models.Origin) {
	result := f.Fetch(ctx, endpoint)

	var status SubsystemStatus
	if err := json.Unmarshal(result.Data, &status); err != nil {
		log.Printf("Malformed %s payload, treating as unavailable: %v", endpoint, err)
		return SubsystemStatus{Status: "unknown"}, result.Origin
	}

	return status, result.Origin
}

func (f *Fetcher) get(ctx context.Context, url string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Error closing response body: %v", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s returned %d: %w", url, resp.StatusCode, errUpstreamStatus)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	return data, nil
}

// noteFailure counts consecutive failures; at the limit the source is
// forced offline so subsequent polls stop hammering it.
func (f *Fetcher) noteFailure(endpoint Endpoint, err error) {
	count := f.failures.Add(1)
	log.Printf("Fetch failed for %s (%d consecutive): %v", endpoint, count, err)

	if count >= f.failureLimit {
		f.failures.Store(0)
		f.health.MarkOffline(fmt.Sprintf("%d consecutive fetch failures, last: %v", count, err))
	}
}

func (f *Fetcher) degrade(endpoint Endpoint, start time.Time, cause error) *Result {
	result := &Result{
		Endpoint: endpoint,
		Origin:   models.OriginFallback,
		Data:     f.fallback.Synthesize(endpoint),
		Err:      cause,
		Elapsed:  time.Since(start),
	}

	f.record(result)

	return result
}

func (f *Fetcher) record(r *Result) {
	if f.recorder == nil {
		return
	}

	f.recorder.Record(string(r.Endpoint), time.Now(), r.Elapsed.Nanoseconds(), r.Origin)
}
