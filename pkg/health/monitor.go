// Package health pkg/health/monitor.go
package health

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/plantradar/plantradar/pkg/models"
)

const (
	defaultInterval   = 30 * time.Second
	defaultProbeFloor = 2 * time.Second
)

// Monitor owns the tri-state health signal for the upstream data
// source and its auxiliary services. State transitions happen only on
// probe completion or explicit invalidation, and every transition is
// committed as one atomic write under the lock.
type Monitor struct {
	mu       sync.RWMutex
	state    models.HealthState
	checkers map[string]Checker
	primary  string
	interval time.Duration
	floor    time.Duration
	probing  bool
	lastRun  time.Time
	subs     []chan models.HealthState
	done     chan struct{}
}

// NewMonitor creates a monitor over the given named checkers. The
// primary dependency decides the overall state: if it is unreachable
// the state is offline regardless of auxiliary results.
func NewMonitor(primary string, checkers map[string]Checker, interval time.Duration) (*Monitor, error) {
	if len(checkers) == 0 {
		return nil, ErrNoCheckers
	}

	if _, ok := checkers[primary]; !ok {
		return nil, ErrUnknownPrimary
	}

	if interval <= 0 {
		interval = defaultInterval
	}

	return &Monitor{
		state:    models.HealthState{Status: models.HealthChecking},
		checkers: checkers,
		primary:  primary,
		interval: interval,
		floor:    defaultProbeFloor,
		done:     make(chan struct{}),
	}, nil
}

// State returns the latest committed state. Readers never observe a
// partially written transition.
func (m *Monitor) State() models.HealthState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

// Probe runs one probe cycle. Concurrent callers share a single
// in-flight probe: while one is running, or within the minimum
// inter-probe floor, callers get the current state back instead of
// triggering a duplicate probe.
func (m *Monitor) Probe(ctx context.Context) models.HealthState {
	m.mu.Lock()
	if m.probing || time.Since(m.lastRun) < m.floor {
		state := m.state
		m.mu.Unlock()

		return state
	}

	m.probing = true
	m.lastRun = time.Now()
	m.mu.Unlock()

	deps := m.checkAll(ctx)

	status := models.HealthOffline
	for _, dep := range deps {
		if dep.Name == m.primary && dep.Available {
			status = models.HealthOnline
			break
		}
	}

	return m.commit(models.HealthState{
		Status:        status,
		LastCheckedAt: time.Now(),
		Dependencies:  deps,
	})
}

func (m *Monitor) checkAll(ctx context.Context) []models.DependencyStatus {
	names := make([]string, 0, len(m.checkers))
	for name := range m.checkers {
		names = append(names, name)
	}

	sort.Strings(names)

	deps := make([]models.DependencyStatus, 0, len(names))

	for _, name := range names {
		available, message := m.checkers[name].Check(ctx)
		deps = append(deps, models.DependencyStatus{
			Name:      name,
			Available: available,
			Message:   message,
		})
	}

	return deps
}

// MarkOffline forces the state to offline without waiting for the
// next probe cycle. The resilient fetcher calls this after a run of
// consecutive live-call failures so subsequent calls fail fast.
func (m *Monitor) MarkOffline(reason string) {
	log.Printf("Health monitor forced offline: %s", reason)

	m.commit(models.HealthState{
		Status:        models.HealthOffline,
		LastCheckedAt: time.Now(),
		Dependencies: []models.DependencyStatus{
			{Name: m.primary, Available: false, Message: reason},
		},
	})
}

// Invalidate returns the state to checking; the next probe cycle
// resolves it to online or offline again.
func (m *Monitor) Invalidate() {
	m.commit(models.HealthState{
		Status:        models.HealthChecking,
		LastCheckedAt: time.Now(),
	})
}

// Subscribe returns a channel that receives each committed state.
// Delivery is best effort; a slow consumer misses intermediate states
// rather than blocking the monitor.
func (m *Monitor) Subscribe() <-chan models.HealthState {
	ch := make(chan models.HealthState, 1)

	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()

	return ch
}

func (m *Monitor) commit(state models.HealthState) models.HealthState {
	m.mu.Lock()

	m.state = state
	m.probing = false

	for _, sub := range m.subs {
		select {
		case sub <- state:
		default:
		}
	}

	m.mu.Unlock()

	return state
}

// Start runs the periodic probe loop until the context is canceled or
// Stop is called. The first probe runs immediately.
func (m *Monitor) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	log.Printf("Starting health monitor with interval %v", m.interval)

	m.Probe(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return nil
		case <-ticker.C:
			state := m.Probe(ctx)
			if state.Status != models.HealthOnline {
				log.Printf("Health probe: data source %s", state.Status)
			}
		}
	}
}

// Stop halts the probe loop.
func (m *Monitor) Stop(_ context.Context) error {
	close(m.done)
	return nil
}
