package monitor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"network-quality/internal/models"
)

// Store is the snapshot store the monitor publishes to
type Store interface {
	models.SnapshotStore
	Restore() (bool, error)
}

// Observer receives every finished snapshot, e.g. the metrics exporter
type Observer interface {
	Observe(s models.Snapshot)
}

var (
	_ models.Monitor   = (*Monitor)(nil)
	_ models.Refresher = (*Monitor)(nil)
)

// Monitor coordinates measurement runs and publishes their snapshots
type Monitor struct {
	runner   models.Runner
	store    Store
	observer Observer
	interval time.Duration
	logger   *slog.Logger
	group    singleflight.Group
	inFlight atomic.Int32
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a new Monitor. observer may be nil; interval 0 disables
// background refreshes.
func New(runner models.Runner, store Store, observer Observer, interval time.Duration, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Monitor{
		runner:   runner,
		store:    store,
		observer: observer,
		interval: interval,
		logger:   logger.With("component", "monitor"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Refresh runs all probes, publishes the snapshot and returns it.
// Concurrent callers share one in-flight run.
func (m *Monitor) Refresh(ctx context.Context) models.Snapshot {
	v, _, shared := m.group.Do("refresh", func() (interface{}, error) {
		m.inFlight.Add(1)
		defer m.inFlight.Add(-1)

		snapshot := m.runner.Run(ctx)
		m.store.Update(snapshot)
		if m.observer != nil {
			m.observer.Observe(snapshot)
		}
		return snapshot, nil
	})

	snapshot := v.(models.Snapshot)
	if shared {
		m.logger.Debug("Refresh joined an in-flight run", "run_id", snapshot.RunID)
	}
	return snapshot
}

// Current returns the latest published snapshot without running probes
func (m *Monitor) Current() models.Snapshot {
	return m.store.Current()
}

// Start restores the last snapshot and begins background refreshes if configured
func (m *Monitor) Start() error {
	m.restore()

	if m.interval <= 0 {
		m.logger.Info("Monitor started, refreshing on demand")
		return nil
	}

	m.wg.Add(1)
	go m.refreshWorker()

	m.logger.Info("Monitor started", "interval", m.interval)
	return nil
}

// Stop gracefully stops the monitor. A run already in progress is not
// interrupted; Wait returns once it has been published.
func (m *Monitor) Stop() {
	m.logger.Info("Stopping monitor...")
	m.cancel()
	if m.inFlight.Load() > 0 {
		m.logger.Info("Waiting for the in-flight run to finish")
	}
}

// Wait blocks until all goroutines finish
func (m *Monitor) Wait() {
	m.wg.Wait()
	m.logger.Info("Monitor stopped")
}
