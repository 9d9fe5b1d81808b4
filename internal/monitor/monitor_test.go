package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"network-quality/internal/models"
	"network-quality/internal/store"
)

type fakeRunner struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (f *fakeRunner) Run(ctx context.Context) models.Snapshot {
	n := f.calls.Add(1)
	if f.started != nil {
		select {
		case f.started <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		<-f.release
	}
	return models.Snapshot{
		RunID:             fmt.Sprintf("run-%d", n),
		NetworkName:       models.Ok("home"),
		DownloadMbps:      models.Ok(100.0),
		UploadMbps:        models.Ok(20.0),
		LatencyMs:         models.Ok(15.0),
		JitterMs:          models.Ok(2.0),
		JitterSamples:     5,
		PacketLossPercent: models.Ok(0.0),
		CapturedAt:        time.Now(),
	}
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []string
}

func (o *recordingObserver) Observe(s models.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = append(o.seen, s.RunID)
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.seen)
}

type memoryPersister struct {
	saved   models.Snapshot
	has     bool
	loadErr error
}

func (p *memoryPersister) SaveSnapshot(s models.Snapshot) error {
	p.saved, p.has = s, true
	return nil
}

func (p *memoryPersister) LoadSnapshot() (models.Snapshot, bool, error) {
	return p.saved, p.has, p.loadErr
}

func TestRefreshPublishes(t *testing.T) {
	runner := &fakeRunner{}
	st := store.New(nil, nil)
	obs := &recordingObserver{}
	m := New(runner, st, obs, 0, nil)

	got := m.Refresh(context.Background())

	if got.RunID != "run-1" {
		t.Errorf("Refresh() RunID = %q, want run-1", got.RunID)
	}
	if cur := m.Current(); cur.RunID != got.RunID {
		t.Errorf("Current() RunID = %q, want %q", cur.RunID, got.RunID)
	}
	if obs.count() != 1 {
		t.Errorf("observer saw %d snapshots, want 1", obs.count())
	}
}

func TestRefreshNilObserver(t *testing.T) {
	m := New(&fakeRunner{}, store.New(nil, nil), nil, 0, nil)
	if got := m.Refresh(context.Background()); got.IsZero() {
		t.Error("Refresh() returned zero snapshot")
	}
}

func TestRefreshCoalescesConcurrentCallers(t *testing.T) {
	runner := &fakeRunner{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	m := New(runner, store.New(nil, nil), nil, 0, nil)

	const callers = 5
	results := make(chan models.Snapshot, callers)

	go func() { results <- m.Refresh(context.Background()) }()
	<-runner.started

	for i := 1; i < callers; i++ {
		go func() { results <- m.Refresh(context.Background()) }()
	}
	time.Sleep(100 * time.Millisecond)
	close(runner.release)

	for i := 0; i < callers; i++ {
		if s := <-results; s.RunID != "run-1" {
			t.Errorf("caller %d got RunID %q, want shared run-1", i, s.RunID)
		}
	}
	if calls := runner.calls.Load(); calls != 1 {
		t.Errorf("runner called %d times, want 1", calls)
	}

	// A later refresh starts a fresh run
	if s := m.Refresh(context.Background()); s.RunID != "run-2" {
		t.Errorf("next Refresh() RunID = %q, want run-2", s.RunID)
	}
}

func TestStartOnDemand(t *testing.T) {
	runner := &fakeRunner{}
	m := New(runner, store.New(nil, nil), nil, 0, nil)

	if err := m.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	m.Stop()
	m.Wait()

	if calls := runner.calls.Load(); calls != 0 {
		t.Errorf("runner called %d times without an interval, want 0", calls)
	}
}

func TestStartPeriodic(t *testing.T) {
	runner := &fakeRunner{}
	obs := &recordingObserver{}
	m := New(runner, store.New(nil, nil), obs, 20*time.Millisecond, nil)

	if err := m.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for runner.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	m.Stop()
	m.Wait()

	if calls := runner.calls.Load(); calls < 3 {
		t.Fatalf("runner called %d times, want at least 3", calls)
	}
	after := runner.calls.Load()
	time.Sleep(60 * time.Millisecond)
	if runner.calls.Load() != after {
		t.Error("runner still called after Stop()")
	}
	if m.Current().IsZero() {
		t.Error("store not updated by background refresh")
	}
}

func TestStartRestores(t *testing.T) {
	persisted := models.Snapshot{
		RunID:      "persisted",
		CapturedAt: time.Now().Add(-time.Hour),
	}

	tests := []struct {
		name      string
		persister *memoryPersister
		wantRunID string
	}{
		{"restores last snapshot", &memoryPersister{saved: persisted, has: true}, "persisted"},
		{"nothing persisted", &memoryPersister{}, ""},
		{"load error is not fatal", &memoryPersister{loadErr: errors.New("disk gone")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(&fakeRunner{}, store.New(tt.persister, nil), nil, 0, nil)
			if err := m.Start(); err != nil {
				t.Fatalf("Start() error = %v", err)
			}
			defer func() {
				m.Stop()
				m.Wait()
			}()

			if got := m.Current().RunID; got != tt.wantRunID {
				t.Errorf("Current().RunID = %q, want %q", got, tt.wantRunID)
			}
		})
	}
}

func TestStopDrainsInFlightRun(t *testing.T) {
	runner := &fakeRunner{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	m := New(runner, store.New(nil, nil), nil, time.Hour, nil)

	if err := m.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-runner.started

	m.Stop()
	if got := m.inFlight.Load(); got != 1 {
		t.Errorf("inFlight = %d after Stop(), want the running refresh counted", got)
	}

	waited := make(chan struct{})
	go func() {
		m.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		t.Fatal("Wait() returned before the in-flight run finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(runner.release)
	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not return after the run finished")
	}

	if m.Current().RunID != "run-1" {
		t.Errorf("drained run was not published: %q", m.Current().RunID)
	}
	if got := m.inFlight.Load(); got != 0 {
		t.Errorf("inFlight = %d after Wait(), want 0", got)
	}
}
