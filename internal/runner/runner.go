// Package runner runs the network probes concurrently and merges their
// results into one snapshot.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"network-quality/internal/models"
	"network-quality/internal/probe"
)

// Timeouts bounds each probe task, measured from the moment the task starts
type Timeouts struct {
	Identity   time.Duration
	Throughput time.Duration
	Jitter     time.Duration
	PacketLoss time.Duration
}

// DefaultTimeouts returns the stock per-probe bounds
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Identity:   3 * time.Second,
		Throughput: 60 * time.Second,
		Jitter:     12 * time.Second,
		PacketLoss: 12 * time.Second,
	}
}

// DefaultWorkers is one worker per probe
const DefaultWorkers = 4

// Runner coordinates one round of probes
type Runner struct {
	prober   models.Prober
	timeouts Timeouts
	workers  int
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// New creates a new Runner. Zero timeouts and workers fall back to defaults.
func New(prober models.Prober, timeouts Timeouts, workers int, logger *slog.Logger) *Runner {
	def := DefaultTimeouts()
	if timeouts.Identity <= 0 {
		timeouts.Identity = def.Identity
	}
	if timeouts.Throughput <= 0 {
		timeouts.Throughput = def.Throughput
	}
	if timeouts.Jitter <= 0 {
		timeouts.Jitter = def.Jitter
	}
	if timeouts.PacketLoss <= 0 {
		timeouts.PacketLoss = def.PacketLoss
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		prober:   prober,
		timeouts: timeouts,
		workers:  workers,
		logger:   logger.With("component", "runner"),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Run executes all probes concurrently and returns once every probe has
// either succeeded or failed. It never fails itself: probe errors, panics and
// timeouts end up as failed fields of the snapshot. Cancelling ctx does not
// abort a run in progress.
func (r *Runner) Run(ctx context.Context) models.Snapshot {
	ctx = context.WithoutCancel(ctx)
	start := r.now()
	runID := r.newID()
	logger := r.logger.With("run_id", runID)

	logger.Debug("Starting probe run", "workers", r.workers)

	var (
		identity   models.Result[string]
		throughput models.Result[models.Throughput]
		jitter     models.Result[models.Jitter]
		loss       models.Result[float64]
	)

	// Each task writes only its own result; Wait orders those writes before the merge.
	var g errgroup.Group
	g.SetLimit(r.workers)
	g.Go(func() error {
		identity = runTask(ctx, logger, "identity", r.timeouts.Identity, r.prober.Identify)
		return nil
	})
	g.Go(func() error {
		throughput = runTask(ctx, logger, "throughput", r.timeouts.Throughput, r.prober.MeasureThroughput)
		return nil
	})
	g.Go(func() error {
		jitter = runTask(ctx, logger, "jitter", r.timeouts.Jitter, r.prober.MeasureJitter)
		return nil
	})
	g.Go(func() error {
		loss = runTask(ctx, logger, "packet_loss", r.timeouts.PacketLoss, r.prober.MeasurePacketLoss)
		return nil
	})
	_ = g.Wait()

	snapshot := merge(identity, throughput, jitter, loss)
	snapshot.RunID = runID
	snapshot.CapturedAt = r.now()
	snapshot.Duration = snapshot.CapturedAt.Sub(start)

	logger.Info("Probe run complete",
		"duration", snapshot.Duration,
		"failed_fields", len(snapshot.Failures()))

	return snapshot
}

type outcome[T any] struct {
	result models.Result[T]
	kind   string
}

// runTask runs one probe under its own deadline. The probe runs in a separate
// goroutine so a probe that ignores its context cannot hold the task past the deadline.
func runTask[T any](ctx context.Context, logger *slog.Logger, name string, timeout time.Duration, fn func(context.Context) (T, error)) models.Result[T] {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan outcome[T], 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome[T]{models.Fail[T](fmt.Sprintf("probe panicked: %v", rec)), "panic"}
			}
		}()

		v, err := fn(ctx)
		if err != nil {
			done <- outcome[T]{models.Fail[T](err.Error()), probe.Kind(err)}
			return
		}
		done <- outcome[T]{models.Ok(v), probe.Kind(nil)}
	}()

	var out outcome[T]
	select {
	case out = <-done:
	case <-ctx.Done():
		out = outcome[T]{models.Fail[T](fmt.Sprintf("timeout after %s", timeout)), probe.Kind(probe.ErrTimeout)}
	}

	if out.result.Failed {
		logger.Warn("Probe failed", "probe", name, "kind", out.kind, "elapsed", time.Since(start), "reason", out.result.Reason)
	} else {
		logger.Debug("Probe succeeded", "probe", name, "elapsed", time.Since(start))
	}

	return out.result
}

// merge maps probe results onto snapshot fields. The three throughput fields
// come from one session and fail together.
func merge(identity models.Result[string], throughput models.Result[models.Throughput], jitter models.Result[models.Jitter], loss models.Result[float64]) models.Snapshot {
	s := models.Snapshot{
		NetworkName:       identity,
		PacketLossPercent: loss,
	}

	if throughput.Failed {
		s.DownloadMbps = models.Fail[float64](throughput.Reason)
		s.UploadMbps = models.Fail[float64](throughput.Reason)
		s.LatencyMs = models.Fail[float64](throughput.Reason)
	} else {
		s.DownloadMbps = models.Ok(throughput.Value.DownloadMbps)
		s.UploadMbps = models.Ok(throughput.Value.UploadMbps)
		s.LatencyMs = models.Ok(throughput.Value.LatencyMs)
		s.SpeedTestServer = throughput.Value.Server
	}

	if jitter.Failed {
		s.JitterMs = models.Fail[float64](jitter.Reason)
	} else {
		s.JitterMs = models.Ok(jitter.Value.Ms)
		s.JitterSamples = jitter.Value.Samples
	}

	return s
}
