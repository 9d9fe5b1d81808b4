package models

import (
	"context"
)

// Prober defines the four independent network probes
type Prober interface {
	Identify(ctx context.Context) (string, error)
	MeasureThroughput(ctx context.Context) (Throughput, error)
	MeasureJitter(ctx context.Context) (Jitter, error)
	MeasurePacketLoss(ctx context.Context) (float64, error)
}

// Runner produces a snapshot from one round of probes
type Runner interface {
	Run(ctx context.Context) Snapshot
}

// SnapshotStore holds the latest snapshot
type SnapshotStore interface {
	Update(s Snapshot)
	Current() Snapshot
}

// Refresher triggers a run and publishes its snapshot
type Refresher interface {
	Refresh(ctx context.Context) Snapshot
}

// Database interface defines operations for snapshot persistence
type Database interface {
	SaveSnapshot(s Snapshot) error
	LoadSnapshot() (Snapshot, bool, error)
	Close() error
}

// Monitor interface defines the monitoring lifecycle
type Monitor interface {
	Start() error
	Stop()
	Wait()
}
