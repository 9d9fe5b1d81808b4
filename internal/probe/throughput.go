package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"network-quality/internal/models"
)

// SpeedTester selects a speed test endpoint
type SpeedTester interface {
	BestServer(ctx context.Context) (SpeedServer, error)
}

// SpeedServer is one speed test endpoint. Rates are in bytes per second.
type SpeedServer interface {
	Name() string
	Ping(ctx context.Context) (time.Duration, error)
	Download(ctx context.Context) (float64, error)
	Upload(ctx context.Context) (float64, error)
}

// MeasureThroughput runs one speed test session against the best available server.
// All values come from the same session, so any step failing fails the whole measurement.
func (p *Prober) MeasureThroughput(ctx context.Context) (models.Throughput, error) {
	if p.speed == nil {
		return models.Throughput{}, fmt.Errorf("%w: no speed test client configured", ErrToolUnavailable)
	}

	server, err := p.speed.BestServer(ctx)
	if err != nil {
		return models.Throughput{}, transferError(ctx, "server selection", err)
	}

	latency, err := server.Ping(ctx)
	if err != nil {
		return models.Throughput{}, transferError(ctx, "latency test", err)
	}

	down, err := server.Download(ctx)
	if err != nil {
		return models.Throughput{}, transferError(ctx, "download", err)
	}

	up, err := server.Upload(ctx)
	if err != nil {
		return models.Throughput{}, transferError(ctx, "upload", err)
	}

	p.logger.Debug("Speed test finished", "server", server.Name(), "download_bps", down, "upload_bps", up, "latency", latency)

	return models.Throughput{
		DownloadMbps: bytesToMbps(down),
		UploadMbps:   bytesToMbps(up),
		LatencyMs:    float64(latency) / float64(time.Millisecond),
		Server:       server.Name(),
	}, nil
}

func transferError(ctx context.Context, step string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: speed test %s: %v", ErrTimeout, step, err)
	}
	return fmt.Errorf("%w: speed test %s: %v", ErrTransfer, step, err)
}

// bytesToMbps converts bytes/sec to megabits/sec
func bytesToMbps(bps float64) float64 {
	return bps * 8 / 1_000_000
}
