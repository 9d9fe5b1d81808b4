package probe

import (
	"context"

	"network-quality/internal/models"
)

// MeasureJitter sends sequential single echo requests and reports the spread
// between the fastest and slowest reply. Failed echoes are skipped.
func (p *Prober) MeasureJitter(ctx context.Context) (models.Jitter, error) {
	latencies := make([]float64, 0, p.cfg.JitterCount)

	for i := 0; i < p.cfg.JitterCount; i++ {
		if ctx.Err() != nil {
			break
		}
		if rtt, ok := p.echo(ctx); ok {
			latencies = append(latencies, rtt)
		}
	}

	return models.Jitter{
		Ms:      computeJitter(latencies),
		Samples: len(latencies),
	}, nil
}

// echo sends one echo request bounded by the echo timeout
func (p *Prober) echo(ctx context.Context) (float64, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.EchoTimeout)
	defer cancel()

	output, err := p.run(ctx, "ping", pingArgs(1, p.cfg.EchoTimeout, 0, p.cfg.Target)...)
	if err != nil {
		p.logger.Debug("Echo request failed", "target", p.cfg.Target, "error", err)
		return 0, false
	}

	return parseRTT(string(output))
}

// computeJitter returns max-min of the samples, or 0 with fewer than two
func computeJitter(latencies []float64) float64 {
	if len(latencies) < 2 {
		return 0
	}
	lo, hi := latencies[0], latencies[0]
	for _, l := range latencies[1:] {
		lo = min(lo, l)
		hi = max(hi, l)
	}
	return hi - lo
}
