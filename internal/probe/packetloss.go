package probe

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// lossGrace lets ping print its summary after its own deadline before it is killed
const lossGrace = time.Second

// MeasurePacketLoss sends one batch of echo requests and returns the loss percentage.
// ping itself stops after LossTimeout, so a total outage still yields a summary.
func (p *Prober) MeasurePacketLoss(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, p.cfg.LossTimeout+lossGrace)
	defer cancel()

	output, runErr := p.run(ctx, "ping", pingArgs(p.cfg.LossCount, 0, p.cfg.LossTimeout, p.cfg.Target)...)
	if errors.Is(runErr, ErrTimeout) || errors.Is(runErr, ErrToolUnavailable) {
		return 0, fmt.Errorf("packet loss: %w", runErr)
	}

	// ping exits non-zero when replies are missing but still prints the summary
	loss, err := parsePacketLoss(string(output))
	if err != nil {
		if runErr != nil {
			return 0, fmt.Errorf("packet loss: %w (%v)", err, runErr)
		}
		return 0, fmt.Errorf("packet loss: %w", err)
	}

	return loss, nil
}
