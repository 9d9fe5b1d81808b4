package monitor

import (
	"time"
)

// refreshWorker refreshes the snapshot at the configured interval
func (m *Monitor) refreshWorker() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// Immediate first run
	m.Refresh(m.ctx)

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(m.ctx)
		}
	}
}
