package monitor

// restore loads the last persisted snapshot so readers have data before the first run
func (m *Monitor) restore() {
	ok, err := m.store.Restore()
	if err != nil {
		m.logger.Warn("Failed to restore last snapshot", "error", err)
		return
	}
	if ok {
		current := m.store.Current()
		m.logger.Info("Restored last snapshot", "run_id", current.RunID, "captured_at", current.CapturedAt)
	}
}
