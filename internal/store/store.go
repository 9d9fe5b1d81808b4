// Package store holds the most recent measurement snapshot.
package store

import (
	"log/slog"
	"sync"

	"network-quality/internal/models"
)

// Persister saves the latest snapshot outside the process
type Persister interface {
	SaveSnapshot(s models.Snapshot) error
	LoadSnapshot() (models.Snapshot, bool, error)
}

// Store holds the latest snapshot. Readers always see either the previous or
// the new snapshot in full.
type Store struct {
	mu        sync.RWMutex
	current   models.Snapshot
	persister Persister
	logger    *slog.Logger
}

// New creates an empty Store. persister may be nil.
func New(persister Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		persister: persister,
		logger:    logger.With("component", "store"),
	}
}

// Update replaces the held snapshot. Persistence happens after the lock is released.
func (s *Store) Update(snapshot models.Snapshot) {
	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	if s.persister == nil {
		return
	}
	if err := s.persister.SaveSnapshot(snapshot); err != nil {
		s.logger.Error("Failed to persist snapshot", "run_id", snapshot.RunID, "error", err)
	}
}

// Current returns the latest snapshot, or the zero snapshot before the first update
func (s *Store) Current() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Restore loads the last persisted snapshot, if any, into the store.
// It does not overwrite a snapshot that is already held.
func (s *Store) Restore() (bool, error) {
	if s.persister == nil {
		return false, nil
	}

	snapshot, ok, err := s.persister.LoadSnapshot()
	if err != nil || !ok {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.current.IsZero() {
		return false, nil
	}
	s.current = snapshot
	return true, nil
}
