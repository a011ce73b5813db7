// Package memory provides an in-process persistence adapter used by tests and
// ephemeral deployments. Snapshots and deltas are retained in memory only.
package memory

import (
	"context"
	"sync"

	"instructcore/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.PersistentStore = (*Store)(nil)

// Store keeps the latest snapshot plus an append-only delta journal.
type Store struct {
	mu       sync.Mutex
	snapshot domain.Snapshot
	hasState bool
	journal  []domain.Delta
}

// NewStore constructs an empty adapter.
func NewStore() *Store {
	return &Store{}
}

// SaveSnapshot replaces the retained snapshot.
func (s *Store) SaveSnapshot(_ context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.hasState = true
	return nil
}

// SaveDelta appends the delta to the journal. Empty deltas are skipped.
func (s *Store) SaveDelta(_ context.Context, delta domain.Delta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delta.IsEmpty() {
		return nil
	}
	s.journal = append(s.journal, delta)
	return nil
}

// LoadSnapshot returns the retained snapshot, with ok=false before the first
// save.
func (s *Store) LoadSnapshot(_ context.Context) (domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.hasState, nil
}

// Journal returns a copy of the recorded deltas in save order.
func (s *Store) Journal() []domain.Delta {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Delta, len(s.journal))
	copy(out, s.journal)
	return out
}

// Close is a no-op for the in-memory adapter.
func (s *Store) Close() error {
	return nil
}
