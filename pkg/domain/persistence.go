package domain

import "context"

// PersistentStore is implemented by persistence adapters that durably record
// the instruction graph. The in-memory store never performs I/O itself; a
// service layer reads the store's delta and snapshot and hands them here.
type PersistentStore interface {
	// SaveSnapshot replaces the durable copy of the full graph.
	SaveSnapshot(ctx context.Context, snapshot Snapshot) error
	// SaveDelta appends a wire-format delta to the adapter's journal.
	SaveDelta(ctx context.Context, delta Delta) error
	// LoadSnapshot returns the durable copy, with ok=false when none exists.
	LoadSnapshot(ctx context.Context) (Snapshot, bool, error)
	// Close releases underlying resources.
	Close() error
}
