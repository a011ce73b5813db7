// Package sqlite provides an embedded persistence adapter. The instruction
// snapshot is stored as one JSON payload per entity bucket and every saved
// delta is appended to a journal table.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"instructcore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion.
var _ domain.PersistentStore = (*Store)(nil)

// Store persists snapshots and deltas to a single SQLite file.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database file and ensures the schema.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "instructcore.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshot (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS delta_journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		payload BLOB NOT NULL,
		saved_at TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create journal table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

var snapshotBuckets = []string{
	"instruction",
	"assemblies",
	"steps",
	"substeps",
	"videos",
	"video_sections",
	"video_frame_areas",
	"viewport_keyframes",
	"part_tools",
	"notes",
	"substep_images",
	"substep_part_tools",
	"substep_notes",
	"substep_descriptions",
	"substep_video_sections",
	"substep_tutorials",
	"part_tool_video_frame_areas",
	"drawings",
}

// snapshotTargets maps bucket names to pointers into the snapshot so the same
// table drives both marshal and unmarshal.
func snapshotTargets(s *domain.Snapshot) map[string]any {
	return map[string]any{
		"instruction":                 &s.Instruction,
		"assemblies":                  &s.Assemblies,
		"steps":                       &s.Steps,
		"substeps":                    &s.Substeps,
		"videos":                      &s.Videos,
		"video_sections":              &s.VideoSections,
		"video_frame_areas":           &s.VideoFrameAreas,
		"viewport_keyframes":          &s.ViewportKeyframes,
		"part_tools":                  &s.PartTools,
		"notes":                       &s.Notes,
		"substep_images":              &s.SubstepImages,
		"substep_part_tools":          &s.SubstepPartTools,
		"substep_notes":               &s.SubstepNotes,
		"substep_descriptions":        &s.SubstepDescriptions,
		"substep_video_sections":      &s.SubstepVideoSections,
		"substep_tutorials":           &s.SubstepTutorials,
		"part_tool_video_frame_areas": &s.PartToolFrameAreas,
		"drawings":                    &s.Drawings,
	}
}

// SaveSnapshot replaces the durable copy of the full graph in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, snapshot domain.Snapshot) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	targets := snapshotTargets(&snapshot)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range snapshotBuckets {
		data, err := json.Marshal(targets[bucket])
		if err != nil {
			retErr = fmt.Errorf("encode %s: %w", bucket, err)
			return retErr
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot(bucket,payload) VALUES(?,?)
			ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	retErr = tx.Commit()
	return retErr
}

// SaveDelta appends the delta to the journal. Empty deltas are skipped.
func (s *Store) SaveDelta(ctx context.Context, delta domain.Delta) error {
	if delta.IsEmpty() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("encode delta: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO delta_journal(payload,saved_at) VALUES(?,?)`,
		data, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("append delta: %w", err)
	}
	return nil
}

// LoadSnapshot returns the durable snapshot, with ok=false when the database
// has never been written.
func (s *Store) LoadSnapshot(ctx context.Context) (domain.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM snapshot`)
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("select snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshot domain.Snapshot
	targets := snapshotTargets(&snapshot)
	found := false
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return domain.Snapshot{}, false, fmt.Errorf("scan snapshot: %w", err)
		}
		target, ok := targets[bucket]
		if !ok {
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return domain.Snapshot{}, false, fmt.Errorf("decode %s: %w", bucket, err)
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("iterate snapshot: %w", err)
	}
	return snapshot, found, nil
}

// Journal returns all recorded deltas in save order.
func (s *Store) Journal(ctx context.Context) ([]domain.Delta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM delta_journal ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var journal []domain.Delta
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan journal: %w", err)
		}
		var delta domain.Delta
		if err := json.Unmarshal(payload, &delta); err != nil {
			return nil, fmt.Errorf("decode delta: %w", err)
		}
		journal = append(journal, delta)
	}
	return journal, rows.Err()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
