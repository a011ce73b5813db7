// Package postgres provides a PostgreSQL persistence adapter with the same
// bucket layout as the sqlite adapter, using JSONB payloads.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"instructcore/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
)

// Compile-time contract assertion.
var _ domain.PersistentStore = (*Store)(nil)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/instructcore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Store persists snapshots and deltas to PostgreSQL.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore opens a connection using the provided DSN (falls back to
// defaultDSN) and ensures the schema.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS snapshot (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure snapshot table: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS delta_journal (
		id BIGSERIAL PRIMARY KEY,
		payload JSONB NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure journal table: %w", err)
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

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
		if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot(bucket,payload) VALUES($1,$2)
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
	if _, err := s.db.ExecContext(ctx, `INSERT INTO delta_journal(payload,saved_at) VALUES($1,$2)`,
		data, time.Now().UTC()); err != nil {
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

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
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
