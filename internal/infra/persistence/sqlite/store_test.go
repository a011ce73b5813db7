package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"instructcore/pkg/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "instructions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSnapshot() domain.Snapshot {
	step := "s1"
	return domain.Snapshot{
		Instruction: &domain.Instruction{Name: "Bench", PreviewImageID: "media/bench.png"},
		Steps: map[string]domain.Step{
			"s1": {ID: "s1", Name: "Cut boards"},
		},
		Substeps: map[string]domain.Substep{
			"u1": {ID: "u1", StepID: &step, RepeatCount: 2, DescriptionIDs: []string{"d1"}},
		},
		SubstepDescriptions: map[string]domain.SubstepDescription{
			"d1": {ID: "d1", SubstepID: "u1", Text: "Measure twice"},
		},
	}
}

func TestLoadBeforeFirstSave(t *testing.T) {
	store := newTestStore(t)
	_, ok, err := store.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("ok must be false on a fresh database")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	if err := store.SaveSnapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, ok, err := store.LoadSnapshot(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if loaded.Instruction == nil || loaded.Instruction.Name != "Bench" {
		t.Fatalf("instruction mismatch: %+v", loaded.Instruction)
	}
	sub := loaded.Substeps["u1"]
	if sub.StepID == nil || *sub.StepID != "s1" || sub.RepeatCount != 2 {
		t.Fatalf("substep mismatch: %+v", sub)
	}
	if loaded.SubstepDescriptions["d1"].Text != "Measure twice" {
		t.Fatalf("description mismatch: %+v", loaded.SubstepDescriptions)
	}
}

func TestSnapshotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persisted.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.SaveSnapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	loaded, ok, err := reopened.LoadSnapshot(ctx)
	if err != nil || !ok {
		t.Fatalf("load after reopen: ok=%v err=%v", ok, err)
	}
	if loaded.Steps["s1"].Name != "Cut boards" {
		t.Fatalf("snapshot lost across reopen: %+v", loaded.Steps)
	}
}

func TestSaveSnapshotOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	if err := store.SaveSnapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	second := sampleSnapshot()
	second.Instruction.Name = "Bench v2"
	delete(second.Substeps, "u1")
	if err := store.SaveSnapshot(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	loaded, _, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Instruction.Name != "Bench v2" {
		t.Fatalf("snapshot not replaced: %+v", loaded.Instruction)
	}
	if len(loaded.Substeps) != 0 {
		t.Fatalf("stale bucket rows must be overwritten: %+v", loaded.Substeps)
	}
}

func TestJournalOrderAndEmptySkip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	if err := store.SaveDelta(ctx, domain.Delta{}); err != nil {
		t.Fatalf("empty delta: %v", err)
	}
	var first, second domain.Delta
	first.Changed.Notes = []domain.Note{{ID: "n1", Text: "one"}}
	second.Deleted.NoteIDs = []string{"n1"}
	if err := store.SaveDelta(ctx, first); err != nil {
		t.Fatalf("first delta: %v", err)
	}
	if err := store.SaveDelta(ctx, second); err != nil {
		t.Fatalf("second delta: %v", err)
	}
	journal, err := store.Journal(ctx)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if len(journal) != 2 {
		t.Fatalf("journal length = %d, want 2", len(journal))
	}
	if len(journal[0].Changed.Notes) != 1 || journal[0].Changed.Notes[0].ID != "n1" {
		t.Fatalf("first delta mismatch: %+v", journal[0])
	}
	if len(journal[1].Deleted.NoteIDs) != 1 {
		t.Fatalf("second delta mismatch: %+v", journal[1])
	}
}

func TestDefaultPath(t *testing.T) {
	store := newTestStore(t)
	if store.Path() == "" {
		t.Fatalf("path must be recorded")
	}
}
