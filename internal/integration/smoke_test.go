// Package integration wires the transient store, the sqlite persistence
// adapter, and the blob backends together the way a deployment does.
package integration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"instructcore/internal/blob"
	"instructcore/internal/core"
	"instructcore/internal/infra/persistence/sqlite"
	"instructcore/pkg/domain"
)

func seedSnapshot() domain.Snapshot {
	asm := "asm-1"
	step := "step-1"
	return domain.Snapshot{
		Instruction: &domain.Instruction{Name: "Workbench", PreviewImageID: "media/preview.png"},
		Assemblies: map[string]domain.Assembly{
			"asm-1": {ID: "asm-1", Name: "Top", StepIDs: []string{"step-1"}},
		},
		Steps: map[string]domain.Step{
			"step-1": {ID: "step-1", AssemblyID: &asm, Name: "Glue boards", SubstepIDs: []string{"sub-1"}},
		},
		Substeps: map[string]domain.Substep{
			"sub-1": {ID: "sub-1", StepID: &step, ImageIDs: []string{"img-1"}},
		},
		SubstepImages: map[string]domain.SubstepImage{
			"img-1": {ID: "img-1", SubstepID: "sub-1", MediaKey: "media/glue.jpg"},
		},
	}
}

func TestEditSaveReloadCycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "smoke.db")

	persistent, err := sqlite.NewStore(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	store := core.NewStore()
	svc := core.NewService(store, persistent)

	store.SetData(seedSnapshot())
	store.UpdateInstructionName("Workbench Deluxe")
	created := store.AddStep(domain.Step{Name: "Clamp overnight", Order: 1})
	store.DeleteSubstepImage("img-1")
	if err := svc.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	journal, err := persistent.Journal(ctx)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if len(journal) != 1 {
		t.Fatalf("expected one delta, got %d", len(journal))
	}
	if len(journal[0].Deleted.SubstepImageIDs) != 1 || journal[0].Deleted.SubstepImageIDs[0] != "img-1" {
		t.Fatalf("delta missing the image deletion: %+v", journal[0].Deleted)
	}
	if err := persistent.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := sqlite.NewStore(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	freshStore := core.NewStore()
	freshSvc := core.NewService(freshStore, reopened)
	if err := freshSvc.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if instr, _ := freshStore.Instruction(); instr.Name != "Workbench Deluxe" {
		t.Fatalf("instruction edit lost across restart: %+v", instr)
	}
	if _, ok := freshStore.FindStep(created.ID); !ok {
		t.Fatalf("added step lost across restart")
	}
	if _, ok := freshStore.FindSubstepImage("img-1"); ok {
		t.Fatalf("deleted image resurrected across restart")
	}
	if freshStore.HasChanges() {
		t.Fatalf("freshly loaded store must be clean")
	}
}

func TestPruneAfterMediaDetach(t *testing.T) {
	ctx := context.Background()
	persistent, err := sqlite.NewStore(filepath.Join(t.TempDir(), "prune.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer func() { _ = persistent.Close() }()

	blobs := blob.NewMemory()
	for _, key := range []string{"media/preview.png", "media/glue.jpg"} {
		if _, err := blobs.Put(ctx, key, strings.NewReader("x"), ""); err != nil {
			t.Fatalf("seed blob %s: %v", key, err)
		}
	}

	store := core.NewStore()
	svc := core.NewService(store, persistent, core.WithBlobStore(blobs))
	store.SetData(seedSnapshot())

	// Detaching the image frees its blob on the next prune.
	store.DeleteSubstepImage("img-1")
	removed, err := svc.PruneMedia(ctx)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, err := blobs.Head(ctx, "media/preview.png"); err != nil {
		t.Fatalf("referenced preview must survive: %v", err)
	}
	if _, err := blobs.Head(ctx, "media/glue.jpg"); err == nil {
		t.Fatalf("detached media must be pruned")
	}
}
