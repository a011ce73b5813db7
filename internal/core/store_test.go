package core

import "testing"

func strPtr(s string) *string { return &s }

// fixtureSnapshot builds a small but fully connected graph: one assembly and
// step chain, a substep carrying one element of every category, a video with
// sections, frame areas and keyframes, shared catalog records, and drawings on
// both anchors.
func fixtureSnapshot() Snapshot {
	return Snapshot{
		Instruction: &Instruction{Name: "Cabinet", Description: "Assembly guide", PreviewImageID: "media/preview.png"},
		Assemblies: map[string]Assembly{
			"asm-1": {ID: "asm-1", Name: "Frame", Order: 0, StepIDs: []string{"step-1"}},
		},
		Steps: map[string]Step{
			"step-1": {ID: "step-1", AssemblyID: strPtr("asm-1"), Name: "Mount panel", Order: 0, SubstepIDs: []string{"sub-1"}},
		},
		Substeps: map[string]Substep{
			"sub-1": {
				ID: "sub-1", StepID: strPtr("step-1"), Order: 0, RepeatCount: 2, RepeatLabel: "per side",
				ImageIDs:        []string{"img-1"},
				VideoSectionIDs: []string{"svs-1"},
				PartToolIDs:     []string{"spt-1"},
				NoteIDs:         []string{"sn-1"},
				DescriptionIDs:  []string{"sd-1"},
				TutorialIDs:     []string{"tut-1"},
			},
		},
		Videos: map[string]Video{
			"vid-1": {
				ID: "vid-1", Name: "Mounting", MediaKey: "media/mounting.mp4", FrameCount: 200,
				SectionIDs:          []string{"sec-1"},
				FrameAreaIDs:        []string{"fa-1"},
				ViewportKeyframeIDs: []string{"kf-0", "kf-50"},
			},
		},
		VideoSections: map[string]VideoSection{
			"sec-1": {ID: "sec-1", VideoID: "vid-1", Name: "Drill", StartFrame: 0, EndFrame: 100},
		},
		VideoFrameAreas: map[string]VideoFrameArea{
			"fa-1": {ID: "fa-1", VideoID: "vid-1", FrameNumber: 30, Crop: CropRect{X: 0.1, Y: 0.1, Width: 0.5, Height: 0.5}},
		},
		ViewportKeyframes: map[string]ViewportKeyframe{
			"kf-0":  {ID: "kf-0", VideoID: "vid-1", FrameNumber: 0, Crop: CropRect{Width: 1, Height: 1}},
			"kf-50": {ID: "kf-50", VideoID: "vid-1", FrameNumber: 50, Crop: CropRect{X: 0.2, Y: 0.2, Width: 0.6, Height: 0.6}},
		},
		PartTools: map[string]PartTool{
			"pt-1": {ID: "pt-1", Name: "M4 screw", Kind: PartToolKindPart, MediaKey: "media/screw.png"},
		},
		Notes: map[string]Note{
			"note-1": {ID: "note-1", Text: "Mind the cable", Category: "warning"},
		},
		SubstepImages: map[string]SubstepImage{
			"img-1": {ID: "img-1", SubstepID: "sub-1", MediaKey: "media/panel.jpg", Caption: "Panel", Order: 0},
		},
		SubstepPartTools: map[string]SubstepPartTool{
			"spt-1": {ID: "spt-1", SubstepID: "sub-1", PartToolID: "pt-1", Amount: 4, Order: 0},
		},
		SubstepNotes: map[string]SubstepNote{
			"sn-1": {ID: "sn-1", SubstepID: "sub-1", NoteID: "note-1", Order: 0},
		},
		SubstepDescriptions: map[string]SubstepDescription{
			"sd-1": {ID: "sd-1", SubstepID: "sub-1", Text: "Align the holes", Order: 0},
		},
		SubstepVideoSections: map[string]SubstepVideoSection{
			"svs-1": {ID: "svs-1", SubstepID: "sub-1", VideoSectionID: "sec-1", Order: 0},
		},
		SubstepTutorials: map[string]SubstepTutorial{
			"tut-1": {ID: "tut-1", SubstepID: "sub-1", Reference: "https://example.com/drilling", Order: 0},
		},
		PartToolFrameAreas: map[string]PartToolFrameArea{
			"link-1": {ID: "link-1", SubstepPartToolID: "spt-1", VideoFrameAreaID: "fa-1"},
		},
		Drawings: map[string]Drawing{
			"draw-1": {ID: "draw-1", SubstepImageID: strPtr("img-1"), Kind: DrawingShapeArrow, Points: []DrawingPoint{{X: 0.1, Y: 0.2}, {X: 0.8, Y: 0.9}}, Color: "#f00"},
			"draw-2": {ID: "draw-2", SubstepID: strPtr("sub-1"), FrameNumber: 40, Kind: DrawingShapeRectangle, Points: []DrawingPoint{{X: 0.3, Y: 0.3}}, Color: "#0f0"},
		},
	}
}

func newLoadedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	store.SetData(fixtureSnapshot())
	if !store.Loaded() {
		t.Fatalf("expected store to be loaded after SetData")
	}
	return store
}

func TestSetDataClearsTracking(t *testing.T) {
	store := newLoadedStore(t)
	if store.HasChanges() {
		t.Fatalf("fresh load must not report changes")
	}
	delta := store.ChangedData()
	if !delta.IsEmpty() {
		t.Fatalf("fresh load must produce empty delta, got %+v", delta)
	}
}

func TestMutationsBeforeLoadAreNoOps(t *testing.T) {
	store := NewStore()
	if got := store.AddStep(Step{Name: "orphan"}); got.ID != "" {
		t.Fatalf("AddStep before load must be a no-op, got %+v", got)
	}
	store.DeleteStep("missing")
	store.UpdateInstructionName("nope")
	if store.HasChanges() {
		t.Fatalf("no-op mutations must not mark changes")
	}
	if !store.ChangedData().IsEmpty() {
		t.Fatalf("unloaded store must return empty delta")
	}
}

func TestExportStateIsDetachedCopy(t *testing.T) {
	store := newLoadedStore(t)
	exported := store.ExportState()
	exported.Steps["step-1"] = Step{ID: "step-1", Name: "tampered"}
	if got, _ := store.FindStep("step-1"); got.Name != "Mount panel" {
		t.Fatalf("mutating exported snapshot leaked into store: %+v", got)
	}
}

func TestAddGeneratesIDWhenMissing(t *testing.T) {
	store := newLoadedStore(t)
	created := store.AddNote(Note{Text: "check torque"})
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if _, ok := store.FindNote(created.ID); !ok {
		t.Fatalf("created note not retrievable")
	}
}

func TestAddDuplicateIDIsNoOp(t *testing.T) {
	store := newLoadedStore(t)
	if got := store.AddAssembly(Assembly{ID: "asm-1", Name: "dupe"}); got.ID != "" {
		t.Fatalf("duplicate add must return zero value, got %+v", got)
	}
	if a, _ := store.FindAssembly("asm-1"); a.Name != "Frame" {
		t.Fatalf("duplicate add must not overwrite, got %+v", a)
	}
}

func TestUpdatePreservesIdentity(t *testing.T) {
	store := newLoadedStore(t)
	store.UpdateAssembly("asm-1", func(a *Assembly) {
		a.ID = "hijack"
		a.Name = "Frame v2"
	})
	if _, ok := store.FindAssembly("hijack"); ok {
		t.Fatalf("mutator must not be able to change the record id")
	}
	if a, _ := store.FindAssembly("asm-1"); a.Name != "Frame v2" {
		t.Fatalf("update not applied: %+v", a)
	}
}

func TestListOrdering(t *testing.T) {
	store := newLoadedStore(t)
	store.AddStep(Step{ID: "step-0", Name: "Prep", Order: -1})
	steps := store.ListSteps()
	if len(steps) != 2 || steps[0].ID != "step-0" || steps[1].ID != "step-1" {
		t.Fatalf("unexpected step ordering: %+v", steps)
	}
}
