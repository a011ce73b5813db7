package core

import "testing"

func stepChunk(hasMore bool, steps ...Step) StepChunk {
	chunk := StepChunk{HasMore: hasMore}
	chunk.Steps = make(map[string]Step, len(steps))
	for _, st := range steps {
		chunk.Steps[st.ID] = st
	}
	return chunk
}

func TestAppendStepsMergesAdditively(t *testing.T) {
	store := newLoadedStore(t)
	store.SetStepLoadingState(StepLoadingState{TotalSteps: 3, LoadedCount: 1})

	store.AppendSteps(stepChunk(true, Step{ID: "step-2", Name: "Sand edges", Order: 1}))

	if _, ok := store.FindStep("step-2"); !ok {
		t.Fatalf("chunk step not merged")
	}
	if store.HasChanges() {
		t.Fatalf("progressive loading must never mark changes")
	}
	state := store.LoadingState()
	if state.LoadedCount != 2 || !state.IsLoadingMore || state.AllLoaded {
		t.Fatalf("unexpected loading state: %+v", state)
	}
}

func TestAppendStepsNeverReplacesExistingRows(t *testing.T) {
	store := newLoadedStore(t)
	store.UpdateStep("step-1", func(st *Step) { st.Name = "Edited locally" })
	store.AppendSteps(stepChunk(false, Step{ID: "step-1", Name: "Stale server copy"}))
	step, _ := store.FindStep("step-1")
	if step.Name != "Edited locally" {
		t.Fatalf("existing rows must survive chunk merges: %+v", step)
	}
}

func TestAppendStepsFinalChunkCompletesLoading(t *testing.T) {
	store := newLoadedStore(t)
	store.SetStepLoadingState(StepLoadingState{TotalSteps: 2, LoadedCount: 1, IsLoadingMore: true})
	store.AppendSteps(stepChunk(false, Step{ID: "step-2", Order: 1}))
	state := store.LoadingState()
	if !state.AllLoaded || state.IsLoadingMore || state.LoadedCount != 2 {
		t.Fatalf("final chunk must complete loading: %+v", state)
	}
}

func TestAppendStepsMergedRowsDiffClean(t *testing.T) {
	store := newLoadedStore(t)
	store.AppendSteps(stepChunk(false, Step{ID: "step-2", Name: "Late page", Order: 1}))
	// Merged rows land in the baseline too, so only a real edit diffs.
	if !store.ChangedData().IsEmpty() {
		t.Fatalf("merged chunk rows must not appear in the delta")
	}
	store.DeleteStep("step-2")
	delta := store.ChangedData()
	if len(delta.Deleted.StepIDs) != 1 || delta.Deleted.StepIDs[0] != "step-2" {
		t.Fatalf("deleting a merged row is a real deletion: %+v", delta.Deleted.StepIDs)
	}
}

func TestAppendStepsBeforeLoadIsNoOp(t *testing.T) {
	store := NewStore()
	store.AppendSteps(stepChunk(true, Step{ID: "step-1"}))
	if store.Loaded() {
		t.Fatalf("chunks must not implicitly load the store")
	}
	if state := store.LoadingState(); state.LoadedCount != 0 {
		t.Fatalf("loading state must be untouched: %+v", state)
	}
}

func TestAppendStepsCarriesDependentRecords(t *testing.T) {
	store := newLoadedStore(t)
	chunk := stepChunk(false, Step{ID: "step-2", Order: 1, SubstepIDs: []string{"sub-2"}})
	chunk.Substeps = map[string]Substep{
		"sub-2": {ID: "sub-2", StepID: strPtr("step-2"), DescriptionIDs: []string{"sd-2"}},
	}
	chunk.SubstepDescriptions = map[string]SubstepDescription{
		"sd-2": {ID: "sd-2", SubstepID: "sub-2", Text: "From a later page"},
	}
	store.AppendSteps(chunk)
	if _, ok := store.FindSubstep("sub-2"); !ok {
		t.Fatalf("dependent substeps must merge with the chunk")
	}
	if _, ok := store.FindSubstepDescription("sd-2"); !ok {
		t.Fatalf("dependent junction rows must merge with the chunk")
	}
	if store.HasChanges() {
		t.Fatalf("dependent record merges must not mark changes")
	}
}
