// Package core implements the instruction data store: a normalized in-memory
// entity graph with referential integrity maintenance, change tracking, and a
// diff engine that produces wire-ready deltas for persistence adapters.
package core

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"instructcore/pkg/domain"
)

type graphState struct {
	instruction          *Instruction
	assemblies           map[string]Assembly
	steps                map[string]Step
	substeps             map[string]Substep
	videos               map[string]Video
	videoSections        map[string]VideoSection
	videoFrameAreas      map[string]VideoFrameArea
	viewportKeyframes    map[string]ViewportKeyframe
	partTools            map[string]PartTool
	notes                map[string]Note
	substepImages        map[string]SubstepImage
	substepPartTools     map[string]SubstepPartTool
	substepNotes         map[string]SubstepNote
	substepDescriptions  map[string]SubstepDescription
	substepVideoSections map[string]SubstepVideoSection
	substepTutorials     map[string]SubstepTutorial
	partToolFrameAreas   map[string]PartToolFrameArea
	drawings             map[string]Drawing
}

func newGraphState() graphState {
	return graphState{
		assemblies:           make(map[string]Assembly),
		steps:                make(map[string]Step),
		substeps:             make(map[string]Substep),
		videos:               make(map[string]Video),
		videoSections:        make(map[string]VideoSection),
		videoFrameAreas:      make(map[string]VideoFrameArea),
		viewportKeyframes:    make(map[string]ViewportKeyframe),
		partTools:            make(map[string]PartTool),
		notes:                make(map[string]Note),
		substepImages:        make(map[string]SubstepImage),
		substepPartTools:     make(map[string]SubstepPartTool),
		substepNotes:         make(map[string]SubstepNote),
		substepDescriptions:  make(map[string]SubstepDescription),
		substepVideoSections: make(map[string]SubstepVideoSection),
		substepTutorials:     make(map[string]SubstepTutorial),
		partToolFrameAreas:   make(map[string]PartToolFrameArea),
		drawings:             make(map[string]Drawing),
	}
}

func (s graphState) clone() graphState {
	cloned := newGraphState()
	if s.instruction != nil {
		instr := *s.instruction
		cloned.instruction = &instr
	}
	for k, v := range s.assemblies {
		cloned.assemblies[k] = cloneAssembly(v)
	}
	for k, v := range s.steps {
		cloned.steps[k] = cloneStep(v)
	}
	for k, v := range s.substeps {
		cloned.substeps[k] = cloneSubstep(v)
	}
	for k, v := range s.videos {
		cloned.videos[k] = cloneVideo(v)
	}
	for k, v := range s.videoSections {
		cloned.videoSections[k] = v
	}
	for k, v := range s.videoFrameAreas {
		cloned.videoFrameAreas[k] = v
	}
	for k, v := range s.viewportKeyframes {
		cloned.viewportKeyframes[k] = v
	}
	for k, v := range s.partTools {
		cloned.partTools[k] = v
	}
	for k, v := range s.notes {
		cloned.notes[k] = v
	}
	for k, v := range s.substepImages {
		cloned.substepImages[k] = v
	}
	for k, v := range s.substepPartTools {
		cloned.substepPartTools[k] = v
	}
	for k, v := range s.substepNotes {
		cloned.substepNotes[k] = v
	}
	for k, v := range s.substepDescriptions {
		cloned.substepDescriptions[k] = v
	}
	for k, v := range s.substepVideoSections {
		cloned.substepVideoSections[k] = v
	}
	for k, v := range s.substepTutorials {
		cloned.substepTutorials[k] = v
	}
	for k, v := range s.partToolFrameAreas {
		cloned.partToolFrameAreas[k] = v
	}
	for k, v := range s.drawings {
		cloned.drawings[k] = cloneDrawing(v)
	}
	return cloned
}

func cloneAssembly(a Assembly) Assembly {
	cp := a
	cp.StepIDs = append([]string(nil), a.StepIDs...)
	return cp
}

func cloneStep(st Step) Step {
	cp := st
	if st.AssemblyID != nil {
		id := *st.AssemblyID
		cp.AssemblyID = &id
	}
	cp.SubstepIDs = append([]string(nil), st.SubstepIDs...)
	return cp
}

func cloneSubstep(sub Substep) Substep {
	cp := sub
	if sub.StepID != nil {
		id := *sub.StepID
		cp.StepID = &id
	}
	cp.ImageIDs = append([]string(nil), sub.ImageIDs...)
	cp.VideoSectionIDs = append([]string(nil), sub.VideoSectionIDs...)
	cp.PartToolIDs = append([]string(nil), sub.PartToolIDs...)
	cp.NoteIDs = append([]string(nil), sub.NoteIDs...)
	cp.DescriptionIDs = append([]string(nil), sub.DescriptionIDs...)
	cp.TutorialIDs = append([]string(nil), sub.TutorialIDs...)
	return cp
}

func cloneVideo(v Video) Video {
	cp := v
	cp.SectionIDs = append([]string(nil), v.SectionIDs...)
	cp.FrameAreaIDs = append([]string(nil), v.FrameAreaIDs...)
	cp.ViewportKeyframeIDs = append([]string(nil), v.ViewportKeyframeIDs...)
	return cp
}

func cloneDrawing(d Drawing) Drawing {
	cp := d
	if d.SubstepImageID != nil {
		id := *d.SubstepImageID
		cp.SubstepImageID = &id
	}
	if d.SubstepID != nil {
		id := *d.SubstepID
		cp.SubstepID = &id
	}
	cp.Points = append([]domain.DrawingPoint(nil), d.Points...)
	return cp
}

func graphStateFromSnapshot(snapshot Snapshot) graphState {
	state := newGraphState()
	if snapshot.Instruction != nil {
		instr := *snapshot.Instruction
		state.instruction = &instr
	}
	for k, v := range snapshot.Assemblies {
		state.assemblies[k] = cloneAssembly(v)
	}
	for k, v := range snapshot.Steps {
		state.steps[k] = cloneStep(v)
	}
	for k, v := range snapshot.Substeps {
		state.substeps[k] = cloneSubstep(v)
	}
	for k, v := range snapshot.Videos {
		state.videos[k] = cloneVideo(v)
	}
	for k, v := range snapshot.VideoSections {
		state.videoSections[k] = v
	}
	for k, v := range snapshot.VideoFrameAreas {
		state.videoFrameAreas[k] = v
	}
	for k, v := range snapshot.ViewportKeyframes {
		state.viewportKeyframes[k] = v
	}
	for k, v := range snapshot.PartTools {
		state.partTools[k] = v
	}
	for k, v := range snapshot.Notes {
		state.notes[k] = v
	}
	for k, v := range snapshot.SubstepImages {
		state.substepImages[k] = v
	}
	for k, v := range snapshot.SubstepPartTools {
		state.substepPartTools[k] = v
	}
	for k, v := range snapshot.SubstepNotes {
		state.substepNotes[k] = v
	}
	for k, v := range snapshot.SubstepDescriptions {
		state.substepDescriptions[k] = v
	}
	for k, v := range snapshot.SubstepVideoSections {
		state.substepVideoSections[k] = v
	}
	for k, v := range snapshot.SubstepTutorials {
		state.substepTutorials[k] = v
	}
	for k, v := range snapshot.PartToolFrameAreas {
		state.partToolFrameAreas[k] = v
	}
	for k, v := range snapshot.Drawings {
		state.drawings[k] = cloneDrawing(v)
	}
	return state
}

func snapshotFromGraphState(state graphState) Snapshot {
	snapshot := Snapshot{
		Assemblies:           make(map[string]Assembly, len(state.assemblies)),
		Steps:                make(map[string]Step, len(state.steps)),
		Substeps:             make(map[string]Substep, len(state.substeps)),
		Videos:               make(map[string]Video, len(state.videos)),
		VideoSections:        make(map[string]VideoSection, len(state.videoSections)),
		VideoFrameAreas:      make(map[string]VideoFrameArea, len(state.videoFrameAreas)),
		ViewportKeyframes:    make(map[string]ViewportKeyframe, len(state.viewportKeyframes)),
		PartTools:            make(map[string]PartTool, len(state.partTools)),
		Notes:                make(map[string]Note, len(state.notes)),
		SubstepImages:        make(map[string]SubstepImage, len(state.substepImages)),
		SubstepPartTools:     make(map[string]SubstepPartTool, len(state.substepPartTools)),
		SubstepNotes:         make(map[string]SubstepNote, len(state.substepNotes)),
		SubstepDescriptions:  make(map[string]SubstepDescription, len(state.substepDescriptions)),
		SubstepVideoSections: make(map[string]SubstepVideoSection, len(state.substepVideoSections)),
		SubstepTutorials:     make(map[string]SubstepTutorial, len(state.substepTutorials)),
		PartToolFrameAreas:   make(map[string]PartToolFrameArea, len(state.partToolFrameAreas)),
		Drawings:             make(map[string]Drawing, len(state.drawings)),
	}
	if state.instruction != nil {
		instr := *state.instruction
		snapshot.Instruction = &instr
	}
	for k, v := range state.assemblies {
		snapshot.Assemblies[k] = cloneAssembly(v)
	}
	for k, v := range state.steps {
		snapshot.Steps[k] = cloneStep(v)
	}
	for k, v := range state.substeps {
		snapshot.Substeps[k] = cloneSubstep(v)
	}
	for k, v := range state.videos {
		snapshot.Videos[k] = cloneVideo(v)
	}
	for k, v := range state.videoSections {
		snapshot.VideoSections[k] = v
	}
	for k, v := range state.videoFrameAreas {
		snapshot.VideoFrameAreas[k] = v
	}
	for k, v := range state.viewportKeyframes {
		snapshot.ViewportKeyframes[k] = v
	}
	for k, v := range state.partTools {
		snapshot.PartTools[k] = v
	}
	for k, v := range state.notes {
		snapshot.Notes[k] = v
	}
	for k, v := range state.substepImages {
		snapshot.SubstepImages[k] = v
	}
	for k, v := range state.substepPartTools {
		snapshot.SubstepPartTools[k] = v
	}
	for k, v := range state.substepNotes {
		snapshot.SubstepNotes[k] = v
	}
	for k, v := range state.substepDescriptions {
		snapshot.SubstepDescriptions[k] = v
	}
	for k, v := range state.substepVideoSections {
		snapshot.SubstepVideoSections[k] = v
	}
	for k, v := range state.substepTutorials {
		snapshot.SubstepTutorials[k] = v
	}
	for k, v := range state.partToolFrameAreas {
		snapshot.PartToolFrameAreas[k] = v
	}
	for k, v := range state.drawings {
		snapshot.Drawings[k] = cloneDrawing(v)
	}
	return snapshot
}

// Store is the transient working copy of one instruction document. All
// mutations run to completion, graph and tracking sets together, inside a
// single exclusive boundary, so observers see exactly one state per call.
type Store struct {
	mu       sync.RWMutex
	loaded   bool
	state    graphState
	baseline graphState

	changed          map[EntityType]map[string]struct{}
	deleted          map[EntityType]map[string]struct{}
	instructionDirty bool

	recorder    EventRecorder
	stepLoading StepLoadingState
}

// NewStore constructs an empty store. Every mutation is a silent no-op until
// SetData or RestoreData installs a graph.
func NewStore() *Store {
	return &Store{
		state:    newGraphState(),
		baseline: newGraphState(),
		changed:  make(map[EntityType]map[string]struct{}),
		deleted:  make(map[EntityType]map[string]struct{}),
	}
}

func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// SetData replaces the entire graph, clears all change tracking, and captures
// the snapshot as the new baseline for future diffs.
func (s *Store) SetData(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = graphStateFromSnapshot(snapshot)
	s.baseline = s.state.clone()
	s.loaded = true
	s.resetTracking()
}

// Loaded reports whether a graph has been installed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// ExportState clones the current graph for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromGraphState(s.state)
}

// Instruction returns the singleton header, with ok=false when absent.
func (s *Store) Instruction() (Instruction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.instruction == nil {
		return Instruction{}, false
	}
	return *s.state.instruction, true
}
