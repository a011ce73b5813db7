package core

import "instructcore/pkg/domain"

// resetTracking empties every changed/deleted set and the instruction dirty
// flag. Callers hold the write lock.
func (s *Store) resetTracking() {
	s.changed = make(map[EntityType]map[string]struct{})
	s.deleted = make(map[EntityType]map[string]struct{})
	s.instructionDirty = false
}

// markChanged records id as changed. A previously deleted id that reappears is
// dropped from the deleted set: it exists again. Callers hold the write lock.
func (s *Store) markChanged(entity EntityType, id string) {
	set, ok := s.changed[entity]
	if !ok {
		set = make(map[string]struct{})
		s.changed[entity] = set
	}
	set[id] = struct{}{}
	if del, ok := s.deleted[entity]; ok {
		delete(del, id)
	}
}

// markDeleted records id as deleted and drops it from the changed set. An
// entity created after the current baseline never existed for the persistence
// adapter, so its deletion is suppressed entirely. Callers hold the write lock.
func (s *Store) markDeleted(entity EntityType, id string) {
	if set, ok := s.changed[entity]; ok {
		delete(set, id)
	}
	if !s.baselineHas(entity, id) {
		return
	}
	set, ok := s.deleted[entity]
	if !ok {
		set = make(map[string]struct{})
		s.deleted[entity] = set
	}
	set[id] = struct{}{}
}

func (s *Store) baselineHas(entity EntityType, id string) bool {
	switch entity {
	case EntityAssembly:
		_, ok := s.baseline.assemblies[id]
		return ok
	case EntityStep:
		_, ok := s.baseline.steps[id]
		return ok
	case EntitySubstep:
		_, ok := s.baseline.substeps[id]
		return ok
	case EntityVideo:
		_, ok := s.baseline.videos[id]
		return ok
	case EntityVideoSection:
		_, ok := s.baseline.videoSections[id]
		return ok
	case EntityVideoFrameArea:
		_, ok := s.baseline.videoFrameAreas[id]
		return ok
	case EntityViewportKeyframe:
		_, ok := s.baseline.viewportKeyframes[id]
		return ok
	case EntityPartTool:
		_, ok := s.baseline.partTools[id]
		return ok
	case EntityNote:
		_, ok := s.baseline.notes[id]
		return ok
	case EntitySubstepImage:
		_, ok := s.baseline.substepImages[id]
		return ok
	case EntitySubstepPartTool:
		_, ok := s.baseline.substepPartTools[id]
		return ok
	case EntitySubstepNote:
		_, ok := s.baseline.substepNotes[id]
		return ok
	case EntitySubstepDescription:
		_, ok := s.baseline.substepDescriptions[id]
		return ok
	case EntitySubstepVideoSection:
		_, ok := s.baseline.substepVideoSections[id]
		return ok
	case EntitySubstepTutorial:
		_, ok := s.baseline.substepTutorials[id]
		return ok
	case EntityPartToolFrameArea:
		_, ok := s.baseline.partToolFrameAreas[id]
		return ok
	case EntityDrawing:
		_, ok := s.baseline.drawings[id]
		return ok
	}
	return false
}

// record fires the injected event recorder, if any. Callers hold the write
// lock; the store assumes a single logical caller and a recorder that does not
// re-enter the store.
func (s *Store) record(entity EntityType, id string, action EventAction, row any) {
	if s.recorder == nil {
		return
	}
	payload, err := domain.NewEventPayloadFromValue(row)
	if err != nil {
		payload = domain.UndefinedEventPayload()
	}
	s.recorder(entity, id, action, payload)
}

// SetEventRecorder installs the audit callback, replacing and returning any
// previous one. Only one listener slot exists.
func (s *Store) SetEventRecorder(recorder EventRecorder) EventRecorder {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous := s.recorder
	s.recorder = recorder
	return previous
}

// HasChanges reports whether any changed set, deleted set, or the instruction
// dirty flag is non-empty.
func (s *Store) HasChanges() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.instructionDirty {
		return true
	}
	for _, set := range s.changed {
		if len(set) > 0 {
			return true
		}
	}
	for _, set := range s.deleted {
		if len(set) > 0 {
			return true
		}
	}
	return false
}

// ClearChanges empties all tracking sets and re-captures the baseline as the
// current graph, so subsequent diffs compare against this point.
func (s *Store) ClearChanges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetTracking()
	s.baseline = s.state.clone()
}

// ChangedData assembles the minimal wire-ready delta for persistence: changed
// records grouped by type, deleted ids grouped into id arrays. Returns the
// empty delta when no graph is loaded.
func (s *Store) ChangedData() Delta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return Delta{}
	}
	var delta Delta
	if s.instructionDirty && s.state.instruction != nil {
		instr := *s.state.instruction
		delta.Changed.Instruction = &instr
	}
	for _, id := range sortedIDs(s.changed[EntityAssembly]) {
		if a, ok := s.state.assemblies[id]; ok {
			delta.Changed.Assemblies = append(delta.Changed.Assemblies, cloneAssembly(a))
		}
	}
	for _, id := range sortedIDs(s.changed[EntityStep]) {
		if st, ok := s.state.steps[id]; ok {
			delta.Changed.Steps = append(delta.Changed.Steps, cloneStep(st))
		}
	}
	for _, id := range sortedIDs(s.changed[EntitySubstep]) {
		if sub, ok := s.state.substeps[id]; ok {
			delta.Changed.Substeps = append(delta.Changed.Substeps, cloneSubstep(sub))
		}
	}
	for _, id := range sortedIDs(s.changed[EntityVideo]) {
		if v, ok := s.state.videos[id]; ok {
			delta.Changed.Videos = append(delta.Changed.Videos, cloneVideo(v))
		}
	}
	for _, id := range sortedIDs(s.changed[EntityVideoSection]) {
		if sec, ok := s.state.videoSections[id]; ok {
			delta.Changed.VideoSections = append(delta.Changed.VideoSections, sec)
		}
	}
	for _, id := range sortedIDs(s.changed[EntityVideoFrameArea]) {
		if fa, ok := s.state.videoFrameAreas[id]; ok {
			delta.Changed.VideoFrameAreas = append(delta.Changed.VideoFrameAreas, fa)
		}
	}
	for _, id := range sortedIDs(s.changed[EntityViewportKeyframe]) {
		if kf, ok := s.state.viewportKeyframes[id]; ok {
			delta.Changed.ViewportKeyframes = append(delta.Changed.ViewportKeyframes, kf)
		}
	}
	for _, id := range sortedIDs(s.changed[EntityPartTool]) {
		if pt, ok := s.state.partTools[id]; ok {
			delta.Changed.PartTools = append(delta.Changed.PartTools, pt)
		}
	}
	for _, id := range sortedIDs(s.changed[EntityNote]) {
		if n, ok := s.state.notes[id]; ok {
			delta.Changed.Notes = append(delta.Changed.Notes, n)
		}
	}
	for _, id := range sortedIDs(s.changed[EntitySubstepImage]) {
		if img, ok := s.state.substepImages[id]; ok {
			delta.Changed.SubstepImages = append(delta.Changed.SubstepImages, img)
		}
	}
	for _, id := range sortedIDs(s.changed[EntitySubstepPartTool]) {
		if spt, ok := s.state.substepPartTools[id]; ok {
			delta.Changed.SubstepPartTools = append(delta.Changed.SubstepPartTools, spt)
		}
	}
	for _, id := range sortedIDs(s.changed[EntitySubstepNote]) {
		if sn, ok := s.state.substepNotes[id]; ok {
			delta.Changed.SubstepNotes = append(delta.Changed.SubstepNotes, sn)
		}
	}
	for _, id := range sortedIDs(s.changed[EntitySubstepDescription]) {
		if sd, ok := s.state.substepDescriptions[id]; ok {
			delta.Changed.SubstepDescriptions = append(delta.Changed.SubstepDescriptions, sd)
		}
	}
	for _, id := range sortedIDs(s.changed[EntitySubstepVideoSection]) {
		if svs, ok := s.state.substepVideoSections[id]; ok {
			delta.Changed.SubstepVideoSections = append(delta.Changed.SubstepVideoSections, svs)
		}
	}
	for _, id := range sortedIDs(s.changed[EntitySubstepTutorial]) {
		if tut, ok := s.state.substepTutorials[id]; ok {
			delta.Changed.SubstepTutorials = append(delta.Changed.SubstepTutorials, tut)
		}
	}
	for _, id := range sortedIDs(s.changed[EntityPartToolFrameArea]) {
		if link, ok := s.state.partToolFrameAreas[id]; ok {
			delta.Changed.PartToolFrameAreas = append(delta.Changed.PartToolFrameAreas, link)
		}
	}
	for _, id := range sortedIDs(s.changed[EntityDrawing]) {
		if d, ok := s.state.drawings[id]; ok {
			delta.Changed.Drawings = append(delta.Changed.Drawings, cloneDrawing(d))
		}
	}

	delta.Deleted.AssemblyIDs = sortedIDs(s.deleted[EntityAssembly])
	delta.Deleted.StepIDs = sortedIDs(s.deleted[EntityStep])
	delta.Deleted.SubstepIDs = sortedIDs(s.deleted[EntitySubstep])
	delta.Deleted.VideoIDs = sortedIDs(s.deleted[EntityVideo])
	delta.Deleted.VideoSectionIDs = sortedIDs(s.deleted[EntityVideoSection])
	delta.Deleted.VideoFrameAreaIDs = sortedIDs(s.deleted[EntityVideoFrameArea])
	delta.Deleted.ViewportKeyframeIDs = sortedIDs(s.deleted[EntityViewportKeyframe])
	delta.Deleted.PartToolIDs = sortedIDs(s.deleted[EntityPartTool])
	delta.Deleted.NoteIDs = sortedIDs(s.deleted[EntityNote])
	delta.Deleted.SubstepImageIDs = sortedIDs(s.deleted[EntitySubstepImage])
	delta.Deleted.SubstepPartToolIDs = sortedIDs(s.deleted[EntitySubstepPartTool])
	delta.Deleted.SubstepNoteIDs = sortedIDs(s.deleted[EntitySubstepNote])
	delta.Deleted.SubstepDescriptionIDs = sortedIDs(s.deleted[EntitySubstepDescription])
	delta.Deleted.SubstepVideoSectionIDs = sortedIDs(s.deleted[EntitySubstepVideoSection])
	delta.Deleted.SubstepTutorialIDs = sortedIDs(s.deleted[EntitySubstepTutorial])
	delta.Deleted.PartToolFrameAreaIDs = sortedIDs(s.deleted[EntityPartToolFrameArea])
	delta.Deleted.DrawingIDs = sortedIDs(s.deleted[EntityDrawing])
	return delta
}
