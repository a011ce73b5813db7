package core

// RestoreData replaces the working graph with an externally produced snapshot
// (undo/redo, server refresh) and rebuilds the change tracking sets by diffing
// the snapshot against the persisted baseline. The baseline itself is left
// untouched, so a later ClearChanges still captures exactly what diverged from
// the last save. With no prior graph the baseline is empty and everything in
// the snapshot comes out changed.
func (s *Store) RestoreData(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetTracking()
	incoming := graphStateFromSnapshot(snapshot)

	if incoming.instruction != nil {
		if s.baseline.instruction == nil || *s.baseline.instruction != *incoming.instruction {
			s.instructionDirty = true
		}
	} else if s.baseline.instruction != nil {
		// A snapshot without a header drops the baseline's header; that is a
		// divergence the next save must persist.
		s.instructionDirty = true
	}

	for id, row := range incoming.assemblies {
		if prev, ok := s.baseline.assemblies[id]; !ok || !assemblyEqual(prev, row) {
			s.markChanged(EntityAssembly, id)
		}
	}
	for id := range s.baseline.assemblies {
		if _, ok := incoming.assemblies[id]; !ok {
			s.markDeleted(EntityAssembly, id)
		}
	}

	for id, row := range incoming.steps {
		if prev, ok := s.baseline.steps[id]; !ok || !stepEqual(prev, row) {
			s.markChanged(EntityStep, id)
		}
	}
	for id := range s.baseline.steps {
		if _, ok := incoming.steps[id]; !ok {
			s.markDeleted(EntityStep, id)
		}
	}

	for id, row := range incoming.substeps {
		if prev, ok := s.baseline.substeps[id]; !ok || !substepEqual(prev, row) {
			s.markChanged(EntitySubstep, id)
		}
	}
	for id := range s.baseline.substeps {
		if _, ok := incoming.substeps[id]; !ok {
			s.markDeleted(EntitySubstep, id)
		}
	}

	for id, row := range incoming.videos {
		if prev, ok := s.baseline.videos[id]; !ok || !videoEqual(prev, row) {
			s.markChanged(EntityVideo, id)
		}
	}
	for id := range s.baseline.videos {
		if _, ok := incoming.videos[id]; !ok {
			s.markDeleted(EntityVideo, id)
		}
	}

	for id, row := range incoming.videoSections {
		if prev, ok := s.baseline.videoSections[id]; !ok || prev != row {
			s.markChanged(EntityVideoSection, id)
		}
	}
	for id := range s.baseline.videoSections {
		if _, ok := incoming.videoSections[id]; !ok {
			s.markDeleted(EntityVideoSection, id)
		}
	}

	for id, row := range incoming.videoFrameAreas {
		if prev, ok := s.baseline.videoFrameAreas[id]; !ok || prev != row {
			s.markChanged(EntityVideoFrameArea, id)
		}
	}
	for id := range s.baseline.videoFrameAreas {
		if _, ok := incoming.videoFrameAreas[id]; !ok {
			s.markDeleted(EntityVideoFrameArea, id)
		}
	}

	for id, row := range incoming.viewportKeyframes {
		if prev, ok := s.baseline.viewportKeyframes[id]; !ok || prev != row {
			s.markChanged(EntityViewportKeyframe, id)
		}
	}
	for id := range s.baseline.viewportKeyframes {
		if _, ok := incoming.viewportKeyframes[id]; !ok {
			s.markDeleted(EntityViewportKeyframe, id)
		}
	}

	for id, row := range incoming.partTools {
		if prev, ok := s.baseline.partTools[id]; !ok || prev != row {
			s.markChanged(EntityPartTool, id)
		}
	}
	for id := range s.baseline.partTools {
		if _, ok := incoming.partTools[id]; !ok {
			s.markDeleted(EntityPartTool, id)
		}
	}

	for id, row := range incoming.notes {
		if prev, ok := s.baseline.notes[id]; !ok || prev != row {
			s.markChanged(EntityNote, id)
		}
	}
	for id := range s.baseline.notes {
		if _, ok := incoming.notes[id]; !ok {
			s.markDeleted(EntityNote, id)
		}
	}

	for id, row := range incoming.substepImages {
		if prev, ok := s.baseline.substepImages[id]; !ok || prev != row {
			s.markChanged(EntitySubstepImage, id)
		}
	}
	for id := range s.baseline.substepImages {
		if _, ok := incoming.substepImages[id]; !ok {
			s.markDeleted(EntitySubstepImage, id)
		}
	}

	for id, row := range incoming.substepPartTools {
		if prev, ok := s.baseline.substepPartTools[id]; !ok || prev != row {
			s.markChanged(EntitySubstepPartTool, id)
		}
	}
	for id := range s.baseline.substepPartTools {
		if _, ok := incoming.substepPartTools[id]; !ok {
			s.markDeleted(EntitySubstepPartTool, id)
		}
	}

	for id, row := range incoming.substepNotes {
		if prev, ok := s.baseline.substepNotes[id]; !ok || prev != row {
			s.markChanged(EntitySubstepNote, id)
		}
	}
	for id := range s.baseline.substepNotes {
		if _, ok := incoming.substepNotes[id]; !ok {
			s.markDeleted(EntitySubstepNote, id)
		}
	}

	for id, row := range incoming.substepDescriptions {
		if prev, ok := s.baseline.substepDescriptions[id]; !ok || prev != row {
			s.markChanged(EntitySubstepDescription, id)
		}
	}
	for id := range s.baseline.substepDescriptions {
		if _, ok := incoming.substepDescriptions[id]; !ok {
			s.markDeleted(EntitySubstepDescription, id)
		}
	}

	for id, row := range incoming.substepVideoSections {
		if prev, ok := s.baseline.substepVideoSections[id]; !ok || prev != row {
			s.markChanged(EntitySubstepVideoSection, id)
		}
	}
	for id := range s.baseline.substepVideoSections {
		if _, ok := incoming.substepVideoSections[id]; !ok {
			s.markDeleted(EntitySubstepVideoSection, id)
		}
	}

	for id, row := range incoming.substepTutorials {
		if prev, ok := s.baseline.substepTutorials[id]; !ok || prev != row {
			s.markChanged(EntitySubstepTutorial, id)
		}
	}
	for id := range s.baseline.substepTutorials {
		if _, ok := incoming.substepTutorials[id]; !ok {
			s.markDeleted(EntitySubstepTutorial, id)
		}
	}

	for id, row := range incoming.partToolFrameAreas {
		if prev, ok := s.baseline.partToolFrameAreas[id]; !ok || prev != row {
			s.markChanged(EntityPartToolFrameArea, id)
		}
	}
	for id := range s.baseline.partToolFrameAreas {
		if _, ok := incoming.partToolFrameAreas[id]; !ok {
			s.markDeleted(EntityPartToolFrameArea, id)
		}
	}

	for id, row := range incoming.drawings {
		if prev, ok := s.baseline.drawings[id]; !ok || !drawingEqual(prev, row) {
			s.markChanged(EntityDrawing, id)
		}
	}
	for id := range s.baseline.drawings {
		if _, ok := incoming.drawings[id]; !ok {
			s.markDeleted(EntityDrawing, id)
		}
	}

	s.state = incoming
	s.loaded = true
}

func assemblyEqual(a, b Assembly) bool {
	return a.ID == b.ID &&
		a.Name == b.Name &&
		a.Order == b.Order &&
		stringSlicesEqual(a.StepIDs, b.StepIDs)
}

func stepEqual(a, b Step) bool {
	return a.ID == b.ID &&
		stringPtrEqual(a.AssemblyID, b.AssemblyID) &&
		a.Name == b.Name &&
		a.Order == b.Order &&
		stringSlicesEqual(a.SubstepIDs, b.SubstepIDs)
}

func substepEqual(a, b Substep) bool {
	return a.ID == b.ID &&
		stringPtrEqual(a.StepID, b.StepID) &&
		a.Order == b.Order &&
		a.RepeatCount == b.RepeatCount &&
		a.RepeatLabel == b.RepeatLabel &&
		stringSlicesEqual(a.ImageIDs, b.ImageIDs) &&
		stringSlicesEqual(a.VideoSectionIDs, b.VideoSectionIDs) &&
		stringSlicesEqual(a.PartToolIDs, b.PartToolIDs) &&
		stringSlicesEqual(a.NoteIDs, b.NoteIDs) &&
		stringSlicesEqual(a.DescriptionIDs, b.DescriptionIDs) &&
		stringSlicesEqual(a.TutorialIDs, b.TutorialIDs)
}

func videoEqual(a, b Video) bool {
	return a.ID == b.ID &&
		a.Name == b.Name &&
		a.MediaKey == b.MediaKey &&
		a.FrameCount == b.FrameCount &&
		stringSlicesEqual(a.SectionIDs, b.SectionIDs) &&
		stringSlicesEqual(a.FrameAreaIDs, b.FrameAreaIDs) &&
		stringSlicesEqual(a.ViewportKeyframeIDs, b.ViewportKeyframeIDs)
}

func drawingEqual(a, b Drawing) bool {
	if a.ID != b.ID ||
		!stringPtrEqual(a.SubstepImageID, b.SubstepImageID) ||
		!stringPtrEqual(a.SubstepID, b.SubstepID) ||
		a.FrameNumber != b.FrameNumber ||
		a.Kind != b.Kind ||
		a.Color != b.Color ||
		len(a.Points) != len(b.Points) {
		return false
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			return false
		}
	}
	return true
}
