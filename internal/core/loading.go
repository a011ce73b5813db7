package core

// Progressive loading merges step chunks fetched after the initial SetData
// into the live graph. Chunks are additive: a record that already exists in
// the working copy is never replaced, so edits made while later chunks stream
// in survive. Merged rows go into the baseline as well, which keeps them out
// of ChangedData until something actually edits them.

// AppendSteps merges one chunk of lazily loaded steps and their dependent
// records into both the working graph and the baseline. No change tracking is
// touched and no events fire.
func (s *Store) AppendSteps(chunk StepChunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	newSteps := s.mergeChunkLocked(chunk.Snapshot)
	s.stepLoading.LoadedCount += newSteps
	s.stepLoading.IsLoadingMore = chunk.HasMore
	s.stepLoading.AllLoaded = !chunk.HasMore
}

// SetStepLoadingState overwrites the loading progress snapshot, typically from
// the first page response that carries the total step count.
func (s *Store) SetStepLoadingState(state StepLoadingState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepLoading = state
}

// LoadingState returns the current progressive loading progress.
func (s *Store) LoadingState() StepLoadingState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stepLoading
}

// mergeChunkLocked unions the chunk's records into state and baseline,
// skipping ids that already exist, and returns how many steps were new.
// Callers hold the write lock.
func (s *Store) mergeChunkLocked(snapshot Snapshot) int {
	newSteps := 0
	for id, row := range snapshot.Steps {
		if _, ok := s.state.steps[id]; ok {
			continue
		}
		s.state.steps[id] = cloneStep(row)
		s.baseline.steps[id] = cloneStep(row)
		newSteps++
	}
	for id, row := range snapshot.Assemblies {
		if _, ok := s.state.assemblies[id]; ok {
			continue
		}
		s.state.assemblies[id] = cloneAssembly(row)
		s.baseline.assemblies[id] = cloneAssembly(row)
	}
	for id, row := range snapshot.Substeps {
		if _, ok := s.state.substeps[id]; ok {
			continue
		}
		s.state.substeps[id] = cloneSubstep(row)
		s.baseline.substeps[id] = cloneSubstep(row)
	}
	for id, row := range snapshot.Videos {
		if _, ok := s.state.videos[id]; ok {
			continue
		}
		s.state.videos[id] = cloneVideo(row)
		s.baseline.videos[id] = cloneVideo(row)
	}
	for id, row := range snapshot.VideoSections {
		if _, ok := s.state.videoSections[id]; ok {
			continue
		}
		s.state.videoSections[id] = row
		s.baseline.videoSections[id] = row
	}
	for id, row := range snapshot.VideoFrameAreas {
		if _, ok := s.state.videoFrameAreas[id]; ok {
			continue
		}
		s.state.videoFrameAreas[id] = row
		s.baseline.videoFrameAreas[id] = row
	}
	for id, row := range snapshot.ViewportKeyframes {
		if _, ok := s.state.viewportKeyframes[id]; ok {
			continue
		}
		s.state.viewportKeyframes[id] = row
		s.baseline.viewportKeyframes[id] = row
	}
	for id, row := range snapshot.PartTools {
		if _, ok := s.state.partTools[id]; ok {
			continue
		}
		s.state.partTools[id] = row
		s.baseline.partTools[id] = row
	}
	for id, row := range snapshot.Notes {
		if _, ok := s.state.notes[id]; ok {
			continue
		}
		s.state.notes[id] = row
		s.baseline.notes[id] = row
	}
	for id, row := range snapshot.SubstepImages {
		if _, ok := s.state.substepImages[id]; ok {
			continue
		}
		s.state.substepImages[id] = row
		s.baseline.substepImages[id] = row
	}
	for id, row := range snapshot.SubstepPartTools {
		if _, ok := s.state.substepPartTools[id]; ok {
			continue
		}
		s.state.substepPartTools[id] = row
		s.baseline.substepPartTools[id] = row
	}
	for id, row := range snapshot.SubstepNotes {
		if _, ok := s.state.substepNotes[id]; ok {
			continue
		}
		s.state.substepNotes[id] = row
		s.baseline.substepNotes[id] = row
	}
	for id, row := range snapshot.SubstepDescriptions {
		if _, ok := s.state.substepDescriptions[id]; ok {
			continue
		}
		s.state.substepDescriptions[id] = row
		s.baseline.substepDescriptions[id] = row
	}
	for id, row := range snapshot.SubstepVideoSections {
		if _, ok := s.state.substepVideoSections[id]; ok {
			continue
		}
		s.state.substepVideoSections[id] = row
		s.baseline.substepVideoSections[id] = row
	}
	for id, row := range snapshot.SubstepTutorials {
		if _, ok := s.state.substepTutorials[id]; ok {
			continue
		}
		s.state.substepTutorials[id] = row
		s.baseline.substepTutorials[id] = row
	}
	for id, row := range snapshot.PartToolFrameAreas {
		if _, ok := s.state.partToolFrameAreas[id]; ok {
			continue
		}
		s.state.partToolFrameAreas[id] = row
		s.baseline.partToolFrameAreas[id] = row
	}
	for id, row := range snapshot.Drawings {
		if _, ok := s.state.drawings[id]; ok {
			continue
		}
		s.state.drawings[id] = cloneDrawing(row)
		s.baseline.drawings[id] = cloneDrawing(row)
	}
	return newSteps
}
