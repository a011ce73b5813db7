package core

import "sort"

// FindAssembly retrieves an assembly by id.
func (s *Store) FindAssembly(id string) (Assembly, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.state.assemblies[id]
	if !ok {
		return Assembly{}, false
	}
	return cloneAssembly(a), true
}

// FindStep retrieves a step by id.
func (s *Store) FindStep(id string) (Step, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.state.steps[id]
	if !ok {
		return Step{}, false
	}
	return cloneStep(st), true
}

// FindSubstep retrieves a substep by id.
func (s *Store) FindSubstep(id string) (Substep, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.state.substeps[id]
	if !ok {
		return Substep{}, false
	}
	return cloneSubstep(sub), true
}

// FindVideo retrieves a video by id.
func (s *Store) FindVideo(id string) (Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.videos[id]
	if !ok {
		return Video{}, false
	}
	return cloneVideo(v), true
}

// FindVideoSection retrieves a video section by id.
func (s *Store) FindVideoSection(id string) (VideoSection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.state.videoSections[id]
	return sec, ok
}

// FindVideoFrameArea retrieves a frame area by id.
func (s *Store) FindVideoFrameArea(id string) (VideoFrameArea, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fa, ok := s.state.videoFrameAreas[id]
	return fa, ok
}

// FindViewportKeyframe retrieves a viewport keyframe by id.
func (s *Store) FindViewportKeyframe(id string) (ViewportKeyframe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kf, ok := s.state.viewportKeyframes[id]
	return kf, ok
}

// FindPartTool retrieves a catalog part/tool by id.
func (s *Store) FindPartTool(id string) (PartTool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pt, ok := s.state.partTools[id]
	return pt, ok
}

// FindNote retrieves a catalog note by id.
func (s *Store) FindNote(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.state.notes[id]
	return n, ok
}

// FindSubstepImage retrieves a substep image link by id.
func (s *Store) FindSubstepImage(id string) (SubstepImage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.state.substepImages[id]
	return img, ok
}

// FindSubstepPartTool retrieves a substep part/tool link by id.
func (s *Store) FindSubstepPartTool(id string) (SubstepPartTool, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spt, ok := s.state.substepPartTools[id]
	return spt, ok
}

// FindSubstepNote retrieves a substep note link by id.
func (s *Store) FindSubstepNote(id string) (SubstepNote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sn, ok := s.state.substepNotes[id]
	return sn, ok
}

// FindSubstepDescription retrieves a substep description by id.
func (s *Store) FindSubstepDescription(id string) (SubstepDescription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sd, ok := s.state.substepDescriptions[id]
	return sd, ok
}

// FindSubstepVideoSection retrieves a substep video section link by id.
func (s *Store) FindSubstepVideoSection(id string) (SubstepVideoSection, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	svs, ok := s.state.substepVideoSections[id]
	return svs, ok
}

// FindSubstepTutorial retrieves a substep tutorial reference by id.
func (s *Store) FindSubstepTutorial(id string) (SubstepTutorial, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.state.substepTutorials[id]
	return st, ok
}

// FindPartToolFrameArea retrieves a part/tool frame area link by id.
func (s *Store) FindPartToolFrameArea(id string) (PartToolFrameArea, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	link, ok := s.state.partToolFrameAreas[id]
	return link, ok
}

// FindDrawing retrieves a drawing by id.
func (s *Store) FindDrawing(id string) (Drawing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.state.drawings[id]
	if !ok {
		return Drawing{}, false
	}
	return cloneDrawing(d), true
}

// ListAssemblies returns all assemblies ordered by Order, then id.
func (s *Store) ListAssemblies() []Assembly {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Assembly, 0, len(s.state.assemblies))
	for _, a := range s.state.assemblies {
		out = append(out, cloneAssembly(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListSteps returns all steps ordered by Order, then id.
func (s *Store) ListSteps() []Step {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Step, 0, len(s.state.steps))
	for _, st := range s.state.steps {
		out = append(out, cloneStep(st))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListSubsteps returns all substeps ordered by Order, then id.
func (s *Store) ListSubsteps() []Substep {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Substep, 0, len(s.state.substeps))
	for _, sub := range s.state.substeps {
		out = append(out, cloneSubstep(sub))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ListVideos returns all videos ordered by id.
func (s *Store) ListVideos() []Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Video, 0, len(s.state.videos))
	for _, v := range s.state.videos {
		out = append(out, cloneVideo(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountSubsteps reports the number of substep records in the graph.
func (s *Store) CountSubsteps() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.substeps)
}
