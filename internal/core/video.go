package core

// AddVideo inserts a new video record. The frame-0 viewport keyframe is a
// separate record; callers register it with AddViewportKeyframe after the
// video exists.
func (s *Store) AddVideo(row Video) Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Video{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.videos[row.ID]; exists {
		return Video{}
	}
	s.state.videos[row.ID] = cloneVideo(row)
	s.markChanged(EntityVideo, row.ID)
	s.record(EntityVideo, row.ID, EventCreate, cloneVideo(row))
	return cloneVideo(row)
}

// UpdateVideo applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateVideo(id string, mutate func(*Video)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.videos[id]
	if !ok {
		return
	}
	next := cloneVideo(current)
	mutate(&next)
	next.ID = id
	s.state.videos[id] = cloneVideo(next)
	s.markChanged(EntityVideo, id)
}

// DeleteVideo removes the video and cascade-deletes every owned child: its
// sections (and their substep junction rows), frame areas (and their part-tool
// links), and all viewport keyframes including the otherwise protected frame-0
// one.
func (s *Store) DeleteVideo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.videos[id]
	if !ok {
		return
	}
	for secID, sec := range s.state.videoSections {
		if sec.VideoID == id {
			s.deleteVideoSectionLocked(secID)
		}
	}
	for faID, fa := range s.state.videoFrameAreas {
		if fa.VideoID == id {
			s.deleteVideoFrameAreaLocked(faID)
		}
	}
	for kfID, kf := range s.state.viewportKeyframes {
		if kf.VideoID == id {
			s.deleteViewportKeyframeLocked(kfID)
		}
	}
	delete(s.state.videos, id)
	s.markDeleted(EntityVideo, id)
	s.record(EntityVideo, id, EventDelete, cloneVideo(current))
}

// AddVideoSection inserts a new section and appends its id to the owning
// video's section array when the video exists.
func (s *Store) AddVideoSection(row VideoSection) VideoSection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return VideoSection{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.videoSections[row.ID]; exists {
		return VideoSection{}
	}
	s.state.videoSections[row.ID] = row
	if video, ok := s.state.videos[row.VideoID]; ok {
		video.SectionIDs = appendUnique(video.SectionIDs, row.ID)
		s.state.videos[video.ID] = video
		s.markChanged(EntityVideo, video.ID)
	}
	s.markChanged(EntityVideoSection, row.ID)
	s.record(EntityVideoSection, row.ID, EventCreate, row)
	return row
}

// UpdateVideoSection applies the mutator to the stored row and marks it
// changed.
func (s *Store) UpdateVideoSection(id string, mutate func(*VideoSection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.videoSections[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.videoSections[id] = current
	s.markChanged(EntityVideoSection, id)
}

// DeleteVideoSection removes the section, detaches it from its video, and
// cascade-deletes the substep junction rows that referenced it.
func (s *Store) DeleteVideoSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.videoSections[id]; !ok {
		return
	}
	s.deleteVideoSectionLocked(id)
}

// deleteVideoSectionLocked removes the section from its video's array, drops
// every substep junction row pointing at it, deletes the row, and fires the
// recorder. Callers hold the write lock.
func (s *Store) deleteVideoSectionLocked(id string) {
	current, ok := s.state.videoSections[id]
	if !ok {
		return
	}
	if video, ok := s.state.videos[current.VideoID]; ok {
		if ids, removed := removeString(video.SectionIDs, id); removed {
			video.SectionIDs = ids
			s.state.videos[video.ID] = video
			s.markChanged(EntityVideo, video.ID)
		}
	}
	for svsID, svs := range s.state.substepVideoSections {
		if svs.VideoSectionID == id {
			s.deleteSubstepVideoSectionLocked(svsID)
		}
	}
	delete(s.state.videoSections, id)
	s.markDeleted(EntityVideoSection, id)
	s.record(EntityVideoSection, id, EventDelete, current)
}

// SplitVideoSection splits the section at the given frame into two adjacent
// sections: the original is truncated to [start, atFrame-1] and a new section
// covers [atFrame+1, end], dropping the split frame itself. The new section's
// id is returned. The split is valid only strictly inside the section's range;
// otherwise nothing is mutated and ok is false.
func (s *Store) SplitVideoSection(id string, atFrame int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return "", false
	}
	section, ok := s.state.videoSections[id]
	if !ok {
		return "", false
	}
	if atFrame <= section.StartFrame || atFrame >= section.EndFrame {
		return "", false
	}
	tail := VideoSection{
		ID:         newID(),
		VideoID:    section.VideoID,
		Name:       section.Name,
		StartFrame: atFrame + 1,
		EndFrame:   section.EndFrame,
	}
	section.EndFrame = atFrame - 1
	s.state.videoSections[id] = section
	s.state.videoSections[tail.ID] = tail
	if video, ok := s.state.videos[section.VideoID]; ok {
		video.SectionIDs = appendUnique(video.SectionIDs, tail.ID)
		s.state.videos[video.ID] = video
		s.markChanged(EntityVideo, video.ID)
	}
	s.markChanged(EntityVideoSection, id)
	s.markChanged(EntityVideoSection, tail.ID)
	s.record(EntityVideoSection, tail.ID, EventCreate, tail)
	return tail.ID, true
}

// AddVideoFrameArea inserts a new frame area and appends its id to the owning
// video's frame area array when the video exists.
func (s *Store) AddVideoFrameArea(row VideoFrameArea) VideoFrameArea {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return VideoFrameArea{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.videoFrameAreas[row.ID]; exists {
		return VideoFrameArea{}
	}
	s.state.videoFrameAreas[row.ID] = row
	if video, ok := s.state.videos[row.VideoID]; ok {
		video.FrameAreaIDs = appendUnique(video.FrameAreaIDs, row.ID)
		s.state.videos[video.ID] = video
		s.markChanged(EntityVideo, video.ID)
	}
	s.markChanged(EntityVideoFrameArea, row.ID)
	s.record(EntityVideoFrameArea, row.ID, EventCreate, row)
	return row
}

// UpdateVideoFrameArea applies the mutator to the stored row and marks it
// changed.
func (s *Store) UpdateVideoFrameArea(id string, mutate func(*VideoFrameArea)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.videoFrameAreas[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.videoFrameAreas[id] = current
	s.markChanged(EntityVideoFrameArea, id)
}

// DeleteVideoFrameArea removes the frame area, detaches it from its video, and
// cascade-deletes the part-tool link rows that referenced it.
func (s *Store) DeleteVideoFrameArea(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.videoFrameAreas[id]; !ok {
		return
	}
	s.deleteVideoFrameAreaLocked(id)
}

func (s *Store) deleteVideoFrameAreaLocked(id string) {
	current, ok := s.state.videoFrameAreas[id]
	if !ok {
		return
	}
	if video, ok := s.state.videos[current.VideoID]; ok {
		if ids, removed := removeString(video.FrameAreaIDs, id); removed {
			video.FrameAreaIDs = ids
			s.state.videos[video.ID] = video
			s.markChanged(EntityVideo, video.ID)
		}
	}
	for linkID, link := range s.state.partToolFrameAreas {
		if link.VideoFrameAreaID == id {
			s.deletePartToolFrameAreaLocked(linkID)
		}
	}
	delete(s.state.videoFrameAreas, id)
	s.markDeleted(EntityVideoFrameArea, id)
	s.record(EntityVideoFrameArea, id, EventDelete, current)
}

// AddViewportKeyframe inserts a new keyframe and appends its id to the owning
// video's keyframe array when the video exists.
func (s *Store) AddViewportKeyframe(row ViewportKeyframe) ViewportKeyframe {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ViewportKeyframe{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.viewportKeyframes[row.ID]; exists {
		return ViewportKeyframe{}
	}
	s.state.viewportKeyframes[row.ID] = row
	if video, ok := s.state.videos[row.VideoID]; ok {
		video.ViewportKeyframeIDs = appendUnique(video.ViewportKeyframeIDs, row.ID)
		s.state.videos[video.ID] = video
		s.markChanged(EntityVideo, video.ID)
	}
	s.markChanged(EntityViewportKeyframe, row.ID)
	s.record(EntityViewportKeyframe, row.ID, EventCreate, row)
	return row
}

// UpdateViewportKeyframe applies the mutator to the stored row and marks it
// changed.
func (s *Store) UpdateViewportKeyframe(id string, mutate func(*ViewportKeyframe)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.viewportKeyframes[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.viewportKeyframes[id] = current
	s.markChanged(EntityViewportKeyframe, id)
}

// DeleteViewportKeyframe removes the keyframe and detaches it from its video.
// The frame-0 keyframe anchors the video's initial viewport and cannot be
// deleted directly; it only goes away with its video.
func (s *Store) DeleteViewportKeyframe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.viewportKeyframes[id]
	if !ok || current.FrameNumber == 0 {
		return
	}
	s.deleteViewportKeyframeLocked(id)
}

func (s *Store) deleteViewportKeyframeLocked(id string) {
	current, ok := s.state.viewportKeyframes[id]
	if !ok {
		return
	}
	if video, ok := s.state.videos[current.VideoID]; ok {
		if ids, removed := removeString(video.ViewportKeyframeIDs, id); removed {
			video.ViewportKeyframeIDs = ids
			s.state.videos[video.ID] = video
			s.markChanged(EntityVideo, video.ID)
		}
	}
	delete(s.state.viewportKeyframes, id)
	s.markDeleted(EntityViewportKeyframe, id)
	s.record(EntityViewportKeyframe, id, EventDelete, current)
}
