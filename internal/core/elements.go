package core

// Junction rows bind a substep to shared catalog and media records while
// carrying per-substep payload (order, amount, captions). Each add appends the
// row's id to the owning substep's category array; each delete removes it and
// marks the substep changed so the array mutation is captured.

// AddSubstepImage inserts an image attachment and appends it to the substep's
// image array.
func (s *Store) AddSubstepImage(row SubstepImage) SubstepImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return SubstepImage{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.substepImages[row.ID]; exists {
		return SubstepImage{}
	}
	s.state.substepImages[row.ID] = row
	s.attachToSubstep(row.SubstepID, row.ID, ElementImage)
	s.markChanged(EntitySubstepImage, row.ID)
	s.record(EntitySubstepImage, row.ID, EventCreate, row)
	return row
}

// UpdateSubstepImage applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateSubstepImage(id string, mutate func(*SubstepImage)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.substepImages[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.substepImages[id] = current
	s.markChanged(EntitySubstepImage, id)
}

// DeleteSubstepImage removes the attachment, detaches it from its substep, and
// cascade-deletes the image-anchored drawings on it.
func (s *Store) DeleteSubstepImage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.substepImages[id]; !ok {
		return
	}
	s.deleteSubstepImageLocked(id)
}

func (s *Store) deleteSubstepImageLocked(id string) {
	current, ok := s.state.substepImages[id]
	if !ok {
		return
	}
	s.detachFromSubstep(current.SubstepID, id, ElementImage)
	for dID, d := range s.state.drawings {
		if d.SubstepImageID != nil && *d.SubstepImageID == id {
			s.deleteDrawingLocked(dID)
		}
	}
	delete(s.state.substepImages, id)
	s.markDeleted(EntitySubstepImage, id)
	s.record(EntitySubstepImage, id, EventDelete, current)
}

// AddSubstepPartTool inserts a part/tool usage row and appends it to the
// substep's part-tool array.
func (s *Store) AddSubstepPartTool(row SubstepPartTool) SubstepPartTool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return SubstepPartTool{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.substepPartTools[row.ID]; exists {
		return SubstepPartTool{}
	}
	s.state.substepPartTools[row.ID] = row
	s.attachToSubstep(row.SubstepID, row.ID, ElementPartTool)
	s.markChanged(EntitySubstepPartTool, row.ID)
	s.record(EntitySubstepPartTool, row.ID, EventCreate, row)
	return row
}

// UpdateSubstepPartTool applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateSubstepPartTool(id string, mutate func(*SubstepPartTool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.substepPartTools[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.substepPartTools[id] = current
	s.markChanged(EntitySubstepPartTool, id)
}

// DeleteSubstepPartTool removes the usage row, detaches it from its substep,
// and cascade-deletes the frame-area links hanging off it. The referenced
// catalog part/tool survives.
func (s *Store) DeleteSubstepPartTool(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.substepPartTools[id]; !ok {
		return
	}
	s.deleteSubstepPartToolLocked(id)
}

func (s *Store) deleteSubstepPartToolLocked(id string) {
	current, ok := s.state.substepPartTools[id]
	if !ok {
		return
	}
	s.detachFromSubstep(current.SubstepID, id, ElementPartTool)
	for linkID, link := range s.state.partToolFrameAreas {
		if link.SubstepPartToolID == id {
			s.deletePartToolFrameAreaLocked(linkID)
		}
	}
	delete(s.state.substepPartTools, id)
	s.markDeleted(EntitySubstepPartTool, id)
	s.record(EntitySubstepPartTool, id, EventDelete, current)
}

// AddSubstepNote inserts a note attachment and appends it to the substep's
// note array.
func (s *Store) AddSubstepNote(row SubstepNote) SubstepNote {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return SubstepNote{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.substepNotes[row.ID]; exists {
		return SubstepNote{}
	}
	s.state.substepNotes[row.ID] = row
	s.attachToSubstep(row.SubstepID, row.ID, ElementNote)
	s.markChanged(EntitySubstepNote, row.ID)
	s.record(EntitySubstepNote, row.ID, EventCreate, row)
	return row
}

// UpdateSubstepNote applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateSubstepNote(id string, mutate func(*SubstepNote)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.substepNotes[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.substepNotes[id] = current
	s.markChanged(EntitySubstepNote, id)
}

// DeleteSubstepNote removes the attachment and detaches it from its substep.
// The referenced catalog note survives.
func (s *Store) DeleteSubstepNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.substepNotes[id]; !ok {
		return
	}
	s.deleteSubstepNoteLocked(id)
}

func (s *Store) deleteSubstepNoteLocked(id string) {
	current, ok := s.state.substepNotes[id]
	if !ok {
		return
	}
	s.detachFromSubstep(current.SubstepID, id, ElementNote)
	delete(s.state.substepNotes, id)
	s.markDeleted(EntitySubstepNote, id)
	s.record(EntitySubstepNote, id, EventDelete, current)
}

// AddSubstepDescription inserts a description block and appends it to the
// substep's description array.
func (s *Store) AddSubstepDescription(row SubstepDescription) SubstepDescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return SubstepDescription{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.substepDescriptions[row.ID]; exists {
		return SubstepDescription{}
	}
	s.state.substepDescriptions[row.ID] = row
	s.attachToSubstep(row.SubstepID, row.ID, ElementDescription)
	s.markChanged(EntitySubstepDescription, row.ID)
	s.record(EntitySubstepDescription, row.ID, EventCreate, row)
	return row
}

// UpdateSubstepDescription applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateSubstepDescription(id string, mutate func(*SubstepDescription)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.substepDescriptions[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.substepDescriptions[id] = current
	s.markChanged(EntitySubstepDescription, id)
}

// DeleteSubstepDescription removes the block and detaches it from its substep.
func (s *Store) DeleteSubstepDescription(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.substepDescriptions[id]; !ok {
		return
	}
	s.deleteSubstepDescriptionLocked(id)
}

func (s *Store) deleteSubstepDescriptionLocked(id string) {
	current, ok := s.state.substepDescriptions[id]
	if !ok {
		return
	}
	s.detachFromSubstep(current.SubstepID, id, ElementDescription)
	delete(s.state.substepDescriptions, id)
	s.markDeleted(EntitySubstepDescription, id)
	s.record(EntitySubstepDescription, id, EventDelete, current)
}

// AddSubstepVideoSection inserts a video-section attachment and appends it to
// the substep's video-section array.
func (s *Store) AddSubstepVideoSection(row SubstepVideoSection) SubstepVideoSection {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return SubstepVideoSection{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.substepVideoSections[row.ID]; exists {
		return SubstepVideoSection{}
	}
	s.state.substepVideoSections[row.ID] = row
	s.attachToSubstep(row.SubstepID, row.ID, ElementVideoSection)
	s.markChanged(EntitySubstepVideoSection, row.ID)
	s.record(EntitySubstepVideoSection, row.ID, EventCreate, row)
	return row
}

// UpdateSubstepVideoSection applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateSubstepVideoSection(id string, mutate func(*SubstepVideoSection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.substepVideoSections[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.substepVideoSections[id] = current
	s.markChanged(EntitySubstepVideoSection, id)
}

// DeleteSubstepVideoSection removes the attachment and detaches it from its
// substep. The referenced video section survives.
func (s *Store) DeleteSubstepVideoSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.substepVideoSections[id]; !ok {
		return
	}
	s.deleteSubstepVideoSectionLocked(id)
}

func (s *Store) deleteSubstepVideoSectionLocked(id string) {
	current, ok := s.state.substepVideoSections[id]
	if !ok {
		return
	}
	s.detachFromSubstep(current.SubstepID, id, ElementVideoSection)
	delete(s.state.substepVideoSections, id)
	s.markDeleted(EntitySubstepVideoSection, id)
	s.record(EntitySubstepVideoSection, id, EventDelete, current)
}

// AddSubstepTutorial inserts a tutorial reference and appends it to the
// substep's tutorial array.
func (s *Store) AddSubstepTutorial(row SubstepTutorial) SubstepTutorial {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return SubstepTutorial{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.substepTutorials[row.ID]; exists {
		return SubstepTutorial{}
	}
	s.state.substepTutorials[row.ID] = row
	s.attachToSubstep(row.SubstepID, row.ID, ElementTutorial)
	s.markChanged(EntitySubstepTutorial, row.ID)
	s.record(EntitySubstepTutorial, row.ID, EventCreate, row)
	return row
}

// UpdateSubstepTutorial applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateSubstepTutorial(id string, mutate func(*SubstepTutorial)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.substepTutorials[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.substepTutorials[id] = current
	s.markChanged(EntitySubstepTutorial, id)
}

// DeleteSubstepTutorial removes the reference and detaches it from its substep.
func (s *Store) DeleteSubstepTutorial(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.substepTutorials[id]; !ok {
		return
	}
	s.deleteSubstepTutorialLocked(id)
}

func (s *Store) deleteSubstepTutorialLocked(id string) {
	current, ok := s.state.substepTutorials[id]
	if !ok {
		return
	}
	s.detachFromSubstep(current.SubstepID, id, ElementTutorial)
	delete(s.state.substepTutorials, id)
	s.markDeleted(EntitySubstepTutorial, id)
	s.record(EntitySubstepTutorial, id, EventDelete, current)
}

// AddPartToolFrameArea links a part/tool usage row to a video frame area.
func (s *Store) AddPartToolFrameArea(row PartToolFrameArea) PartToolFrameArea {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return PartToolFrameArea{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.partToolFrameAreas[row.ID]; exists {
		return PartToolFrameArea{}
	}
	s.state.partToolFrameAreas[row.ID] = row
	s.markChanged(EntityPartToolFrameArea, row.ID)
	s.record(EntityPartToolFrameArea, row.ID, EventCreate, row)
	return row
}

// DeletePartToolFrameArea removes the link row.
func (s *Store) DeletePartToolFrameArea(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.partToolFrameAreas[id]; !ok {
		return
	}
	s.deletePartToolFrameAreaLocked(id)
}

func (s *Store) deletePartToolFrameAreaLocked(id string) {
	current, ok := s.state.partToolFrameAreas[id]
	if !ok {
		return
	}
	delete(s.state.partToolFrameAreas, id)
	s.markDeleted(EntityPartToolFrameArea, id)
	s.record(EntityPartToolFrameArea, id, EventDelete, current)
}

// attachToSubstep appends the element id to the substep's category array and
// marks the substep changed. Missing substeps are tolerated; the junction row
// then floats until reassigned or cleaned up.
func (s *Store) attachToSubstep(substepID, elementID string, elementType ElementType) {
	sub, ok := s.state.substeps[substepID]
	if !ok {
		return
	}
	array := elementArray(&sub, elementType)
	if array == nil {
		return
	}
	*array = appendUnique(*array, elementID)
	s.state.substeps[substepID] = sub
	s.markChanged(EntitySubstep, substepID)
}

// detachFromSubstep removes the element id from the substep's category array
// and marks the substep changed when the array actually shrank.
func (s *Store) detachFromSubstep(substepID, elementID string, elementType ElementType) {
	sub, ok := s.state.substeps[substepID]
	if !ok {
		return
	}
	array := elementArray(&sub, elementType)
	if array == nil {
		return
	}
	ids, removed := removeString(*array, elementID)
	if !removed {
		return
	}
	*array = ids
	s.state.substeps[substepID] = sub
	s.markChanged(EntitySubstep, substepID)
}
