package core

// AddSubstep inserts a new substep and appends its id to the owning step's
// ordered array when the step exists.
func (s *Store) AddSubstep(row Substep) Substep {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Substep{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.substeps[row.ID]; exists {
		return Substep{}
	}
	s.state.substeps[row.ID] = cloneSubstep(row)
	if row.StepID != nil {
		if step, ok := s.state.steps[*row.StepID]; ok {
			step.SubstepIDs = appendUnique(step.SubstepIDs, row.ID)
			s.state.steps[step.ID] = step
			s.markChanged(EntityStep, step.ID)
		}
	}
	s.markChanged(EntitySubstep, row.ID)
	s.record(EntitySubstep, row.ID, EventCreate, cloneSubstep(row))
	return cloneSubstep(row)
}

// UpdateSubstep applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateSubstep(id string, mutate func(*Substep)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.substeps[id]
	if !ok {
		return
	}
	next := cloneSubstep(current)
	mutate(&next)
	next.ID = id
	s.state.substeps[id] = cloneSubstep(next)
	s.markChanged(EntitySubstep, id)
}

// DeleteSubstep removes the substep and cascade-deletes every junction row in
// its six element arrays plus its timeline drawings (strict ownership). Shared
// catalog and media records referenced by those rows are left untouched.
func (s *Store) DeleteSubstep(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.substeps[id]
	if !ok {
		return
	}
	for stepID, step := range s.state.steps {
		if ids, removed := removeString(step.SubstepIDs, id); removed {
			step.SubstepIDs = ids
			s.state.steps[stepID] = step
			s.markChanged(EntityStep, stepID)
		}
	}
	for imgID, img := range s.state.substepImages {
		if img.SubstepID == id {
			s.deleteSubstepImageLocked(imgID)
		}
	}
	for sptID, spt := range s.state.substepPartTools {
		if spt.SubstepID == id {
			s.deleteSubstepPartToolLocked(sptID)
		}
	}
	for snID, sn := range s.state.substepNotes {
		if sn.SubstepID == id {
			s.deleteSubstepNoteLocked(snID)
		}
	}
	for sdID, sd := range s.state.substepDescriptions {
		if sd.SubstepID == id {
			s.deleteSubstepDescriptionLocked(sdID)
		}
	}
	for svsID, svs := range s.state.substepVideoSections {
		if svs.SubstepID == id {
			s.deleteSubstepVideoSectionLocked(svsID)
		}
	}
	for tutID, tut := range s.state.substepTutorials {
		if tut.SubstepID == id {
			s.deleteSubstepTutorialLocked(tutID)
		}
	}
	for dID, d := range s.state.drawings {
		if d.SubstepID != nil && *d.SubstepID == id {
			s.deleteDrawingLocked(dID)
		}
	}
	delete(s.state.substeps, id)
	s.markDeleted(EntitySubstep, id)
	s.record(EntitySubstep, id, EventDelete, cloneSubstep(current))
}

// ReorderSubstepElement moves an element to a new position within its
// substep's category array and reassigns every element's order field to its
// zero-based position. Unknown element types, unresolvable ids, and moves to
// the element's current index leave the graph untouched.
func (s *Store) ReorderSubstepElement(elementID string, newIndex int, elementType ElementType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	substepID, ok := s.elementSubstepID(elementID, elementType)
	if !ok {
		return
	}
	sub, ok := s.state.substeps[substepID]
	if !ok {
		return
	}
	array := elementArray(&sub, elementType)
	currentIndex := -1
	for i, id := range *array {
		if id == elementID {
			currentIndex = i
			break
		}
	}
	if currentIndex < 0 || currentIndex == newIndex {
		return
	}
	withoutElement, _ := removeString(*array, elementID)
	*array = insertStringAt(withoutElement, elementID, newIndex)
	s.state.substeps[substepID] = sub
	s.markChanged(EntitySubstep, substepID)
	for position, id := range *array {
		s.setElementOrder(elementType, id, position)
	}
}

func (s *Store) elementSubstepID(elementID string, elementType ElementType) (string, bool) {
	switch elementType {
	case ElementImage:
		if row, ok := s.state.substepImages[elementID]; ok {
			return row.SubstepID, true
		}
	case ElementVideoSection:
		if row, ok := s.state.substepVideoSections[elementID]; ok {
			return row.SubstepID, true
		}
	case ElementPartTool:
		if row, ok := s.state.substepPartTools[elementID]; ok {
			return row.SubstepID, true
		}
	case ElementNote:
		if row, ok := s.state.substepNotes[elementID]; ok {
			return row.SubstepID, true
		}
	case ElementDescription:
		if row, ok := s.state.substepDescriptions[elementID]; ok {
			return row.SubstepID, true
		}
	case ElementTutorial:
		if row, ok := s.state.substepTutorials[elementID]; ok {
			return row.SubstepID, true
		}
	}
	return "", false
}

func elementArray(sub *Substep, elementType ElementType) *[]string {
	switch elementType {
	case ElementImage:
		return &sub.ImageIDs
	case ElementVideoSection:
		return &sub.VideoSectionIDs
	case ElementPartTool:
		return &sub.PartToolIDs
	case ElementNote:
		return &sub.NoteIDs
	case ElementDescription:
		return &sub.DescriptionIDs
	case ElementTutorial:
		return &sub.TutorialIDs
	}
	return nil
}

func (s *Store) setElementOrder(elementType ElementType, id string, position int) {
	switch elementType {
	case ElementImage:
		if row, ok := s.state.substepImages[id]; ok && row.Order != position {
			row.Order = position
			s.state.substepImages[id] = row
			s.markChanged(EntitySubstepImage, id)
		}
	case ElementVideoSection:
		if row, ok := s.state.substepVideoSections[id]; ok && row.Order != position {
			row.Order = position
			s.state.substepVideoSections[id] = row
			s.markChanged(EntitySubstepVideoSection, id)
		}
	case ElementPartTool:
		if row, ok := s.state.substepPartTools[id]; ok && row.Order != position {
			row.Order = position
			s.state.substepPartTools[id] = row
			s.markChanged(EntitySubstepPartTool, id)
		}
	case ElementNote:
		if row, ok := s.state.substepNotes[id]; ok && row.Order != position {
			row.Order = position
			s.state.substepNotes[id] = row
			s.markChanged(EntitySubstepNote, id)
		}
	case ElementDescription:
		if row, ok := s.state.substepDescriptions[id]; ok && row.Order != position {
			row.Order = position
			s.state.substepDescriptions[id] = row
			s.markChanged(EntitySubstepDescription, id)
		}
	case ElementTutorial:
		if row, ok := s.state.substepTutorials[id]; ok && row.Order != position {
			row.Order = position
			s.state.substepTutorials[id] = row
			s.markChanged(EntitySubstepTutorial, id)
		}
	}
}
