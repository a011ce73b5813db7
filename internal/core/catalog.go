package core

// Catalog records (parts, tools, notes) are shared across substeps through
// junction rows. Deleting a catalog record cascades to the junction rows that
// reference it so no substep is left pointing at a missing record.

// AddPartTool inserts a new catalog part or tool.
func (s *Store) AddPartTool(row PartTool) PartTool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return PartTool{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.partTools[row.ID]; exists {
		return PartTool{}
	}
	s.state.partTools[row.ID] = row
	s.markChanged(EntityPartTool, row.ID)
	s.record(EntityPartTool, row.ID, EventCreate, row)
	return row
}

// UpdatePartTool applies the mutator to the stored row and marks it changed.
func (s *Store) UpdatePartTool(id string, mutate func(*PartTool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.partTools[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.partTools[id] = current
	s.markChanged(EntityPartTool, id)
}

// DeletePartTool removes the catalog record and cascade-deletes every substep
// usage row referencing it, which in turn drops their frame-area links.
func (s *Store) DeletePartTool(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.partTools[id]
	if !ok {
		return
	}
	for sptID, spt := range s.state.substepPartTools {
		if spt.PartToolID == id {
			s.deleteSubstepPartToolLocked(sptID)
		}
	}
	delete(s.state.partTools, id)
	s.markDeleted(EntityPartTool, id)
	s.record(EntityPartTool, id, EventDelete, current)
}

// AddNote inserts a new catalog note.
func (s *Store) AddNote(row Note) Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Note{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.notes[row.ID]; exists {
		return Note{}
	}
	s.state.notes[row.ID] = row
	s.markChanged(EntityNote, row.ID)
	s.record(EntityNote, row.ID, EventCreate, row)
	return row
}

// UpdateNote applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateNote(id string, mutate func(*Note)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.notes[id]
	if !ok {
		return
	}
	mutate(&current)
	current.ID = id
	s.state.notes[id] = current
	s.markChanged(EntityNote, id)
}

// DeleteNote removes the catalog note and cascade-deletes every substep
// attachment referencing it.
func (s *Store) DeleteNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.notes[id]
	if !ok {
		return
	}
	for snID, sn := range s.state.substepNotes {
		if sn.NoteID == id {
			s.deleteSubstepNoteLocked(snID)
		}
	}
	delete(s.state.notes, id)
	s.markDeleted(EntityNote, id)
	s.record(EntityNote, id, EventDelete, current)
}
