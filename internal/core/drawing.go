package core

// AddDrawing inserts a free-form drawing. Geometry is stored opaquely; the
// anchor (image or timeline) is whatever the row carries.
func (s *Store) AddDrawing(row Drawing) Drawing {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Drawing{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.drawings[row.ID]; exists {
		return Drawing{}
	}
	s.state.drawings[row.ID] = cloneDrawing(row)
	s.markChanged(EntityDrawing, row.ID)
	s.record(EntityDrawing, row.ID, EventCreate, cloneDrawing(row))
	return cloneDrawing(row)
}

// UpdateDrawing applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateDrawing(id string, mutate func(*Drawing)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.drawings[id]
	if !ok {
		return
	}
	next := cloneDrawing(current)
	mutate(&next)
	next.ID = id
	s.state.drawings[id] = cloneDrawing(next)
	s.markChanged(EntityDrawing, id)
}

// DeleteDrawing removes the drawing.
func (s *Store) DeleteDrawing(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	if _, ok := s.state.drawings[id]; !ok {
		return
	}
	s.deleteDrawingLocked(id)
}

func (s *Store) deleteDrawingLocked(id string) {
	current, ok := s.state.drawings[id]
	if !ok {
		return
	}
	delete(s.state.drawings, id)
	s.markDeleted(EntityDrawing, id)
	s.record(EntityDrawing, id, EventDelete, cloneDrawing(current))
}
