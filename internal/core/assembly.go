package core

// AddAssembly inserts a new assembly. A missing id is generated. Returns the
// stored row, or the zero value when the mutation was a no-op.
func (s *Store) AddAssembly(row Assembly) Assembly {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Assembly{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.assemblies[row.ID]; exists {
		return Assembly{}
	}
	s.state.assemblies[row.ID] = cloneAssembly(row)
	s.markChanged(EntityAssembly, row.ID)
	s.record(EntityAssembly, row.ID, EventCreate, cloneAssembly(row))
	return cloneAssembly(row)
}

// UpdateAssembly applies the mutator to the stored row and marks it changed.
// No-op when the graph is unloaded or the id is absent. Never fires the
// event recorder.
func (s *Store) UpdateAssembly(id string, mutate func(*Assembly)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.assemblies[id]
	if !ok {
		return
	}
	next := cloneAssembly(current)
	mutate(&next)
	next.ID = id
	s.state.assemblies[id] = cloneAssembly(next)
	s.markChanged(EntityAssembly, id)
}

// DeleteAssembly removes the assembly. Steps referencing it keep existing with
// their assembly reference nulled; they are never cascade-deleted.
func (s *Store) DeleteAssembly(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.assemblies[id]
	if !ok {
		return
	}
	for stepID, step := range s.state.steps {
		if step.AssemblyID != nil && *step.AssemblyID == id {
			step.AssemblyID = nil
			s.state.steps[stepID] = step
			s.markChanged(EntityStep, stepID)
		}
	}
	delete(s.state.assemblies, id)
	s.markDeleted(EntityAssembly, id)
	s.record(EntityAssembly, id, EventDelete, cloneAssembly(current))
}

// AssignStepToAssembly moves a step into the target assembly: the step's
// assembly reference is updated, the id is removed from every other assembly's
// array and appended (deduplicated) to the target's. Both sides are marked
// changed. No-op when either record is absent.
func (s *Store) AssignStepToAssembly(stepID, assemblyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	step, ok := s.state.steps[stepID]
	if !ok {
		return
	}
	target, ok := s.state.assemblies[assemblyID]
	if !ok {
		return
	}
	for otherID, other := range s.state.assemblies {
		if otherID == assemblyID {
			continue
		}
		if ids, removed := removeString(other.StepIDs, stepID); removed {
			other.StepIDs = ids
			s.state.assemblies[otherID] = other
			s.markChanged(EntityAssembly, otherID)
		}
	}
	step.AssemblyID = &assemblyID
	s.state.steps[stepID] = step
	s.markChanged(EntityStep, stepID)
	target.StepIDs = appendUnique(target.StepIDs, stepID)
	s.state.assemblies[assemblyID] = target
	s.markChanged(EntityAssembly, assemblyID)
}
