package core

// AddStep inserts a new step. When the row names an existing assembly, the id
// is appended to that assembly's ordered array.
func (s *Store) AddStep(row Step) Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return Step{}
	}
	if row.ID == "" {
		row.ID = newID()
	}
	if _, exists := s.state.steps[row.ID]; exists {
		return Step{}
	}
	s.state.steps[row.ID] = cloneStep(row)
	if row.AssemblyID != nil {
		if assembly, ok := s.state.assemblies[*row.AssemblyID]; ok {
			assembly.StepIDs = appendUnique(assembly.StepIDs, row.ID)
			s.state.assemblies[assembly.ID] = assembly
			s.markChanged(EntityAssembly, assembly.ID)
		}
	}
	s.markChanged(EntityStep, row.ID)
	s.record(EntityStep, row.ID, EventCreate, cloneStep(row))
	return cloneStep(row)
}

// UpdateStep applies the mutator to the stored row and marks it changed.
func (s *Store) UpdateStep(id string, mutate func(*Step)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.steps[id]
	if !ok {
		return
	}
	next := cloneStep(current)
	mutate(&next)
	next.ID = id
	s.state.steps[id] = cloneStep(next)
	s.markChanged(EntityStep, id)
}

// DeleteStep removes the step and detaches it from its assembly. Substeps that
// referenced it survive with their step reference nulled (weak reference);
// they are marked changed but never cascade-deleted.
func (s *Store) DeleteStep(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	current, ok := s.state.steps[id]
	if !ok {
		return
	}
	for subID, sub := range s.state.substeps {
		if sub.StepID != nil && *sub.StepID == id {
			sub.StepID = nil
			s.state.substeps[subID] = sub
			s.markChanged(EntitySubstep, subID)
		}
	}
	for assemblyID, assembly := range s.state.assemblies {
		if ids, removed := removeString(assembly.StepIDs, id); removed {
			assembly.StepIDs = ids
			s.state.assemblies[assemblyID] = assembly
			s.markChanged(EntityAssembly, assemblyID)
		}
	}
	delete(s.state.steps, id)
	s.markDeleted(EntityStep, id)
	s.record(EntityStep, id, EventDelete, cloneStep(current))
}

// AssignSubstepToStep moves a substep to a new step, or detaches it when
// stepID is nil. The id is removed from the previous step's array and appended
// to the new one's. No-op when the substep, or a non-nil target step, is absent.
func (s *Store) AssignSubstepToStep(substepID string, stepID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return
	}
	sub, ok := s.state.substeps[substepID]
	if !ok {
		return
	}
	if stepID != nil {
		if _, ok := s.state.steps[*stepID]; !ok {
			return
		}
	}
	for otherID, other := range s.state.steps {
		if stepID != nil && otherID == *stepID {
			continue
		}
		if ids, removed := removeString(other.SubstepIDs, substepID); removed {
			other.SubstepIDs = ids
			s.state.steps[otherID] = other
			s.markChanged(EntityStep, otherID)
		}
	}
	if stepID == nil {
		sub.StepID = nil
	} else {
		target := s.state.steps[*stepID]
		target.SubstepIDs = appendUnique(target.SubstepIDs, substepID)
		s.state.steps[*stepID] = target
		s.markChanged(EntityStep, *stepID)
		assigned := *stepID
		sub.StepID = &assigned
	}
	s.state.substeps[substepID] = sub
	s.markChanged(EntitySubstep, substepID)
}
