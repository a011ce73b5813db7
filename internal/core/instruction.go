package core

// UpdateInstructionName merges a new name into the singleton header and sets
// the instruction dirty flag. No-op when no graph or header is present.
func (s *Store) UpdateInstructionName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded || s.state.instruction == nil {
		return
	}
	s.state.instruction.Name = name
	s.instructionDirty = true
}

// UpdateInstructionDescription merges a new description into the singleton
// header and sets the instruction dirty flag.
func (s *Store) UpdateInstructionDescription(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded || s.state.instruction == nil {
		return
	}
	s.state.instruction.Description = description
	s.instructionDirty = true
}

// UpdateInstructionPreviewImageID merges a new preview image id into the
// singleton header and sets the instruction dirty flag.
func (s *Store) UpdateInstructionPreviewImageID(previewImageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded || s.state.instruction == nil {
		return
	}
	s.state.instruction.PreviewImageID = previewImageID
	s.instructionDirty = true
}
