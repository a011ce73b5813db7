package domain

// Delta is the minimal wire-ready payload handed to a persistence adapter.
// Changed records are grouped by type-plural key; deleted ids are grouped into
// `*_ids` arrays. Empty groups are omitted from the marshaled form.
type Delta struct {
	Changed ChangedSet `json:"changed"`
	Deleted DeletedSet `json:"deleted"`
}

// ChangedSet groups changed records by entity type. Slices are ordered by id so
// the payload is stable across saves.
type ChangedSet struct {
	Instruction          *Instruction          `json:"instruction,omitempty"`
	Assemblies           []Assembly            `json:"assemblies,omitempty"`
	Steps                []Step                `json:"steps,omitempty"`
	Substeps             []Substep             `json:"substeps,omitempty"`
	Videos               []Video               `json:"videos,omitempty"`
	VideoSections        []VideoSection        `json:"video_sections,omitempty"`
	VideoFrameAreas      []VideoFrameArea      `json:"video_frame_areas,omitempty"`
	ViewportKeyframes    []ViewportKeyframe    `json:"viewport_keyframes,omitempty"`
	PartTools            []PartTool            `json:"part_tools,omitempty"`
	Notes                []Note                `json:"notes,omitempty"`
	SubstepImages        []SubstepImage        `json:"substep_images,omitempty"`
	SubstepPartTools     []SubstepPartTool     `json:"substep_part_tools,omitempty"`
	SubstepNotes         []SubstepNote         `json:"substep_notes,omitempty"`
	SubstepDescriptions  []SubstepDescription  `json:"substep_descriptions,omitempty"`
	SubstepVideoSections []SubstepVideoSection `json:"substep_video_sections,omitempty"`
	SubstepTutorials     []SubstepTutorial     `json:"substep_tutorials,omitempty"`
	PartToolFrameAreas   []PartToolFrameArea   `json:"part_tool_video_frame_areas,omitempty"`
	Drawings             []Drawing             `json:"drawings,omitempty"`
}

// DeletedSet lists ids removed since the last saved baseline.
type DeletedSet struct {
	AssemblyIDs            []string `json:"assembly_ids,omitempty"`
	StepIDs                []string `json:"step_ids,omitempty"`
	SubstepIDs             []string `json:"substep_ids,omitempty"`
	VideoIDs               []string `json:"video_ids,omitempty"`
	VideoSectionIDs        []string `json:"video_section_ids,omitempty"`
	VideoFrameAreaIDs      []string `json:"video_frame_area_ids,omitempty"`
	ViewportKeyframeIDs    []string `json:"viewport_keyframe_ids,omitempty"`
	PartToolIDs            []string `json:"part_tool_ids,omitempty"`
	NoteIDs                []string `json:"note_ids,omitempty"`
	SubstepImageIDs        []string `json:"substep_image_ids,omitempty"`
	SubstepPartToolIDs     []string `json:"substep_part_tool_ids,omitempty"`
	SubstepNoteIDs         []string `json:"substep_note_ids,omitempty"`
	SubstepDescriptionIDs  []string `json:"substep_description_ids,omitempty"`
	SubstepVideoSectionIDs []string `json:"substep_video_section_ids,omitempty"`
	SubstepTutorialIDs     []string `json:"substep_tutorial_ids,omitempty"`
	PartToolFrameAreaIDs   []string `json:"part_tool_video_frame_area_ids,omitempty"`
	DrawingIDs             []string `json:"drawing_ids,omitempty"`
}

// IsEmpty reports whether the delta carries no changed records and no deletions.
func (d Delta) IsEmpty() bool {
	return d.Changed.isEmpty() && d.Deleted.isEmpty()
}

func (c ChangedSet) isEmpty() bool {
	return c.Instruction == nil &&
		len(c.Assemblies) == 0 &&
		len(c.Steps) == 0 &&
		len(c.Substeps) == 0 &&
		len(c.Videos) == 0 &&
		len(c.VideoSections) == 0 &&
		len(c.VideoFrameAreas) == 0 &&
		len(c.ViewportKeyframes) == 0 &&
		len(c.PartTools) == 0 &&
		len(c.Notes) == 0 &&
		len(c.SubstepImages) == 0 &&
		len(c.SubstepPartTools) == 0 &&
		len(c.SubstepNotes) == 0 &&
		len(c.SubstepDescriptions) == 0 &&
		len(c.SubstepVideoSections) == 0 &&
		len(c.SubstepTutorials) == 0 &&
		len(c.PartToolFrameAreas) == 0 &&
		len(c.Drawings) == 0
}

func (d DeletedSet) isEmpty() bool {
	return len(d.AssemblyIDs) == 0 &&
		len(d.StepIDs) == 0 &&
		len(d.SubstepIDs) == 0 &&
		len(d.VideoIDs) == 0 &&
		len(d.VideoSectionIDs) == 0 &&
		len(d.VideoFrameAreaIDs) == 0 &&
		len(d.ViewportKeyframeIDs) == 0 &&
		len(d.PartToolIDs) == 0 &&
		len(d.NoteIDs) == 0 &&
		len(d.SubstepImageIDs) == 0 &&
		len(d.SubstepPartToolIDs) == 0 &&
		len(d.SubstepNoteIDs) == 0 &&
		len(d.SubstepDescriptionIDs) == 0 &&
		len(d.SubstepVideoSectionIDs) == 0 &&
		len(d.SubstepTutorialIDs) == 0 &&
		len(d.PartToolFrameAreaIDs) == 0 &&
		len(d.DrawingIDs) == 0
}
