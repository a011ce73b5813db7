package domain

// Snapshot is the full externally-supplied shape of the instruction graph, as
// produced by a snapshot adapter translating row-based storage or a server
// payload. The store treats it as pre-validated input.
type Snapshot struct {
	Instruction          *Instruction                   `json:"instruction,omitempty"`
	Assemblies           map[string]Assembly            `json:"assemblies,omitempty"`
	Steps                map[string]Step                `json:"steps,omitempty"`
	Substeps             map[string]Substep             `json:"substeps,omitempty"`
	Videos               map[string]Video               `json:"videos,omitempty"`
	VideoSections        map[string]VideoSection        `json:"video_sections,omitempty"`
	VideoFrameAreas      map[string]VideoFrameArea      `json:"video_frame_areas,omitempty"`
	ViewportKeyframes    map[string]ViewportKeyframe    `json:"viewport_keyframes,omitempty"`
	PartTools            map[string]PartTool            `json:"part_tools,omitempty"`
	Notes                map[string]Note                `json:"notes,omitempty"`
	SubstepImages        map[string]SubstepImage        `json:"substep_images,omitempty"`
	SubstepPartTools     map[string]SubstepPartTool     `json:"substep_part_tools,omitempty"`
	SubstepNotes         map[string]SubstepNote         `json:"substep_notes,omitempty"`
	SubstepDescriptions  map[string]SubstepDescription  `json:"substep_descriptions,omitempty"`
	SubstepVideoSections map[string]SubstepVideoSection `json:"substep_video_sections,omitempty"`
	SubstepTutorials     map[string]SubstepTutorial     `json:"substep_tutorials,omitempty"`
	PartToolFrameAreas   map[string]PartToolFrameArea   `json:"part_tool_video_frame_areas,omitempty"`
	Drawings             map[string]Drawing             `json:"drawings,omitempty"`
}

// StepChunk is one page of a progressive load. Tables are unioned additively
// into the existing graph; HasMore signals whether further chunks follow.
type StepChunk struct {
	Snapshot
	HasMore bool `json:"has_more"`
}

// StepLoadingState carries pagination metadata for progressive step loading.
// It lives beside the entity graph and never affects change tracking.
type StepLoadingState struct {
	TotalSteps    int  `json:"total_steps"`
	LoadedCount   int  `json:"loaded_count"`
	IsLoadingMore bool `json:"is_loading_more"`
	AllLoaded     bool `json:"all_loaded"`
}
