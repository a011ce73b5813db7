// Package domain defines the normalized instruction entities, wire payload
// types, and persistence contracts used by instructcore.
package domain

// EntityType identifies the type of record stored in the instruction graph.
type EntityType string

// Supported entity type identifiers used in event records and persistence buckets.
const (
	// EntityAssembly identifies an assembly record.
	EntityAssembly EntityType = "assembly"
	// EntityStep identifies a step record.
	EntityStep EntityType = "step"
	// EntitySubstep identifies a substep record.
	EntitySubstep EntityType = "substep"
	// EntityVideo identifies a video record.
	EntityVideo EntityType = "video"
	// EntityVideoSection identifies a video section record.
	EntityVideoSection EntityType = "video_section"
	// EntityVideoFrameArea identifies a video frame area record.
	EntityVideoFrameArea EntityType = "video_frame_area"
	// EntityViewportKeyframe identifies a viewport keyframe record.
	EntityViewportKeyframe EntityType = "viewport_keyframe"
	// EntityPartTool identifies a shared part/tool catalog record.
	EntityPartTool EntityType = "part_tool"
	// EntityNote identifies a shared note catalog record.
	EntityNote EntityType = "note"
	// EntitySubstepImage identifies a substep image link record.
	EntitySubstepImage EntityType = "substep_image"
	// EntitySubstepPartTool identifies a substep part/tool link record.
	EntitySubstepPartTool EntityType = "substep_part_tool"
	// EntitySubstepNote identifies a substep note link record.
	EntitySubstepNote EntityType = "substep_note"
	// EntitySubstepDescription identifies a substep description record.
	EntitySubstepDescription EntityType = "substep_description"
	// EntitySubstepVideoSection identifies a substep video section link record.
	EntitySubstepVideoSection EntityType = "substep_video_section"
	// EntitySubstepTutorial identifies a substep tutorial reference record.
	EntitySubstepTutorial EntityType = "substep_tutorial"
	// EntityPartToolFrameArea identifies a part/tool to frame area link record.
	EntityPartToolFrameArea EntityType = "part_tool_video_frame_area"
	// EntityDrawing identifies a free-form drawing record.
	EntityDrawing EntityType = "drawing"
)

// ElementType names one of the six ordered element categories of a substep.
type ElementType string

// Substep element categories accepted by reorder operations.
const (
	ElementImage        ElementType = "image"
	ElementVideoSection ElementType = "video_section"
	ElementPartTool     ElementType = "part_tool"
	ElementNote         ElementType = "note"
	ElementDescription  ElementType = "description"
	ElementTutorial     ElementType = "tutorial"
)

// Instruction is the singleton document header. It has no id of its own and is
// tracked through a dirty flag instead of a changed-id set.
type Instruction struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	PreviewImageID string `json:"preview_image_id"`
}

// Assembly groups an ordered sequence of steps.
type Assembly struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Order   int      `json:"order"`
	StepIDs []string `json:"step_ids"`
}

// Step is a single work instruction step. AssemblyID is a weak reference and is
// nulled, not cascaded, when the owning assembly disappears.
type Step struct {
	ID         string   `json:"id"`
	AssemblyID *string  `json:"assembly_id"`
	Name       string   `json:"name"`
	Order      int      `json:"order"`
	SubstepIDs []string `json:"substep_ids"`
}

// Substep holds the six ordered element arrays that make up the visible content
// of a step. StepID is a weak reference.
type Substep struct {
	ID              string   `json:"id"`
	StepID          *string  `json:"step_id"`
	Order           int      `json:"order"`
	RepeatCount     int      `json:"repeat_count"`
	RepeatLabel     string   `json:"repeat_label"`
	ImageIDs        []string `json:"image_ids"`
	VideoSectionIDs []string `json:"video_section_ids"`
	PartToolIDs     []string `json:"part_tool_ids"`
	NoteIDs         []string `json:"note_ids"`
	DescriptionIDs  []string `json:"description_ids"`
	TutorialIDs     []string `json:"tutorial_ids"`
}

// Video is a source recording with its derived sections, crop areas, and
// viewport keyframes.
type Video struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	MediaKey            string   `json:"media_key"`
	FrameCount          int      `json:"frame_count"`
	SectionIDs          []string `json:"section_ids"`
	FrameAreaIDs        []string `json:"frame_area_ids"`
	ViewportKeyframeIDs []string `json:"viewport_keyframe_ids"`
}

// VideoSection is a contiguous frame range of a video.
type VideoSection struct {
	ID         string `json:"id"`
	VideoID    string `json:"video_id"`
	Name       string `json:"name"`
	StartFrame int    `json:"start_frame"`
	EndFrame   int    `json:"end_frame"`
}

// CropRect describes a rectangular region inside a video frame.
type CropRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// VideoFrameArea marks a cropped region on a single frame, typically used to
// highlight a part or tool.
type VideoFrameArea struct {
	ID          string   `json:"id"`
	VideoID     string   `json:"video_id"`
	FrameNumber int      `json:"frame_number"`
	Crop        CropRect `json:"crop"`
}

// ViewportKeyframe pins the visible viewport at a frame. The keyframe at frame
// zero is the video's protected default and cannot be removed.
type ViewportKeyframe struct {
	ID          string   `json:"id"`
	VideoID     string   `json:"video_id"`
	FrameNumber int      `json:"frame_number"`
	Crop        CropRect `json:"crop"`
}

// PartToolKind distinguishes catalog entries that are parts from tools.
type PartToolKind string

// Catalog kinds for PartTool records.
const (
	PartToolKindPart PartToolKind = "part"
	PartToolKindTool PartToolKind = "tool"
)

// PartTool is a shared catalog record referenced by substep links. It is never
// cascade-deleted by substep removal.
type PartTool struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Kind     PartToolKind `json:"kind"`
	MediaKey string       `json:"media_key"`
}

// Note is a shared catalog record referenced by substep links.
type Note struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// SubstepImage links a substep to an image asset plus per-link metadata.
type SubstepImage struct {
	ID        string `json:"id"`
	SubstepID string `json:"substep_id"`
	MediaKey  string `json:"media_key"`
	Caption   string `json:"caption"`
	Order     int    `json:"order"`
}

// SubstepPartTool links a substep to a catalog part/tool with an amount.
type SubstepPartTool struct {
	ID         string `json:"id"`
	SubstepID  string `json:"substep_id"`
	PartToolID string `json:"part_tool_id"`
	Amount     int    `json:"amount"`
	Order      int    `json:"order"`
}

// SubstepNote links a substep to a catalog note.
type SubstepNote struct {
	ID        string `json:"id"`
	SubstepID string `json:"substep_id"`
	NoteID    string `json:"note_id"`
	Order     int    `json:"order"`
}

// SubstepDescription is a per-substep description paragraph.
type SubstepDescription struct {
	ID        string `json:"id"`
	SubstepID string `json:"substep_id"`
	Text      string `json:"text"`
	Order     int    `json:"order"`
}

// SubstepVideoSection links a substep to a shared video section.
type SubstepVideoSection struct {
	ID             string `json:"id"`
	SubstepID      string `json:"substep_id"`
	VideoSectionID string `json:"video_section_id"`
	Order          int    `json:"order"`
}

// SubstepTutorial links a substep to an external tutorial or reference.
type SubstepTutorial struct {
	ID        string `json:"id"`
	SubstepID string `json:"substep_id"`
	Reference string `json:"reference"`
	Order     int    `json:"order"`
}

// PartToolFrameArea links a substep part/tool row to a video frame area that
// highlights it. The row is owned by its SubstepPartTool and cascades with it.
type PartToolFrameArea struct {
	ID                string `json:"id"`
	SubstepPartToolID string `json:"substep_part_tool_id"`
	VideoFrameAreaID  string `json:"video_frame_area_id"`
}

// DrawingShapeKind enumerates supported drawing primitives.
type DrawingShapeKind string

// Drawing shape kinds carried opaquely by the store.
const (
	DrawingShapeArrow     DrawingShapeKind = "arrow"
	DrawingShapeRectangle DrawingShapeKind = "rectangle"
	DrawingShapeEllipse   DrawingShapeKind = "ellipse"
	DrawingShapeFreehand  DrawingShapeKind = "freehand"
)

// DrawingPoint is a single coordinate of a drawing shape.
type DrawingPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drawing is a free shape attached either to a substep image or to a substep's
// video timeline (exactly one of SubstepImageID / SubstepID is set). Geometry is
// carried opaquely; the store never interprets it.
type Drawing struct {
	ID             string           `json:"id"`
	SubstepImageID *string          `json:"substep_image_id"`
	SubstepID      *string          `json:"substep_id"`
	FrameNumber    int              `json:"frame_number"`
	Kind           DrawingShapeKind `json:"kind"`
	Points         []DrawingPoint   `json:"points"`
	Color          string           `json:"color"`
}
