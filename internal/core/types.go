package core

import "instructcore/pkg/domain"

type (
	EntityType          = domain.EntityType
	ElementType         = domain.ElementType
	Instruction         = domain.Instruction
	Assembly            = domain.Assembly
	Step                = domain.Step
	Substep             = domain.Substep
	Video               = domain.Video
	VideoSection        = domain.VideoSection
	VideoFrameArea      = domain.VideoFrameArea
	ViewportKeyframe    = domain.ViewportKeyframe
	CropRect            = domain.CropRect
	PartTool            = domain.PartTool
	PartToolKind        = domain.PartToolKind
	Note                = domain.Note
	SubstepImage        = domain.SubstepImage
	SubstepPartTool     = domain.SubstepPartTool
	SubstepNote         = domain.SubstepNote
	SubstepDescription  = domain.SubstepDescription
	SubstepVideoSection = domain.SubstepVideoSection
	SubstepTutorial     = domain.SubstepTutorial
	PartToolFrameArea   = domain.PartToolFrameArea
	Drawing             = domain.Drawing
	DrawingShapeKind    = domain.DrawingShapeKind
	DrawingPoint        = domain.DrawingPoint
	Snapshot            = domain.Snapshot
	StepChunk           = domain.StepChunk
	StepLoadingState    = domain.StepLoadingState
	Delta               = domain.Delta
	ChangedSet          = domain.ChangedSet
	DeletedSet          = domain.DeletedSet
	EventAction         = domain.EventAction
	EventPayload        = domain.EventPayload
	EventRecorder       = domain.EventRecorder
	PersistentStore     = domain.PersistentStore
)

const (
	EntityAssembly            = domain.EntityAssembly
	EntityStep                = domain.EntityStep
	EntitySubstep             = domain.EntitySubstep
	EntityVideo               = domain.EntityVideo
	EntityVideoSection        = domain.EntityVideoSection
	EntityVideoFrameArea      = domain.EntityVideoFrameArea
	EntityViewportKeyframe    = domain.EntityViewportKeyframe
	EntityPartTool            = domain.EntityPartTool
	EntityNote                = domain.EntityNote
	EntitySubstepImage        = domain.EntitySubstepImage
	EntitySubstepPartTool     = domain.EntitySubstepPartTool
	EntitySubstepNote         = domain.EntitySubstepNote
	EntitySubstepDescription  = domain.EntitySubstepDescription
	EntitySubstepVideoSection = domain.EntitySubstepVideoSection
	EntitySubstepTutorial     = domain.EntitySubstepTutorial
	EntityPartToolFrameArea   = domain.EntityPartToolFrameArea
	EntityDrawing             = domain.EntityDrawing
)

const (
	ElementImage        = domain.ElementImage
	ElementVideoSection = domain.ElementVideoSection
	ElementPartTool     = domain.ElementPartTool
	ElementNote         = domain.ElementNote
	ElementDescription  = domain.ElementDescription
	ElementTutorial     = domain.ElementTutorial
)

const (
	PartToolKindPart = domain.PartToolKindPart
	PartToolKindTool = domain.PartToolKindTool
)

const (
	DrawingShapeArrow     = domain.DrawingShapeArrow
	DrawingShapeRectangle = domain.DrawingShapeRectangle
	DrawingShapeEllipse   = domain.DrawingShapeEllipse
	DrawingShapeFreehand  = domain.DrawingShapeFreehand
)

const (
	EventCreate = domain.EventCreate
	EventDelete = domain.EventDelete
)
