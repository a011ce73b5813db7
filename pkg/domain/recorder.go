package domain

// EventAction indicates the lifecycle transition reported to the event recorder.
type EventAction string

// Recorder actions. Updates are intentionally not reported.
const (
	// EventCreate is emitted after a record is inserted into the graph.
	EventCreate EventAction = "create"
	// EventDelete is emitted after a record is removed, with the row snapshot
	// taken before removal.
	EventDelete EventAction = "delete"
)

// EventRecorder is the single injectable audit callback. It is invoked
// synchronously by add/delete mutations only; updates, snapshot restores, and
// progressive loads never fire it. One listener slot exists per store.
type EventRecorder func(entity EntityType, id string, action EventAction, payload EventPayload)
