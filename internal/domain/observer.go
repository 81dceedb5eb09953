package domain

// Observer receives storage events. The engine has no compiled-in
// telemetry sink; callers inject whatever recorder they need.
type Observer interface {
	RecordEvent(event string, fields map[string]string)
}

// Storage event names emitted by the service facade.
const (
	EventNoteCreated     = "note_created"
	EventNoteUpdated     = "note_updated"
	EventNoteDeleted     = "note_deleted"
	EventCategoryDeleted = "category_deleted"
	EventTagDeleted      = "tag_deleted"
	EventDataImported    = "data_imported"
	EventDataCleared     = "data_cleared"
)

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) RecordEvent(string, map[string]string) {}
