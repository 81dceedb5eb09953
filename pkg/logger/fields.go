// Package logger holds shared log field name constants.
// Keeping the names in one place keeps log output queryable.
package logger

const (
	// FieldNoteID note id field
	FieldNoteID = "noteId"

	// FieldCategoryID category id field
	FieldCategoryID = "categoryId"

	// FieldTagID tag id field
	FieldTagID = "tagId"

	// FieldEvent storage event name field
	FieldEvent = "event"

	// FieldBackend storage backend identifier field
	FieldBackend = "backend"

	// FieldCount affected record count field
	FieldCount = "count"

	// FieldQuery search query field
	FieldQuery = "query"

	// FieldDuration operation duration field
	FieldDuration = "duration"

	// FieldError error message field
	FieldError = "error"
)
