package domain

import "time"

// Tag labels notes. UsageCount is derived the same way as
// Category.NoteCount: recomputed from the live note set at read time.
type Tag struct {
	ID         string
	Name       string
	Color      string
	UsageCount int
	CreatedAt  time.Time
}
