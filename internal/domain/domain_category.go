package domain

import "time"

// DefaultCategoryID is the reserved id of the category that always
// exists and receives notes whose own category is deleted.
const DefaultCategoryID = "cat_default"

// Category groups notes. NoteCount is derived: both backends recompute
// it from the live note set at read time, it is never trusted from storage.
type Category struct {
	ID          string
	Name        string
	Description string
	Color       string
	Icon        string
	OrderIndex  int
	NoteCount   int
	CreatedAt   time.Time
}

// IsDefault reports whether this is the protected default category.
func (c *Category) IsDefault() bool {
	return c.ID == DefaultCategoryID
}
