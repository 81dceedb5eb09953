package domain

import "context"

// Store is the storage contract both backends implement identically.
// Get-by-id methods return (nil, nil) when the id is missing; only
// infrastructure failures and the coded business errors in pkg/code
// surface as errors.
type Store interface {
	// Notes
	CreateNote(ctx context.Context, note *Note) error
	CreateNotes(ctx context.Context, notes []*Note) error
	UpdateNote(ctx context.Context, note *Note) error
	DeleteNote(ctx context.Context, id string) error
	GetNote(ctx context.Context, id string) (*Note, error)
	GetNotes(ctx context.Context) ([]*Note, error)
	GetNotesFiltered(ctx context.Context, filter *NoteFilter) ([]*Note, error)
	SearchNotes(ctx context.Context, query string) ([]*Note, error)

	// Categories
	CreateCategory(ctx context.Context, category *Category) error
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id string) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	GetCategories(ctx context.Context) ([]*Category, error)

	// Tags
	CreateTag(ctx context.Context, tag *Tag) error
	UpdateTag(ctx context.Context, tag *Tag) error
	DeleteTag(ctx context.Context, id string) error
	GetTag(ctx context.Context, id string) (*Tag, error)
	GetTags(ctx context.Context) ([]*Tag, error)

	// Utility
	ClearAll(ctx context.Context) error
	Statistics(ctx context.Context) (*Statistics, error)
	Export(ctx context.Context) (*Snapshot, error)
	Import(ctx context.Context, snapshot *Snapshot) error
	Close() error
}
