// Package service implements the engine's consumer-facing facade.
// It owns id generation, timestamps, reference validation, default
// category bootstrap and event recording; persistence semantics live
// in the configured backend.
package service

import (
	"context"
	"time"

	"github.com/haierkeys/note-storage-engine/internal/domain"

	"github.com/google/uuid"
)

// NoteSet carries the writable note fields for create and update.
type NoteSet struct {
	Title      string
	Content    string
	CategoryID string
	TagIDs     []string
	IsFavorite bool
	IsArchived bool
	Color      string
	Priority   domain.Priority
	RemindAt   *time.Time
	Encrypted  bool
}

// CategorySet carries the writable category fields.
type CategorySet struct {
	Name        string
	Description string
	Color       string
	Icon        string
	OrderIndex  int
}

// TagSet carries the writable tag fields.
type TagSet struct {
	Name  string
	Color string
}

// NoteService is the engine facade consumers program against.
type NoteService interface {
	CreateNote(ctx context.Context, set *NoteSet) (*domain.Note, error)
	CreateNotes(ctx context.Context, sets []*NoteSet) ([]*domain.Note, error)
	UpdateNote(ctx context.Context, id string, set *NoteSet) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) error
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	ListNotes(ctx context.Context) ([]*domain.Note, error)
	FilterNotes(ctx context.Context, filter *domain.NoteFilter) ([]*domain.Note, error)
	SearchNotes(ctx context.Context, query string) ([]*domain.Note, error)

	CreateCategory(ctx context.Context, set *CategorySet) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, set *CategorySet) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	CreateTag(ctx context.Context, set *TagSet) (*domain.Tag, error)
	UpdateTag(ctx context.Context, id string, set *TagSet) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	Statistics(ctx context.Context) (*domain.Statistics, error)
	Export(ctx context.Context) (*domain.Snapshot, error)
	Import(ctx context.Context, snapshot *domain.Snapshot) error
	ClearAll(ctx context.Context) error
	Close() error
}

// noteService implements NoteService over a domain.Store.
type noteService struct {
	store    domain.Store
	observer domain.Observer
}

// NewNoteService wraps a backend and guarantees the default category
// exists before any note operation can run. A nil observer disables
// event recording.
func NewNoteService(ctx context.Context, store domain.Store, observer domain.Observer) (NoteService, error) {
	if observer == nil {
		observer = domain.NopObserver{}
	}
	s := &noteService{store: store, observer: observer}
	if err := s.ensureDefaultCategory(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureDefaultCategory creates the reserved default category when missing.
func (s *noteService) ensureDefaultCategory(ctx context.Context) error {
	existing, err := s.store.GetCategory(ctx, domain.DefaultCategoryID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.store.CreateCategory(ctx, &domain.Category{
		ID:        domain.DefaultCategoryID,
		Name:      "General",
		Icon:      "folder",
		CreatedAt: time.Now(),
	})
}

func (s *noteService) record(event string, fields map[string]string) {
	s.observer.RecordEvent(event, fields)
}

func (s *noteService) Close() error {
	return s.store.Close()
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
