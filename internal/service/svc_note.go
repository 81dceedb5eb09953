package service

import (
	"context"
	"time"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/pkg/code"
	"github.com/haierkeys/note-storage-engine/pkg/logger"
)

// CreateNote validates references, assigns an id and timestamps, and
// persists the note. An empty CategoryID falls back to the default
// category.
func (s *noteService) CreateNote(ctx context.Context, set *NoteSet) (*domain.Note, error) {
	note, err := s.buildNote(ctx, set)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	s.record(domain.EventNoteCreated, map[string]string{logger.FieldNoteID: note.ID})
	return note, nil
}

// CreateNotes persists a batch in one backend call, so the relational
// backend applies it all-or-nothing.
func (s *noteService) CreateNotes(ctx context.Context, sets []*NoteSet) ([]*domain.Note, error) {
	notes := make([]*domain.Note, 0, len(sets))
	for _, set := range sets {
		note, err := s.buildNote(ctx, set)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := s.store.CreateNotes(ctx, notes); err != nil {
		return nil, err
	}
	for _, note := range notes {
		s.record(domain.EventNoteCreated, map[string]string{logger.FieldNoteID: note.ID})
	}
	return notes, nil
}

// UpdateNote applies the set to an existing note, re-stamping
// UpdatedAt. A missing id yields (nil, nil) like every lookup.
func (s *noteService) UpdateNote(ctx context.Context, id string, set *NoteSet) (*domain.Note, error) {
	existing, err := s.store.GetNote(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := s.validateRefs(ctx, set.CategoryID, set.TagIDs); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ID:         id,
		Title:      set.Title,
		Content:    set.Content,
		CategoryID: set.CategoryID,
		TagIDs:     normalizeTagIDs(set.TagIDs),
		IsFavorite: set.IsFavorite,
		IsArchived: set.IsArchived,
		Color:      set.Color,
		Priority:   priorityOrDefault(set.Priority),
		RemindAt:   set.RemindAt,
		Encrypted:  set.Encrypted,
		SyncStatus: existing.SyncStatus,
		LastSynced: existing.LastSynced,
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  time.Now(),
	}
	if note.CategoryID == "" {
		note.CategoryID = domain.DefaultCategoryID
	}
	if note.UpdatedAt.Before(note.CreatedAt) {
		note.UpdatedAt = note.CreatedAt
	}
	if err := s.store.UpdateNote(ctx, note); err != nil {
		return nil, err
	}
	s.record(domain.EventNoteUpdated, map[string]string{logger.FieldNoteID: note.ID})
	return note, nil
}

// DeleteNote removes the note; deleting a missing id is a no-op.
func (s *noteService) DeleteNote(ctx context.Context, id string) error {
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.record(domain.EventNoteDeleted, map[string]string{logger.FieldNoteID: id})
	return nil
}

func (s *noteService) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	return s.store.GetNote(ctx, id)
}

func (s *noteService) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	return s.store.GetNotes(ctx)
}

func (s *noteService) FilterNotes(ctx context.Context, filter *domain.NoteFilter) ([]*domain.Note, error) {
	return s.store.GetNotesFiltered(ctx, filter)
}

func (s *noteService) SearchNotes(ctx context.Context, query string) ([]*domain.Note, error) {
	return s.store.SearchNotes(ctx, query)
}

func (s *noteService) buildNote(ctx context.Context, set *NoteSet) (*domain.Note, error) {
	if err := s.validateRefs(ctx, set.CategoryID, set.TagIDs); err != nil {
		return nil, err
	}
	now := time.Now()
	note := &domain.Note{
		ID:         newID("note"),
		Title:      set.Title,
		Content:    set.Content,
		CategoryID: set.CategoryID,
		TagIDs:     normalizeTagIDs(set.TagIDs),
		IsFavorite: set.IsFavorite,
		IsArchived: set.IsArchived,
		Color:      set.Color,
		Priority:   priorityOrDefault(set.Priority),
		RemindAt:   set.RemindAt,
		Encrypted:  set.Encrypted,
		SyncStatus: domain.SyncStatusLocal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if note.CategoryID == "" {
		note.CategoryID = domain.DefaultCategoryID
	}
	return note, nil
}

// validateRefs checks that the category and every tag id exist, so
// notes never enter storage pointing at unknown entities.
func (s *noteService) validateRefs(ctx context.Context, categoryID string, tagIDs []string) error {
	if categoryID != "" {
		category, err := s.store.GetCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return code.ErrUnknownRef.WithDetails("category " + categoryID)
		}
	}
	for _, tagID := range normalizeTagIDs(tagIDs) {
		tag, err := s.store.GetTag(ctx, tagID)
		if err != nil {
			return err
		}
		if tag == nil {
			return code.ErrUnknownRef.WithDetails("tag " + tagID)
		}
	}
	return nil
}

// normalizeTagIDs drops duplicate ids; TagIDs behaves as a set.
func normalizeTagIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func priorityOrDefault(p domain.Priority) domain.Priority {
	if p == "" {
		return domain.PriorityMedium
	}
	return p
}
