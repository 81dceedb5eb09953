package service

import (
	"context"
	"time"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/pkg/logger"
)

// CreateCategory assigns an id and persists the category. Duplicate
// names (case-insensitive) are rejected by the backend.
func (s *noteService) CreateCategory(ctx context.Context, set *CategorySet) (*domain.Category, error) {
	category := &domain.Category{
		ID:          newID("cat"),
		Name:        set.Name,
		Description: set.Description,
		Color:       set.Color,
		Icon:        set.Icon,
		OrderIndex:  set.OrderIndex,
		CreatedAt:   time.Now(),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory applies the set to an existing category. A missing id
// yields (nil, nil).
func (s *noteService) UpdateCategory(ctx context.Context, id string, set *CategorySet) (*domain.Category, error) {
	existing, err := s.store.GetCategory(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	category := &domain.Category{
		ID:          id,
		Name:        set.Name,
		Description: set.Description,
		Color:       set.Color,
		Icon:        set.Icon,
		OrderIndex:  set.OrderIndex,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category after the backend runs its
// reassign-to-default cascade. The default category is protected.
func (s *noteService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.record(domain.EventCategoryDeleted, map[string]string{logger.FieldCategoryID: id})
	return nil
}

func (s *noteService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.store.GetCategory(ctx, id)
}

func (s *noteService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.store.GetCategories(ctx)
}

// CreateTag assigns an id and persists the tag.
func (s *noteService) CreateTag(ctx context.Context, set *TagSet) (*domain.Tag, error) {
	tag := &domain.Tag{
		ID:        newID("tag"),
		Name:      set.Name,
		Color:     set.Color,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag applies the set to an existing tag. A missing id yields
// (nil, nil).
func (s *noteService) UpdateTag(ctx context.Context, id string, set *TagSet) (*domain.Tag, error) {
	existing, err := s.store.GetTag(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	tag := &domain.Tag{
		ID:        id,
		Name:      set.Name,
		Color:     set.Color,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes the tag after the backend strips it from every note.
func (s *noteService) DeleteTag(ctx context.Context, id string) error {
	if err := s.store.DeleteTag(ctx, id); err != nil {
		return err
	}
	s.record(domain.EventTagDeleted, map[string]string{logger.FieldTagID: id})
	return nil
}

func (s *noteService) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	return s.store.GetTag(ctx, id)
}

func (s *noteService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.GetTags(ctx)
}
