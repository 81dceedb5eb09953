package kv

import (
	"context"
	"sort"
	"strings"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// CreateCategory inserts a category after a case-insensitive linear
// scan for a duplicate name.
func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	if err := s.checkCategoryName(category.Name, ""); err != nil {
		return err
	}
	return s.put(bucketCategories, category.ID, categoryRecord{
		SnapshotCategory: domain.FromCategory(category),
		NoteCount:        category.NoteCount,
	})
}

// UpdateCategory rewrites a category, excluding itself from the
// duplicate-name check.
func (s *Store) UpdateCategory(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	if err := s.checkCategoryName(category.Name, category.ID); err != nil {
		return err
	}
	return s.put(bucketCategories, category.ID, categoryRecord{
		SnapshotCategory: domain.FromCategory(category),
		NoteCount:        category.NoteCount,
	})
}

// DeleteCategory rewrites every note of the category to the default
// category, then deletes the category record. Each rewrite is its own
// write; there is no transaction spanning the steps.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	if id == domain.DefaultCategoryID {
		return code.ErrProtectedEntity.WithDetails("category " + id)
	}

	notes, err := s.collectNotes(func(n *domain.Note) bool {
		return n.CategoryID == id
	})
	if err != nil {
		return err
	}
	for _, note := range notes {
		note.CategoryID = domain.DefaultCategoryID
		if err := s.put(bucketNotes, note.ID, domain.FromNote(note)); err != nil {
			return err
		}
	}
	return s.delete(bucketCategories, id)
}

// GetCategory returns the category with its note count recomputed from
// the live note collection, or (nil, nil) when the id is unknown.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	var record categoryRecord
	existed, err := s.get(bucketCategories, id, &record)
	if err != nil || !existed {
		return nil, err
	}
	counts, err := s.noteCountByCategory()
	if err != nil {
		return nil, err
	}
	category := record.ToCategory()
	category.NoteCount = counts[id]
	return category, nil
}

// GetCategories returns all categories with note counts recomputed by
// scanning the note collection, sorted by order index then name.
// Stored counters are ignored to avoid drift.
func (s *Store) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	counts, err := s.noteCountByCategory()
	if err != nil {
		return nil, err
	}

	categories := []*domain.Category{}
	err = s.scan(bucketCategories, func(data []byte) error {
		var record categoryRecord
		if err := sonic.Unmarshal(data, &record); err != nil {
			return errors.Wrap(err, "decode category")
		}
		category := record.ToCategory()
		category.NoteCount = counts[category.ID]
		categories = append(categories, category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].OrderIndex != categories[j].OrderIndex {
			return categories[i].OrderIndex < categories[j].OrderIndex
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (s *Store) noteCountByCategory() (map[string]int, error) {
	counts := map[string]int{}
	err := s.scan(bucketNotes, func(data []byte) error {
		var record noteRecord
		if err := sonic.Unmarshal(data, &record); err != nil {
			return errors.Wrap(err, "decode note")
		}
		counts[record.CategoryID]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *Store) checkCategoryName(name string, excludeID string) error {
	if strings.TrimSpace(name) == "" {
		return code.ErrNameRequired
	}
	duplicate := false
	err := s.scan(bucketCategories, func(data []byte) error {
		var record categoryRecord
		if err := sonic.Unmarshal(data, &record); err != nil {
			return errors.Wrap(err, "decode category")
		}
		if record.ID != excludeID && strings.EqualFold(record.Name, name) {
			duplicate = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if duplicate {
		return code.ErrDuplicateName.WithDetails("category " + name)
	}
	return nil
}
