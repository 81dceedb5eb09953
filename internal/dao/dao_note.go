package dao

import (
	"context"
	"strings"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateNote inserts the note row and its tag associations in one transaction.
func (d *Dao) CreateNote(ctx context.Context, note *domain.Note) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createNoteTx(tx, note)
	})
}

// CreateNotes inserts a batch of notes inside a single transaction,
// so the batch applies all-or-nothing.
func (d *Dao) CreateNotes(ctx context.Context, notes []*domain.Note) error {
	if len(notes) == 0 {
		return nil
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, note := range notes {
			if err := createNoteTx(tx, note); err != nil {
				return err
			}
		}
		return nil
	})
}

func createNoteTx(tx *gorm.DB, note *domain.Note) error {
	if err := tx.Create(toModelNote(note)).Error; err != nil {
		return errors.Wrap(err, "create note")
	}
	return replaceNoteTags(tx, note.ID, note.TagIDs)
}

// UpdateNote rewrites the note row and replaces its tag associations.
// Association replacement (delete all junction rows, insert the new
// set) runs in the same transaction as the row update.
func (d *Dao) UpdateNote(ctx context.Context, note *domain.Note) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(toModelNote(note)).Error; err != nil {
			return errors.Wrap(err, "update note")
		}
		if err := tx.Where("note_id = ?", note.ID).Delete(&model.NoteTag{}).Error; err != nil {
			return errors.Wrap(err, "clear note tags")
		}
		return replaceNoteTags(tx, note.ID, note.TagIDs)
	})
}

// DeleteNote removes the note row and its tag associations.
func (d *Dao) DeleteNote(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", id).Delete(&model.NoteTag{}).Error; err != nil {
			return errors.Wrap(err, "delete note tags")
		}
		if err := tx.Where("id = ?", id).Delete(&model.Note{}).Error; err != nil {
			return errors.Wrap(err, "delete note")
		}
		return nil
	})
}

// GetNote returns the note or (nil, nil) when the id is unknown.
func (d *Dao) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	var m model.Note
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get note")
	}

	var tagIDs []string
	err = d.db.WithContext(ctx).Model(&model.NoteTag{}).
		Where("note_id = ?", id).Order("tag_id").Pluck("tag_id", &tagIDs).Error
	if err != nil {
		return nil, errors.Wrap(err, "get note tags")
	}
	return toDomainNote(&m, tagIDs), nil
}

// GetNotes returns all notes, newest update first.
func (d *Dao) GetNotes(ctx context.Context) ([]*domain.Note, error) {
	return d.findNotes(ctx, d.db.WithContext(ctx).Model(&model.Note{}))
}

// GetNotesFiltered assembles a WHERE clause from only the filters
// supplied, each one a parameterized condition joined with AND.
func (d *Dao) GetNotesFiltered(ctx context.Context, filter *domain.NoteFilter) ([]*domain.Note, error) {
	q := d.db.WithContext(ctx).Model(&model.Note{})
	if filter != nil {
		if len(filter.CategoryIDs) > 0 {
			q = q.Where("category_id IN ?", filter.CategoryIDs)
		}
		if len(filter.TagIDs) > 0 {
			sub := d.db.Model(&model.NoteTag{}).Select("note_id").Where("tag_id IN ?", filter.TagIDs)
			q = q.Where("id IN (?)", sub)
		}
		if filter.Favorite != nil {
			q = q.Where("is_favorite = ?", *filter.Favorite)
		}
		if filter.Archived != nil {
			q = q.Where("is_archived = ?", *filter.Archived)
		}
		if len(filter.Priorities) > 0 {
			q = q.Where("priority IN ?", filter.Priorities)
		}
	}
	return d.findNotes(ctx, q)
}

// SearchNotes matches the query as a substring of title or content.
// LOWER on both sides pins case-insensitivity regardless of the
// collation the underlying database ships with, matching the embedded
// backend's observable behavior.
func (d *Dao) SearchNotes(ctx context.Context, query string) ([]*domain.Note, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	q := d.db.WithContext(ctx).Model(&model.Note{}).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	return d.findNotes(ctx, q)
}

func (d *Dao) findNotes(ctx context.Context, q *gorm.DB) ([]*domain.Note, error) {
	var rows []model.Note
	if err := q.Order("updated_at DESC, id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find notes")
	}

	ids := make([]string, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	tagsByNote, err := d.loadNoteTags(ctx, ids)
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(rows))
	for i := range rows {
		notes = append(notes, toDomainNote(&rows[i], tagsByNote[rows[i].ID]))
	}
	return notes, nil
}

// loadNoteTags fetches tag associations for a set of notes in one query.
func (d *Dao) loadNoteTags(ctx context.Context, noteIDs []string) (map[string][]string, error) {
	byNote := make(map[string][]string, len(noteIDs))
	if len(noteIDs) == 0 {
		return byNote, nil
	}
	var pairs []model.NoteTag
	err := d.db.WithContext(ctx).
		Where("note_id IN ?", noteIDs).Order("tag_id").Find(&pairs).Error
	if err != nil {
		return nil, errors.Wrap(err, "load note tags")
	}
	for _, pair := range pairs {
		byNote[pair.NoteID] = append(byNote[pair.NoteID], pair.TagID)
	}
	return byNote, nil
}

func replaceNoteTags(tx *gorm.DB, noteID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	pairs := make([]model.NoteTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		pairs = append(pairs, model.NoteTag{NoteID: noteID, TagID: tagID})
	}
	if err := tx.Create(&pairs).Error; err != nil {
		return errors.Wrap(err, "create note tags")
	}
	return nil
}
