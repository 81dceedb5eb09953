package dao

import (
	"context"
	"time"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ClearAll deletes every row of every engine table in one transaction.
func (d *Dao) ClearAll(ctx context.Context) error {
	return d.db.WithContext(ctx).Transaction(clearAllTx)
}

func clearAllTx(tx *gorm.DB) error {
	for _, m := range []interface{}{&model.NoteTag{}, &model.Note{}, &model.Tag{}, &model.Category{}} {
		if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
			return errors.Wrap(err, "clear table")
		}
	}
	return nil
}

// Export builds a full-dataset snapshot.
func (d *Dao) Export(ctx context.Context) (*domain.Snapshot, error) {
	notes, err := d.GetNotes(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := d.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := d.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		ExportTimestamp: time.Now(),
		ExportVersion:   domain.SnapshotVersion,
		StorageType:     d.StorageType(),
	}
	for _, n := range notes {
		snapshot.Notes = append(snapshot.Notes, domain.FromNote(n))
	}
	for _, c := range categories {
		snapshot.Categories = append(snapshot.Categories, domain.FromCategory(c))
	}
	for _, t := range tags {
		snapshot.Tags = append(snapshot.Tags, domain.FromTag(t))
	}
	return snapshot, nil
}

// Import validates the snapshot, then replaces all data in one
// transaction: clear, categories, tags, notes. Validation happens
// before anything destructive runs.
func (d *Dao) Import(ctx context.Context, snapshot *domain.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearAllTx(tx); err != nil {
			return err
		}
		for i := range snapshot.Categories {
			category := snapshot.Categories[i].ToCategory()
			if err := tx.Create(toModelCategory(category)).Error; err != nil {
				return errors.Wrap(err, "import category")
			}
		}
		for i := range snapshot.Tags {
			tag := snapshot.Tags[i].ToTag()
			if err := tx.Create(toModelTag(tag)).Error; err != nil {
				return errors.Wrap(err, "import tag")
			}
		}
		for i := range snapshot.Notes {
			if err := createNoteTx(tx, snapshot.Notes[i].ToNote()); err != nil {
				return err
			}
		}
		return nil
	})
}
