package dao

import (
	"context"
	"sort"
	"strings"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/model"
	"github.com/haierkeys/note-storage-engine/pkg/code"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateTag inserts a tag after the case-insensitive duplicate-name check.
func (d *Dao) CreateTag(ctx context.Context, tag *domain.Tag) error {
	if err := d.checkTagName(ctx, tag.Name, ""); err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Create(toModelTag(tag)).Error; err != nil {
		return errors.Wrap(err, "create tag")
	}
	return nil
}

// UpdateTag rewrites a tag, excluding itself from the duplicate check.
func (d *Dao) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	if err := d.checkTagName(ctx, tag.Name, tag.ID); err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Save(toModelTag(tag)).Error; err != nil {
		return errors.Wrap(err, "update tag")
	}
	return nil
}

// DeleteTag removes the tag row and all of its junction rows in one
// transaction, so the association cascade is atomic with the deletion.
// Notes never need to be touched individually.
func (d *Dao) DeleteTag(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.NoteTag{}).Error; err != nil {
			return errors.Wrap(err, "delete tag associations")
		}
		if err := tx.Where("id = ?", id).Delete(&model.Tag{}).Error; err != nil {
			return errors.Wrap(err, "delete tag")
		}
		return nil
	})
}

// GetTag returns the tag with its live usage count, or (nil, nil) when
// the id is unknown.
func (d *Dao) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	var m model.Tag
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get tag")
	}

	var count int64
	err = d.db.WithContext(ctx).Model(&model.NoteTag{}).
		Where("tag_id = ?", id).Count(&count).Error
	if err != nil {
		return nil, errors.Wrap(err, "count tag usage")
	}
	return toDomainTag(&m, int(count)), nil
}

// GetTags returns all tags annotated with live usage counts, most used
// first, ties broken by name.
func (d *Dao) GetTags(ctx context.Context) ([]*domain.Tag, error) {
	var rows []model.Tag
	if err := d.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "find tags")
	}

	type tagCount struct {
		TagID string
		Total int
	}
	var counts []tagCount
	err := d.db.WithContext(ctx).Model(&model.NoteTag{}).
		Select("tag_id, COUNT(*) AS total").
		Group("tag_id").Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "count tag usage")
	}
	byTag := make(map[string]int, len(counts))
	for _, c := range counts {
		byTag[c.TagID] = c.Total
	}

	tags := make([]*domain.Tag, 0, len(rows))
	for i := range rows {
		tags = append(tags, toDomainTag(&rows[i], byTag[rows[i].ID]))
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].UsageCount != tags[j].UsageCount {
			return tags[i].UsageCount > tags[j].UsageCount
		}
		return tags[i].Name < tags[j].Name
	})
	return tags, nil
}

func (d *Dao) checkTagName(ctx context.Context, name string, excludeID string) error {
	if strings.TrimSpace(name) == "" {
		return code.ErrNameRequired
	}
	q := d.db.WithContext(ctx).Model(&model.Tag{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return errors.Wrap(err, "check tag name")
	}
	if count > 0 {
		return code.ErrDuplicateName.WithDetails("tag " + name)
	}
	return nil
}
