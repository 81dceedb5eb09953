package dao

import (
	"context"
	"strings"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/model"
	"github.com/haierkeys/note-storage-engine/pkg/code"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateCategory inserts a category after the case-insensitive
// duplicate-name check.
func (d *Dao) CreateCategory(ctx context.Context, category *domain.Category) error {
	if err := d.checkCategoryName(ctx, category.Name, ""); err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Create(toModelCategory(category)).Error; err != nil {
		return errors.Wrap(err, "create category")
	}
	return nil
}

// UpdateCategory rewrites a category. The duplicate-name check excludes
// the category itself so renames that only change case still work.
func (d *Dao) UpdateCategory(ctx context.Context, category *domain.Category) error {
	if err := d.checkCategoryName(ctx, category.Name, category.ID); err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Save(toModelCategory(category)).Error; err != nil {
		return errors.Wrap(err, "update category")
	}
	return nil
}

// DeleteCategory reassigns the category's notes to the default category
// and deletes the row, both inside one transaction.
func (d *Dao) DeleteCategory(ctx context.Context, id string) error {
	if id == domain.DefaultCategoryID {
		return code.ErrProtectedEntity.WithDetails("category " + id)
	}
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Note{}).
			Where("category_id = ?", id).
			Update("category_id", domain.DefaultCategoryID).Error
		if err != nil {
			return errors.Wrap(err, "reassign notes to default category")
		}
		if err := tx.Where("id = ?", id).Delete(&model.Category{}).Error; err != nil {
			return errors.Wrap(err, "delete category")
		}
		return nil
	})
}

// GetCategory returns the category with its live note count, or
// (nil, nil) when the id is unknown.
func (d *Dao) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var m model.Category
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get category")
	}

	var count int64
	err = d.db.WithContext(ctx).Model(&model.Note{}).
		Where("category_id = ?", id).Count(&count).Error
	if err != nil {
		return nil, errors.Wrap(err, "count category notes")
	}
	return toDomainCategory(&m, int(count)), nil
}

// GetCategories returns all categories annotated with live note counts,
// ordered by order index then name. Counts come from one aggregate
// query over the notes table, never from a stored field.
func (d *Dao) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	var rows []model.Category
	err := d.db.WithContext(ctx).Order("order_index, name").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "find categories")
	}

	type categoryCount struct {
		CategoryID string
		Total      int
	}
	var counts []categoryCount
	err = d.db.WithContext(ctx).Model(&model.Note{}).
		Select("category_id, COUNT(*) AS total").
		Group("category_id").Scan(&counts).Error
	if err != nil {
		return nil, errors.Wrap(err, "count notes per category")
	}
	byCategory := make(map[string]int, len(counts))
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Total
	}

	categories := make([]*domain.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, toDomainCategory(&rows[i], byCategory[rows[i].ID]))
	}
	return categories, nil
}

// checkCategoryName fails with a duplicate-name error when another
// category matches the candidate name case-insensitively.
func (d *Dao) checkCategoryName(ctx context.Context, name string, excludeID string) error {
	if strings.TrimSpace(name) == "" {
		return code.ErrNameRequired
	}
	q := d.db.WithContext(ctx).Model(&model.Category{}).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return errors.Wrap(err, "check category name")
	}
	if count > 0 {
		return code.ErrDuplicateName.WithDetails("category " + name)
	}
	return nil
}
