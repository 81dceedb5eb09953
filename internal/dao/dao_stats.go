package dao

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/model"

	"github.com/pkg/errors"
)

// Statistics summarizes the dataset with aggregate queries instead of
// loading note rows into memory. Overdue is evaluated against the time
// of this call.
func (d *Dao) Statistics(ctx context.Context) (*domain.Statistics, error) {
	stats := &domain.Statistics{StorageType: d.StorageType()}
	now := time.Now()

	counts := []struct {
		dest  *int
		count func() (int64, error)
	}{
		{&stats.TotalNotes, func() (int64, error) {
			return d.countNotes(ctx, "", nil)
		}},
		{&stats.FavoriteNotes, func() (int64, error) {
			return d.countNotes(ctx, "is_favorite = ?", true)
		}},
		{&stats.ArchivedNotes, func() (int64, error) {
			return d.countNotes(ctx, "is_archived = ?", true)
		}},
		{&stats.NotesWithRemind, func() (int64, error) {
			return d.countNotes(ctx, "remind_at IS NOT NULL", nil)
		}},
		{&stats.OverdueReminders, func() (int64, error) {
			return d.countNotes(ctx, "remind_at IS NOT NULL AND remind_at < ?", now)
		}},
	}
	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			return nil, err
		}
		*c.dest = int(n)
	}

	var categoryCount int64
	if err := d.db.WithContext(ctx).Model(&model.Category{}).Count(&categoryCount).Error; err != nil {
		return nil, errors.Wrap(err, "count categories")
	}
	stats.TotalCategories = int(categoryCount)

	var tagCount int64
	if err := d.db.WithContext(ctx).Model(&model.Tag{}).Count(&tagCount).Error; err != nil {
		return nil, errors.Wrap(err, "count tags")
	}
	stats.TotalTags = int(tagCount)

	if stats.TotalNotes > 0 {
		var avg sql.NullFloat64
		row := d.db.WithContext(ctx).Model(&model.Note{}).
			Select("AVG(LENGTH(content))").Row()
		if err := row.Scan(&avg); err != nil {
			return nil, errors.Wrap(err, "average content length")
		}
		if avg.Valid {
			stats.AvgContentLength = avg.Float64
		}

		// Word counting has no portable SQL form; contents alone are
		// streamed out rather than full rows.
		var contents []string
		err := d.db.WithContext(ctx).Model(&model.Note{}).Pluck("content", &contents).Error
		if err != nil {
			return nil, errors.Wrap(err, "load contents for word count")
		}
		for _, content := range contents {
			stats.TotalWords += len(strings.Fields(content))
		}
	}

	return stats, nil
}

func (d *Dao) countNotes(ctx context.Context, cond string, arg interface{}) (int64, error) {
	q := d.db.WithContext(ctx).Model(&model.Note{})
	if cond != "" {
		if arg != nil {
			q = q.Where(cond, arg)
		} else {
			q = q.Where(cond)
		}
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count notes")
	}
	return count, nil
}
