package kv

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/haierkeys/note-storage-engine/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

// Statistics summarizes the dataset with one linear scan of the note
// collection. Overdue is evaluated against the time of this call.
func (s *Store) Statistics(ctx context.Context) (*domain.Statistics, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	stats := &domain.Statistics{StorageType: StorageType}
	now := time.Now()
	totalContentLength := 0

	err := s.scan(bucketNotes, func(data []byte) error {
		var record noteRecord
		if err := sonic.Unmarshal(data, &record); err != nil {
			return errors.Wrap(err, "decode note")
		}
		note := record.ToNote()
		stats.TotalNotes++
		if note.IsFavorite {
			stats.FavoriteNotes++
		}
		if note.IsArchived {
			stats.ArchivedNotes++
		}
		if note.RemindAt != nil {
			stats.NotesWithRemind++
			if note.IsOverdue(now) {
				stats.OverdueReminders++
			}
		}
		totalContentLength += utf8.RuneCountInString(note.Content)
		stats.TotalWords += len(strings.Fields(note.Content))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if stats.TotalNotes > 0 {
		stats.AvgContentLength = float64(totalContentLength) / float64(stats.TotalNotes)
	}

	err = s.db.View(func(tx *bolt.Tx) error {
		stats.TotalCategories = tx.Bucket(bucketCategories).Stats().KeyN
		stats.TotalTags = tx.Bucket(bucketTags).Stats().KeyN
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "bucket stats")
	}
	return stats, nil
}

// ClearAll drops and recreates every entity bucket.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	return s.clearAllLocked()
}

func (s *Store) clearAllLocked() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketNotes, bucketCategories, bucketTags} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

// Export builds a full-dataset snapshot.
func (s *Store) Export(ctx context.Context) (*domain.Snapshot, error) {
	notes, err := s.GetNotes(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := s.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.Snapshot{
		ExportTimestamp: time.Now(),
		ExportVersion:   domain.SnapshotVersion,
		StorageType:     StorageType,
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

// Import validates the snapshot before the destructive clear, then
// loads categories, tags and notes in dependency order.
func (s *Store) Import(ctx context.Context, snapshot *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if err := s.clearAllLocked(); err != nil {
		return err
	}
	for i := range snapshot.Categories {
		record := categoryRecord{SnapshotCategory: snapshot.Categories[i]}
		if err := s.put(bucketCategories, record.ID, record); err != nil {
			return err
		}
	}
	for i := range snapshot.Tags {
		record := tagRecord{SnapshotTag: snapshot.Tags[i]}
		if err := s.put(bucketTags, record.ID, record); err != nil {
			return err
		}
	}
	for i := range snapshot.Notes {
		if err := s.createNoteLocked(snapshot.Notes[i].ToNote()); err != nil {
			return err
		}
	}
	return nil
}
