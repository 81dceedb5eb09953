package service

import (
	"context"
	"strconv"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/pkg/logger"
)

func (s *noteService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	return s.store.Statistics(ctx)
}

func (s *noteService) Export(ctx context.Context) (*domain.Snapshot, error) {
	return s.store.Export(ctx)
}

// Import replaces all data with the snapshot, then re-establishes the
// default category in case the snapshot predates it.
func (s *noteService) Import(ctx context.Context, snapshot *domain.Snapshot) error {
	if err := s.store.Import(ctx, snapshot); err != nil {
		return err
	}
	if err := s.ensureDefaultCategory(ctx); err != nil {
		return err
	}
	s.record(domain.EventDataImported, map[string]string{
		logger.FieldCount: strconv.Itoa(len(snapshot.Notes)),
	})
	return nil
}

// ClearAll wipes the dataset and restores the default category.
func (s *noteService) ClearAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return err
	}
	if err := s.ensureDefaultCategory(ctx); err != nil {
		return err
	}
	s.record(domain.EventDataCleared, nil)
	return nil
}
