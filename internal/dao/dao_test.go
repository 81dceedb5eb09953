package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/note-storage-engine/global"
	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domain.Store = (*Dao)(nil)

func openTestDao(t *testing.T) domain.Store {
	t.Helper()
	db, err := NewDBEngine(global.Database{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "notes.db"),
		MaxIdleConns: 2,
		MaxOpenConns: 2,
	})
	require.NoError(t, err)
	d, err := New(db)
	require.NoError(t, err)
	return d
}

func TestConformance(t *testing.T) {
	storetest.Run(t, openTestDao)
}

func TestCounterProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("property test")
	}
	storetest.RunCounterProperties(t, openTestDao)
}

// A failure in the middle of an import must roll the whole replacement
// back, leaving the pre-import dataset intact.
func TestImportFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openTestDao(t)
	defer s.Close()

	now := time.Now()
	require.NoError(t, s.CreateCategory(ctx, &domain.Category{
		ID: domain.DefaultCategoryID, Name: "General", CreatedAt: now,
	}))
	require.NoError(t, s.CreateNote(ctx, &domain.Note{
		ID: "note_keep", Title: "keep me", CategoryID: domain.DefaultCategoryID,
		Priority: domain.PriorityMedium, SyncStatus: domain.SyncStatusLocal,
		CreatedAt: now, UpdatedAt: now,
	}))

	// Duplicate note ids pass shape validation but violate the primary
	// key on insert, failing the transaction partway through.
	bad := &domain.Snapshot{
		ExportVersion: domain.SnapshotVersion,
		Categories: []domain.SnapshotCategory{
			{ID: domain.DefaultCategoryID, Name: "General", CreatedAt: now},
		},
		Notes: []domain.SnapshotNote{
			{ID: "note_dup", Title: "a", CategoryID: domain.DefaultCategoryID, CreatedAt: now, UpdatedAt: now},
			{ID: "note_dup", Title: "b", CategoryID: domain.DefaultCategoryID, CreatedAt: now, UpdatedAt: now},
		},
	}
	require.Error(t, s.Import(ctx, bad))

	note, err := s.GetNote(ctx, "note_keep")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "keep me", note.Title)
}

func TestStorageTypeIsDialectorName(t *testing.T) {
	s := openTestDao(t)
	defer s.Close()

	stats, err := s.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", stats.StorageType)
}

func TestUnsupportedDatabaseType(t *testing.T) {
	_, err := NewDBEngine(global.Database{Type: "oracle"})
	require.Error(t, err)
}
