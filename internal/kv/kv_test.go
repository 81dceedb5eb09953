package kv

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domain.Store = (*Store)(nil)

func openTestStore(t *testing.T) domain.Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "notes.bolt"))
	require.NoError(t, err)
	return s
}

func TestConformance(t *testing.T) {
	storetest.Run(t, openTestStore)
}

func TestCounterProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("property test")
	}
	storetest.RunCounterProperties(t, openTestStore)
}

// Data written before Close must be readable after reopening the file.
func TestReopenPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.bolt")

	s, err := Open(path)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, s.CreateCategory(ctx, &domain.Category{
		ID: domain.DefaultCategoryID, Name: "General", CreatedAt: now,
	}))
	require.NoError(t, s.CreateNote(ctx, &domain.Note{
		ID: "note_1", Title: "survives restart", CategoryID: domain.DefaultCategoryID,
		Priority: domain.PriorityMedium, SyncStatus: domain.SyncStatusLocal,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	note, err := reopened.GetNote(ctx, "note_1")
	require.NoError(t, err)
	require.NotNil(t, note)
	assert.Equal(t, "survives restart", note.Title)
}

func TestStorageTypeTag(t *testing.T) {
	s := openTestStore(t)
	defer s.Close()

	stats, err := s.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StorageType, stats.StorageType)
}

// Stored counters may drift behind a crash between cascade steps;
// listings recompute from the note collection and must not expose the
// drift.
func TestListingsIgnoreStoredCounters(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t).(*Store)
	defer s.Close()

	now := time.Now()
	require.NoError(t, s.CreateCategory(ctx, &domain.Category{
		ID: domain.DefaultCategoryID, Name: "General", CreatedAt: now,
	}))
	require.NoError(t, s.CreateTag(ctx, &domain.Tag{ID: "tag_a", Name: "alpha", CreatedAt: now}))
	require.NoError(t, s.CreateNote(ctx, &domain.Note{
		ID: "note_1", Title: "t", CategoryID: domain.DefaultCategoryID,
		TagIDs: []string{"tag_a"}, Priority: domain.PriorityMedium,
		SyncStatus: domain.SyncStatusLocal, CreatedAt: now, UpdatedAt: now,
	}))

	// Corrupt the stored counter directly
	require.NoError(t, s.adjustTagUsage("tag_a", 40))

	tag, err := s.GetTag(ctx, "tag_a")
	require.NoError(t, err)
	assert.Equal(t, 1, tag.UsageCount)

	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, 1, tags[0].UsageCount)
}
