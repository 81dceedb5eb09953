package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/kv"
	"github.com/haierkeys/note-storage-engine/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	event  string
	fields map[string]string
}

type captureObserver struct {
	events []recordedEvent
}

func (o *captureObserver) RecordEvent(event string, fields map[string]string) {
	o.events = append(o.events, recordedEvent{event: event, fields: fields})
}

func newTestService(t *testing.T) (NoteService, *captureObserver) {
	t.Helper()
	store, err := kv.Open(filepath.Join(t.TempDir(), "notes.bolt"))
	require.NoError(t, err)
	observer := &captureObserver{}
	svc, err := NewNoteService(context.Background(), store, observer)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc, observer
}

func TestDefaultCategoryBootstrap(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category, err := svc.GetCategory(ctx, domain.DefaultCategoryID)
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.True(t, category.IsDefault())
}

func TestCreateNoteDefaults(t *testing.T) {
	svc, observer := newTestService(t)
	ctx := context.Background()

	before := time.Now()
	note, err := svc.CreateNote(ctx, &NoteSet{Title: "untitled thoughts"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(note.ID, "note_"))
	assert.Equal(t, domain.DefaultCategoryID, note.CategoryID)
	assert.Equal(t, domain.PriorityMedium, note.Priority)
	assert.Equal(t, domain.SyncStatusLocal, note.SyncStatus)
	assert.False(t, note.CreatedAt.Before(before))
	assert.False(t, note.UpdatedAt.Before(note.CreatedAt))

	require.Len(t, observer.events, 1)
	assert.Equal(t, domain.EventNoteCreated, observer.events[0].event)
}

func TestCreateNoteRejectsUnknownRefs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, &NoteSet{Title: "x", CategoryID: "cat_missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, code.ErrUnknownRef)

	_, err = svc.CreateNote(ctx, &NoteSet{Title: "x", TagIDs: []string{"tag_missing"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, code.ErrUnknownRef)
}

func TestCreateNoteDeduplicatesTags(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, &TagSet{Name: "work"})
	require.NoError(t, err)

	note, err := svc.CreateNote(ctx, &NoteSet{
		Title:  "x",
		TagIDs: []string{tag.ID, tag.ID, ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{tag.ID}, note.TagIDs)

	got, err := svc.GetTag(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UsageCount)
}

func TestUpdateNoteStampsUpdatedAt(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, &NoteSet{Title: "before"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.UpdateNote(ctx, note.ID, &NoteSet{Title: "after", IsFavorite: true})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "after", updated.Title)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, note.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestUpdateMissingNoteReturnsNil(t *testing.T) {
	svc, _ := newTestService(t)

	note, err := svc.UpdateNote(context.Background(), "note_missing", &NoteSet{Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestEntityIDPrefixes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, &CategorySet{Name: "Work"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(category.ID, "cat_"))

	tag, err := svc.CreateTag(ctx, &TagSet{Name: "focus"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tag.ID, "tag_"))
}

func TestClearAllRestoresDefaultCategory(t *testing.T) {
	svc, observer := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateNote(ctx, &NoteSet{Title: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx))

	notes, err := svc.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	category, err := svc.GetCategory(ctx, domain.DefaultCategoryID)
	require.NoError(t, err)
	require.NotNil(t, category)

	last := observer.events[len(observer.events)-1]
	assert.Equal(t, domain.EventDataCleared, last.event)
}

func TestImportRestoresDefaultCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	// Snapshot without the default category still yields a usable engine
	snapshot := &domain.Snapshot{ExportVersion: domain.SnapshotVersion}
	require.NoError(t, svc.Import(ctx, snapshot))

	_, err := svc.CreateNote(ctx, &NoteSet{Title: "works"})
	require.NoError(t, err)
}

func TestImportInvalidSnapshotLeavesDataIntact(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	note, err := svc.CreateNote(ctx, &NoteSet{Title: "precious"})
	require.NoError(t, err)

	bad := &domain.Snapshot{
		ExportVersion: domain.SnapshotVersion,
		Notes: []domain.SnapshotNote{
			{ID: "note_x", CategoryID: "cat_nowhere"},
		},
	}
	err = svc.Import(ctx, bad)
	require.Error(t, err)
	assert.True(t, code.IsInvalidSnapshot(err))

	kept, err := svc.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
}
