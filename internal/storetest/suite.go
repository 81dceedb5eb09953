// Package storetest holds a conformance suite every storage backend
// must pass. Running the same suite against both implementations is
// what keeps their observable behavior identical.
package storetest

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// OpenFunc opens a fresh, empty store for one subtest.
type OpenFunc func(t *testing.T) domain.Store

// Run executes the full conformance suite against the backend.
func Run(t *testing.T, open OpenFunc) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s domain.Store)
	}{
		{"TagUsageCounts", testTagUsageCounts},
		{"CategoryNoteCounts", testCategoryNoteCounts},
		{"DeleteCategoryReassignsNotes", testDeleteCategoryReassignsNotes},
		{"DeleteTagCascades", testDeleteTagCascades},
		{"DefaultCategoryProtected", testDefaultCategoryProtected},
		{"DuplicateNamesRejected", testDuplicateNamesRejected},
		{"BlankNamesRejected", testBlankNamesRejected},
		{"ExportImportRoundTrip", testExportImportRoundTrip},
		{"SearchCaseInsensitive", testSearchCaseInsensitive},
		{"FilterConjunction", testFilterConjunction},
		{"MissingIDsReturnEmpty", testMissingIDsReturnEmpty},
		{"Statistics", testStatistics},
		{"ListOrdering", testListOrdering},
		{"LifecycleScenario", testLifecycleScenario},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			tc.fn(t, s)
		})
	}
}

var ctx = context.Background()

// seed installs the default category every scenario builds on.
func seed(t *testing.T, s domain.Store) {
	t.Helper()
	require.NoError(t, s.CreateCategory(ctx, &domain.Category{
		ID:        domain.DefaultCategoryID,
		Name:      "General",
		CreatedAt: time.Now(),
	}))
}

func makeCategory(t *testing.T, s domain.Store, id, name string, orderIndex int) *domain.Category {
	t.Helper()
	category := &domain.Category{ID: id, Name: name, OrderIndex: orderIndex, CreatedAt: time.Now()}
	require.NoError(t, s.CreateCategory(ctx, category))
	return category
}

func makeTag(t *testing.T, s domain.Store, id, name string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{ID: id, Name: name, CreatedAt: time.Now()}
	require.NoError(t, s.CreateTag(ctx, tag))
	return tag
}

func makeNote(t *testing.T, s domain.Store, id, categoryID string, tagIDs ...string) *domain.Note {
	t.Helper()
	now := time.Now()
	note := &domain.Note{
		ID:         id,
		Title:      "title " + id,
		Content:    "content " + id,
		CategoryID: categoryID,
		TagIDs:     tagIDs,
		Priority:   domain.PriorityMedium,
		SyncStatus: domain.SyncStatusLocal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, s.CreateNote(ctx, note))
	return note
}

func tagUsage(t *testing.T, s domain.Store, id string) int {
	t.Helper()
	tag, err := s.GetTag(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, tag)
	return tag.UsageCount
}

func categoryCount(t *testing.T, s domain.Store, id string) int {
	t.Helper()
	category, err := s.GetCategory(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, category)
	return category.NoteCount
}

func testTagUsageCounts(t *testing.T, s domain.Store) {
	seed(t, s)
	makeTag(t, s, "tag_a", "alpha")
	makeTag(t, s, "tag_b", "beta")

	makeNote(t, s, "note_1", domain.DefaultCategoryID, "tag_a")
	makeNote(t, s, "note_2", domain.DefaultCategoryID, "tag_a", "tag_b")
	assert.Equal(t, 2, tagUsage(t, s, "tag_a"))
	assert.Equal(t, 1, tagUsage(t, s, "tag_b"))

	// Update swaps note_1 from tag_a to tag_b
	note, err := s.GetNote(ctx, "note_1")
	require.NoError(t, err)
	note.TagIDs = []string{"tag_b"}
	note.UpdatedAt = time.Now()
	require.NoError(t, s.UpdateNote(ctx, note))
	assert.Equal(t, 1, tagUsage(t, s, "tag_a"))
	assert.Equal(t, 2, tagUsage(t, s, "tag_b"))

	// Deleting note_2 releases both of its tags
	require.NoError(t, s.DeleteNote(ctx, "note_2"))
	assert.Equal(t, 0, tagUsage(t, s, "tag_a"))
	assert.Equal(t, 1, tagUsage(t, s, "tag_b"))
}

func testCategoryNoteCounts(t *testing.T, s domain.Store) {
	seed(t, s)
	makeCategory(t, s, "cat_work", "Work", 1)

	makeNote(t, s, "note_1", "cat_work")
	makeNote(t, s, "note_2", "cat_work")
	makeNote(t, s, "note_3", domain.DefaultCategoryID)
	assert.Equal(t, 2, categoryCount(t, s, "cat_work"))
	assert.Equal(t, 1, categoryCount(t, s, domain.DefaultCategoryID))

	// Moving a note between categories moves the count with it
	note, err := s.GetNote(ctx, "note_2")
	require.NoError(t, err)
	note.CategoryID = domain.DefaultCategoryID
	require.NoError(t, s.UpdateNote(ctx, note))
	assert.Equal(t, 1, categoryCount(t, s, "cat_work"))
	assert.Equal(t, 2, categoryCount(t, s, domain.DefaultCategoryID))

	require.NoError(t, s.DeleteNote(ctx, "note_1"))
	assert.Equal(t, 0, categoryCount(t, s, "cat_work"))
}

func testDeleteCategoryReassignsNotes(t *testing.T, s domain.Store) {
	seed(t, s)
	makeCategory(t, s, "cat_work", "Work", 1)
	makeNote(t, s, "note_1", "cat_work")
	makeNote(t, s, "note_2", "cat_work")

	require.NoError(t, s.DeleteCategory(ctx, "cat_work"))

	for _, id := range []string{"note_1", "note_2"} {
		note, err := s.GetNote(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, domain.DefaultCategoryID, note.CategoryID)
	}
	assert.Equal(t, 2, categoryCount(t, s, domain.DefaultCategoryID))

	categories, err := s.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, domain.DefaultCategoryID, categories[0].ID)
}

func testDeleteTagCascades(t *testing.T, s domain.Store) {
	seed(t, s)
	makeTag(t, s, "tag_a", "alpha")
	makeTag(t, s, "tag_b", "beta")
	makeNote(t, s, "note_1", domain.DefaultCategoryID, "tag_a", "tag_b")
	makeNote(t, s, "note_2", domain.DefaultCategoryID, "tag_a")

	require.NoError(t, s.DeleteTag(ctx, "tag_a"))

	note1, err := s.GetNote(ctx, "note_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tag_b"}, note1.TagIDs)
	note2, err := s.GetNote(ctx, "note_2")
	require.NoError(t, err)
	assert.Empty(t, note2.TagIDs)

	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "tag_b", tags[0].ID)
}

func testDefaultCategoryProtected(t *testing.T, s domain.Store) {
	seed(t, s)
	makeNote(t, s, "note_1", domain.DefaultCategoryID)

	err := s.DeleteCategory(ctx, domain.DefaultCategoryID)
	require.Error(t, err)
	assert.True(t, code.IsProtectedEntity(err))

	// The failed attempt changed nothing
	assert.Equal(t, 1, categoryCount(t, s, domain.DefaultCategoryID))
	note, err := s.GetNote(ctx, "note_1")
	require.NoError(t, err)
	require.NotNil(t, note)
}

func testDuplicateNamesRejected(t *testing.T, s domain.Store) {
	seed(t, s)
	original := makeCategory(t, s, "cat_work", "Work", 1)
	makeTag(t, s, "tag_a", "urgent")

	err := s.CreateCategory(ctx, &domain.Category{ID: "cat_other", Name: "WORK", CreatedAt: time.Now()})
	require.Error(t, err)
	assert.True(t, code.IsDuplicateName(err))

	err = s.CreateTag(ctx, &domain.Tag{ID: "tag_b", Name: "Urgent", CreatedAt: time.Now()})
	require.Error(t, err)
	assert.True(t, code.IsDuplicateName(err))

	// The original entities are untouched
	category, err := s.GetCategory(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work", category.Name)
	categories, err := s.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func testBlankNamesRejected(t *testing.T, s domain.Store) {
	seed(t, s)

	for _, name := range []string{"", "   ", "\t"} {
		err := s.CreateCategory(ctx, &domain.Category{ID: "cat_blank", Name: name, CreatedAt: time.Now()})
		require.Error(t, err, "category name %q", name)
		assert.ErrorIs(t, err, code.ErrNameRequired)

		err = s.CreateTag(ctx, &domain.Tag{ID: "tag_blank", Name: name, CreatedAt: time.Now()})
		require.Error(t, err, "tag name %q", name)
		assert.ErrorIs(t, err, code.ErrNameRequired)
	}

	categories, err := s.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func testExportImportRoundTrip(t *testing.T, s domain.Store) {
	seed(t, s)
	makeCategory(t, s, "cat_work", "Work", 1)
	makeTag(t, s, "tag_a", "alpha")
	remind := time.Now().Add(time.Hour).Truncate(time.Second)
	note := &domain.Note{
		ID:         "note_1",
		Title:      "Exported",
		Content:    "round trip me",
		CategoryID: "cat_work",
		TagIDs:     []string{"tag_a"},
		IsFavorite: true,
		Color:      "#ff0000",
		Priority:   domain.PriorityUrgent,
		RemindAt:   &remind,
		SyncStatus: domain.SyncStatusLocal,
		CreatedAt:  time.Now().Truncate(time.Second),
		UpdatedAt:  time.Now().Truncate(time.Second),
	}
	require.NoError(t, s.CreateNote(ctx, note))

	snapshot, err := s.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SnapshotVersion, snapshot.ExportVersion)
	assert.NotEmpty(t, snapshot.StorageType)

	require.NoError(t, s.ClearAll(ctx))
	notes, err := s.GetNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)

	require.NoError(t, s.Import(ctx, snapshot))

	restored, err := s.GetNote(ctx, "note_1")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, note.Title, restored.Title)
	assert.Equal(t, note.Content, restored.Content)
	assert.Equal(t, note.CategoryID, restored.CategoryID)
	assert.Equal(t, []string{"tag_a"}, restored.TagIDs)
	assert.True(t, restored.IsFavorite)
	assert.Equal(t, domain.PriorityUrgent, restored.Priority)
	require.NotNil(t, restored.RemindAt)
	assert.Equal(t, remind.Unix(), restored.RemindAt.Unix())

	assert.Equal(t, 1, tagUsage(t, s, "tag_a"))
	assert.Equal(t, 1, categoryCount(t, s, "cat_work"))
	categories, err := s.GetCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func testSearchCaseInsensitive(t *testing.T, s domain.Store) {
	seed(t, s)
	now := time.Now()
	require.NoError(t, s.CreateNote(ctx, &domain.Note{
		ID: "note_1", Title: "Groceries", Content: "Hello World",
		CategoryID: domain.DefaultCategoryID, Priority: domain.PriorityLow,
		SyncStatus: domain.SyncStatusLocal, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.CreateNote(ctx, &domain.Note{
		ID: "note_2", Title: "Unrelated", Content: "nothing here",
		CategoryID: domain.DefaultCategoryID, Priority: domain.PriorityLow,
		SyncStatus: domain.SyncStatusLocal, CreatedAt: now, UpdatedAt: now,
	}))

	for _, query := range []string{"hello", "WORLD", "groc"} {
		results, err := s.SearchNotes(ctx, query)
		require.NoError(t, err)
		require.Len(t, results, 1, "query %q", query)
		assert.Equal(t, "note_1", results[0].ID)
	}

	results, err := s.SearchNotes(ctx, "absent")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func testFilterConjunction(t *testing.T, s domain.Store) {
	seed(t, s)
	makeCategory(t, s, "cat_work", "Work", 1)
	makeTag(t, s, "tag_a", "alpha")
	now := time.Now()

	create := func(id, categoryID string, favorite, archived bool, priority domain.Priority, tagIDs ...string) {
		require.NoError(t, s.CreateNote(ctx, &domain.Note{
			ID: id, Title: id, CategoryID: categoryID,
			TagIDs: tagIDs, IsFavorite: favorite, IsArchived: archived,
			Priority: priority, SyncStatus: domain.SyncStatusLocal,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	create("note_1", "cat_work", true, false, domain.PriorityHigh, "tag_a")
	create("note_2", "cat_work", false, false, domain.PriorityHigh)
	create("note_3", domain.DefaultCategoryID, true, true, domain.PriorityLow, "tag_a")

	boolPtr := func(b bool) *bool { return &b }

	// Single filters
	results, err := s.GetNotesFiltered(ctx, &domain.NoteFilter{CategoryIDs: []string{"cat_work"}})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.GetNotesFiltered(ctx, &domain.NoteFilter{TagIDs: []string{"tag_a"}})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.GetNotesFiltered(ctx, &domain.NoteFilter{Archived: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "note_3", results[0].ID)

	// Combined filters AND together
	results, err = s.GetNotesFiltered(ctx, &domain.NoteFilter{
		CategoryIDs: []string{"cat_work"},
		Favorite:    boolPtr(true),
		Priorities:  []domain.Priority{domain.PriorityHigh, domain.PriorityUrgent},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "note_1", results[0].ID)

	// Empty filter returns everything
	results, err = s.GetNotesFiltered(ctx, &domain.NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func testMissingIDsReturnEmpty(t *testing.T, s domain.Store) {
	seed(t, s)

	note, err := s.GetNote(ctx, "note_missing")
	require.NoError(t, err)
	assert.Nil(t, note)

	category, err := s.GetCategory(ctx, "cat_missing")
	require.NoError(t, err)
	assert.Nil(t, category)

	tag, err := s.GetTag(ctx, "tag_missing")
	require.NoError(t, err)
	assert.Nil(t, tag)
}

func testStatistics(t *testing.T, s domain.Store) {
	seed(t, s)
	makeTag(t, s, "tag_a", "alpha")
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	require.NoError(t, s.CreateNote(ctx, &domain.Note{
		ID: "note_1", Title: "a", Content: "one two three",
		CategoryID: domain.DefaultCategoryID, IsFavorite: true,
		RemindAt: &past, Priority: domain.PriorityHigh,
		SyncStatus: domain.SyncStatusLocal, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.CreateNote(ctx, &domain.Note{
		ID: "note_2", Title: "b", Content: "four five",
		CategoryID: domain.DefaultCategoryID, IsArchived: true,
		RemindAt: &future, TagIDs: []string{"tag_a"},
		Priority: domain.PriorityLow, SyncStatus: domain.SyncStatusLocal,
		CreatedAt: now, UpdatedAt: now,
	}))
	// Non-ASCII content: average length counts characters, not bytes
	require.NoError(t, s.CreateNote(ctx, &domain.Note{
		ID: "note_3", Title: "c", Content: "héllo wörld",
		CategoryID: domain.DefaultCategoryID, Priority: domain.PriorityLow,
		SyncStatus: domain.SyncStatusLocal, CreatedAt: now, UpdatedAt: now,
	}))

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalNotes)
	assert.Equal(t, 1, stats.FavoriteNotes)
	assert.Equal(t, 1, stats.ArchivedNotes)
	assert.Equal(t, 2, stats.NotesWithRemind)
	assert.Equal(t, 1, stats.OverdueReminders)
	assert.Equal(t, 1, stats.TotalCategories)
	assert.Equal(t, 1, stats.TotalTags)
	assert.Equal(t, 7, stats.TotalWords)
	chars := utf8.RuneCountInString("one two three") +
		utf8.RuneCountInString("four five") +
		utf8.RuneCountInString("héllo wörld")
	assert.InDelta(t, float64(chars)/3, stats.AvgContentLength, 0.01)
	assert.NotEmpty(t, stats.StorageType)
}

func testListOrdering(t *testing.T, s domain.Store) {
	seed(t, s) // default category has order index 0
	makeCategory(t, s, "cat_b", "Bravo", 2)
	makeCategory(t, s, "cat_a", "Alpha", 2)
	makeCategory(t, s, "cat_c", "Charlie", 1)

	categories, err := s.GetCategories(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{domain.DefaultCategoryID, "cat_c", "cat_a", "cat_b"}, ids)

	makeTag(t, s, "tag_rare", "rare")
	makeTag(t, s, "tag_common", "common")
	makeTag(t, s, "tag_also", "also common usage")
	makeNote(t, s, "note_1", domain.DefaultCategoryID, "tag_common")
	makeNote(t, s, "note_2", domain.DefaultCategoryID, "tag_common", "tag_also")
	makeNote(t, s, "note_3", domain.DefaultCategoryID, "tag_also")

	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	tagIDs := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	// Usage descending, names break the tie
	assert.Equal(t, []string{"tag_also", "tag_common", "tag_rare"}, tagIDs)
}

// testLifecycleScenario walks a full create/delete lifecycle across
// all three entity types.
func testLifecycleScenario(t *testing.T, s domain.Store) {
	seed(t, s)
	makeTag(t, s, "t1", "work")
	makeNote(t, s, "n1", domain.DefaultCategoryID, "t1")

	assert.Equal(t, 1, tagUsage(t, s, "t1"))
	assert.Equal(t, 1, categoryCount(t, s, domain.DefaultCategoryID))

	require.NoError(t, s.DeleteTag(ctx, "t1"))
	note, err := s.GetNote(ctx, "n1")
	require.NoError(t, err)
	assert.Empty(t, note.TagIDs)

	err = s.DeleteCategory(ctx, domain.DefaultCategoryID)
	require.Error(t, err)
	assert.True(t, code.IsProtectedEntity(err))
}
