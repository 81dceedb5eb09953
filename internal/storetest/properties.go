package storetest

import (
	"fmt"
	"testing"
	"time"

	"github.com/haierkeys/note-storage-engine/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

var propertyTags = []string{"tag_p0", "tag_p1", "tag_p2"}

// RunCounterProperties checks the derived-counter invariants under
// random operation sequences: after any mix of note creates, updates
// and deletes, every tag's usage count and every category's note count
// equal a recount over the note collection.
func RunCounterProperties(t *testing.T, open OpenFunc) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("derived counters match recount", prop.ForAll(
		func(opcodes []int) bool {
			s := open(t)
			defer s.Close()

			seedProperty(t, s)
			applyOps(s, opcodes)

			expectedUsage, expectedNotes := recount(s)

			tags, err := s.GetTags(ctx)
			if err != nil {
				t.Logf("GetTags: %v", err)
				return false
			}
			for _, tag := range tags {
				if tag.UsageCount != expectedUsage[tag.ID] {
					t.Logf("tag %s usage %d, recount %d (ops %v)",
						tag.ID, tag.UsageCount, expectedUsage[tag.ID], opcodes)
					return false
				}
			}

			categories, err := s.GetCategories(ctx)
			if err != nil {
				t.Logf("GetCategories: %v", err)
				return false
			}
			for _, category := range categories {
				if category.NoteCount != expectedNotes[category.ID] {
					t.Logf("category %s count %d, recount %d (ops %v)",
						category.ID, category.NoteCount, expectedNotes[category.ID], opcodes)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 1000)),
	))

	properties.TestingRun(t)
}

func seedProperty(t *testing.T, s domain.Store) {
	t.Helper()
	seed(t, s)
	makeCategory(t, s, "cat_p1", "Property", 1)
	for i, id := range propertyTags {
		makeTag(t, s, id, fmt.Sprintf("ptag%d", i))
	}
}

// applyOps interprets each opcode as create, update or delete against
// a rolling set of notes with tag subsets derived from the code.
func applyOps(s domain.Store, opcodes []int) {
	nextID := 0
	live := []string{}
	now := time.Now()

	for _, opcode := range opcodes {
		kind := opcode % 3
		tagSet := tagSubset(opcode / 3 % 8)
		category := domain.DefaultCategoryID
		if opcode/24%2 == 1 {
			category = "cat_p1"
		}

		switch {
		case kind == 0 || len(live) == 0:
			id := fmt.Sprintf("note_p%d", nextID)
			nextID++
			_ = s.CreateNote(ctx, &domain.Note{
				ID: id, Title: id, CategoryID: category, TagIDs: tagSet,
				Priority: domain.PriorityMedium, SyncStatus: domain.SyncStatusLocal,
				CreatedAt: now, UpdatedAt: now,
			})
			live = append(live, id)
		case kind == 1:
			id := live[opcode/48%len(live)]
			note, err := s.GetNote(ctx, id)
			if err != nil || note == nil {
				continue
			}
			note.TagIDs = tagSet
			note.CategoryID = category
			note.UpdatedAt = time.Now()
			_ = s.UpdateNote(ctx, note)
		default:
			idx := opcode / 48 % len(live)
			_ = s.DeleteNote(ctx, live[idx])
			live = append(live[:idx], live[idx+1:]...)
		}
	}
}

func tagSubset(mask int) []string {
	subset := []string{}
	for i, id := range propertyTags {
		if mask&(1<<i) != 0 {
			subset = append(subset, id)
		}
	}
	return subset
}

// recount computes ground-truth counters from the note collection.
func recount(s domain.Store) (map[string]int, map[string]int) {
	usage := map[string]int{}
	perCategory := map[string]int{}
	notes, err := s.GetNotes(ctx)
	if err != nil {
		return usage, perCategory
	}
	for _, note := range notes {
		perCategory[note.CategoryID]++
		for _, tagID := range note.TagIDs {
			usage[tagID]++
		}
	}
	return usage, perCategory
}
