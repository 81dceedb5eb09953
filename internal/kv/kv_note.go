package kv

import (
	"context"
	"sort"
	"strings"

	"github.com/haierkeys/note-storage-engine/internal/domain"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// CreateNote inserts the note record, then bumps the usage counter of
// every tag it references, one write per step.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	return s.createNoteLocked(note)
}

// CreateNotes inserts a batch of notes. The batch is not atomic here;
// it is a plain ordered sequence of creates.
func (s *Store) CreateNotes(ctx context.Context, notes []*domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	for _, note := range notes {
		if err := s.createNoteLocked(note); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) createNoteLocked(note *domain.Note) error {
	if err := s.put(bucketNotes, note.ID, domain.FromNote(note)); err != nil {
		return err
	}
	for _, tagID := range note.TagIDs {
		if err := s.adjustTagUsage(tagID, 1); err != nil {
			return err
		}
	}
	return nil
}

// UpdateNote rewrites the record, then reconciles tag usage with a
// set-difference in both directions: tags only in the old version are
// decremented, tags only in the new version incremented, tags present
// in both untouched.
func (s *Store) UpdateNote(ctx context.Context, note *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}

	var old noteRecord
	existed, err := s.get(bucketNotes, note.ID, &old)
	if err != nil {
		return err
	}
	if err := s.put(bucketNotes, note.ID, domain.FromNote(note)); err != nil {
		return err
	}
	if !existed {
		for _, tagID := range note.TagIDs {
			if err := s.adjustTagUsage(tagID, 1); err != nil {
				return err
			}
		}
		return nil
	}

	oldSet := toSet(old.TagIDs)
	newSet := toSet(note.TagIDs)
	for tagID := range oldSet {
		if !newSet[tagID] {
			if err := s.adjustTagUsage(tagID, -1); err != nil {
				return err
			}
		}
	}
	for tagID := range newSet {
		if !oldSet[tagID] {
			if err := s.adjustTagUsage(tagID, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteNote removes the record and decrements usage for every tag it held.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}

	var old noteRecord
	existed, err := s.get(bucketNotes, id, &old)
	if err != nil {
		return err
	}
	if !existed {
		return nil
	}
	if err := s.delete(bucketNotes, id); err != nil {
		return err
	}
	for _, tagID := range old.TagIDs {
		if err := s.adjustTagUsage(tagID, -1); err != nil {
			return err
		}
	}
	return nil
}

// GetNote returns the note or (nil, nil) when the id is unknown.
func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	var record noteRecord
	existed, err := s.get(bucketNotes, id, &record)
	if err != nil || !existed {
		return nil, err
	}
	return record.ToNote(), nil
}

// GetNotes returns all notes, newest update first.
func (s *Store) GetNotes(ctx context.Context) ([]*domain.Note, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	return s.collectNotes(nil)
}

// GetNotesFiltered applies each supplied predicate conjunctively over
// a linear scan of the note collection.
func (s *Store) GetNotesFiltered(ctx context.Context, filter *domain.NoteFilter) ([]*domain.Note, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	if filter == nil || filter.IsEmpty() {
		return s.collectNotes(nil)
	}
	return s.collectNotes(filter.Matches)
}

// SearchNotes does a case-insensitive substring match against title or
// content across the full note collection.
func (s *Store) SearchNotes(ctx context.Context, query string) ([]*domain.Note, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	return s.collectNotes(func(n *domain.Note) bool {
		return strings.Contains(strings.ToLower(n.Title), needle) ||
			strings.Contains(strings.ToLower(n.Content), needle)
	})
}

func (s *Store) collectNotes(keep func(*domain.Note) bool) ([]*domain.Note, error) {
	notes := []*domain.Note{}
	err := s.scan(bucketNotes, func(data []byte) error {
		var record noteRecord
		if err := sonic.Unmarshal(data, &record); err != nil {
			return errors.Wrap(err, "decode note")
		}
		note := record.ToNote()
		if keep == nil || keep(note) {
			notes = append(notes, note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
		return notes[i].ID < notes[j].ID
	})
	return notes, nil
}

// adjustTagUsage shifts a tag's stored usage counter. Reads never trust
// this field, but keeping it current makes each cascade step idempotent
// to replay from a consistent record.
func (s *Store) adjustTagUsage(tagID string, delta int) error {
	var record tagRecord
	existed, err := s.get(bucketTags, tagID, &record)
	if err != nil || !existed {
		return err
	}
	record.UsageCount += delta
	if record.UsageCount < 0 {
		record.UsageCount = 0
	}
	return s.put(bucketTags, tagID, record)
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
