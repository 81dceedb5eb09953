package kv

import (
	"context"
	"sort"
	"strings"

	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// CreateTag inserts a tag after a case-insensitive linear scan for a
// duplicate name.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	if err := s.checkTagName(tag.Name, ""); err != nil {
		return err
	}
	return s.put(bucketTags, tag.ID, tagRecord{
		SnapshotTag: domain.FromTag(tag),
		UsageCount:  tag.UsageCount,
	})
}

// UpdateTag rewrites a tag, excluding itself from the duplicate check.
func (s *Store) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}
	if err := s.checkTagName(tag.Name, tag.ID); err != nil {
		return err
	}
	return s.put(bucketTags, tag.ID, tagRecord{
		SnapshotTag: domain.FromTag(tag),
		UsageCount:  tag.UsageCount,
	})
}

// DeleteTag removes the tag id from every note holding it, one rewrite
// per note, then deletes the tag record.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctxErr(ctx); err != nil {
		return err
	}

	notes, err := s.collectNotes(func(n *domain.Note) bool {
		return n.HasTag(id)
	})
	if err != nil {
		return err
	}
	for _, note := range notes {
		note.RemoveTag(id)
		if err := s.put(bucketNotes, note.ID, domain.FromNote(note)); err != nil {
			return err
		}
	}
	return s.delete(bucketTags, id)
}

// GetTag returns the tag with usage recomputed from the live note
// collection, or (nil, nil) when the id is unknown.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	var record tagRecord
	existed, err := s.get(bucketTags, id, &record)
	if err != nil || !existed {
		return nil, err
	}
	counts, err := s.usageCountByTag()
	if err != nil {
		return nil, err
	}
	tag := record.ToTag()
	tag.UsageCount = counts[id]
	return tag, nil
}

// GetTags returns all tags with usage recomputed by scanning the note
// collection, most used first, ties broken by name.
func (s *Store) GetTags(ctx context.Context) ([]*domain.Tag, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	counts, err := s.usageCountByTag()
	if err != nil {
		return nil, err
	}

	tags := []*domain.Tag{}
	err = s.scan(bucketTags, func(data []byte) error {
		var record tagRecord
		if err := sonic.Unmarshal(data, &record); err != nil {
			return errors.Wrap(err, "decode tag")
		}
		tag := record.ToTag()
		tag.UsageCount = counts[tag.ID]
		tags = append(tags, tag)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].UsageCount != tags[j].UsageCount {
			return tags[i].UsageCount > tags[j].UsageCount
		}
		return tags[i].Name < tags[j].Name
	})
	return tags, nil
}

func (s *Store) usageCountByTag() (map[string]int, error) {
	counts := map[string]int{}
	err := s.scan(bucketNotes, func(data []byte) error {
		var record noteRecord
		if err := sonic.Unmarshal(data, &record); err != nil {
			return errors.Wrap(err, "decode note")
		}
		for _, tagID := range record.TagIDs {
			counts[tagID]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (s *Store) checkTagName(name string, excludeID string) error {
	if strings.TrimSpace(name) == "" {
		return code.ErrNameRequired
	}
	duplicate := false
	err := s.scan(bucketTags, func(data []byte) error {
		var record tagRecord
		if err := sonic.Unmarshal(data, &record); err != nil {
			return errors.Wrap(err, "decode tag")
		}
		if record.ID != excludeID && strings.EqualFold(record.Name, name) {
			duplicate = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if duplicate {
		return code.ErrDuplicateName.WithDetails("tag " + name)
	}
	return nil
}
