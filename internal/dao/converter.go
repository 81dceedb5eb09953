package dao

import (
	"github.com/haierkeys/note-storage-engine/internal/domain"
	"github.com/haierkeys/note-storage-engine/internal/model"

	"github.com/jinzhu/copier"
)

// toDomainNote converts a database row to the domain model.
// Tag associations live in note_tags and are filled in by the caller.
func toDomainNote(m *model.Note, tagIDs []string) *domain.Note {
	if m == nil {
		return nil
	}
	note := new(domain.Note)
	_ = copier.Copy(note, m)
	if tagIDs == nil {
		tagIDs = []string{}
	}
	note.TagIDs = tagIDs
	return note
}

// toModelNote converts a domain note to its database row.
func toModelNote(n *domain.Note) *model.Note {
	if n == nil {
		return nil
	}
	m := new(model.Note)
	_ = copier.Copy(m, n)
	return m
}

func toDomainCategory(m *model.Category, noteCount int) *domain.Category {
	if m == nil {
		return nil
	}
	c := new(domain.Category)
	_ = copier.Copy(c, m)
	c.NoteCount = noteCount
	return c
}

func toModelCategory(c *domain.Category) *model.Category {
	if c == nil {
		return nil
	}
	m := new(model.Category)
	_ = copier.Copy(m, c)
	return m
}

func toDomainTag(m *model.Tag, usageCount int) *domain.Tag {
	if m == nil {
		return nil
	}
	t := new(domain.Tag)
	_ = copier.Copy(t, m)
	t.UsageCount = usageCount
	return t
}

func toModelTag(t *domain.Tag) *model.Tag {
	if t == nil {
		return nil
	}
	m := new(model.Tag)
	_ = copier.Copy(m, t)
	return m
}
