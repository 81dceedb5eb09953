package kv

import (
	"github.com/haierkeys/note-storage-engine/internal/domain"
)

// Records reuse the snapshot encodings so stored bytes and exports
// share one stable serialized form. Category and tag records carry the
// incrementally maintained counters on top; listings still recompute
// counts from the note collection and never trust these fields.

type noteRecord = domain.SnapshotNote

type categoryRecord struct {
	domain.SnapshotCategory
	NoteCount int `json:"noteCount"`
}

type tagRecord struct {
	domain.SnapshotTag
	UsageCount int `json:"usageCount"`
}
