// Package domain defines the storage engine's entities and contracts.
package domain

import "time"

// Priority is the ordered note priority.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// SyncStatus mirrors the sync state recorded by an external sync layer.
// The engine stores it but never drives synchronization itself.
type SyncStatus string

const (
	SyncStatusLocal   SyncStatus = "local"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
)

// Note is a single note. TagIDs behaves as a set: order is
// irrelevant and duplicates are forbidden.
type Note struct {
	ID         string
	Title      string
	Content    string
	CategoryID string
	TagIDs     []string
	IsFavorite bool
	IsArchived bool
	Color      string
	Priority   Priority
	RemindAt   *time.Time
	Encrypted  bool
	SyncStatus SyncStatus
	LastSynced *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasTag reports whether the note carries the given tag id.
func (n *Note) HasTag(tagID string) bool {
	for _, id := range n.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// RemoveTag strips the tag id from the note's tag set.
func (n *Note) RemoveTag(tagID string) {
	kept := n.TagIDs[:0]
	for _, id := range n.TagIDs {
		if id != tagID {
			kept = append(kept, id)
		}
	}
	n.TagIDs = kept
}

// IsOverdue reports whether the note's reminder has passed as of now.
func (n *Note) IsOverdue(now time.Time) bool {
	return n.RemindAt != nil && n.RemindAt.Before(now)
}
