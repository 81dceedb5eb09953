package model

import (
	"time"

	"github.com/haierkeys/note-storage-engine/pkg/timex"
)

// Note is the notes table row. Tag associations live in note_tags.
type Note struct {
	ID         string     `gorm:"column:id;primaryKey" json:"id"`
	Title      string     `gorm:"column:title;not null" json:"title"`
	Content    string     `gorm:"column:content;type:text" json:"content"`
	CategoryID string     `gorm:"column:category_id;not null;index:idx_note_category" json:"categoryId"`
	IsFavorite bool       `gorm:"column:is_favorite;default:false;index:idx_note_favorite" json:"isFavorite"`
	IsArchived bool       `gorm:"column:is_archived;default:false" json:"isArchived"`
	Color      string     `gorm:"column:color" json:"color"`
	Priority   string     `gorm:"column:priority;default:medium" json:"priority"`
	RemindAt   *time.Time `gorm:"column:remind_at" json:"remindAt"`
	Encrypted  bool       `gorm:"column:encrypted;default:false" json:"encrypted"`
	SyncStatus string     `gorm:"column:sync_status;default:local" json:"syncStatus"`
	LastSynced *time.Time `gorm:"column:last_synced" json:"lastSynced"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
}

// TableName returns the table name
func (*Note) TableName() string {
	return "notes"
}

// NoteTag is the note<->tag junction table. The composite primary key
// forbids duplicate pairs.
type NoteTag struct {
	NoteID string `gorm:"column:note_id;primaryKey;index:idx_note_tag_tag,priority:2" json:"noteId"`
	TagID  string `gorm:"column:tag_id;primaryKey;index:idx_note_tag_tag,priority:1" json:"tagId"`
}

// TableName returns the table name
func (*NoteTag) TableName() string {
	return "note_tags"
}
