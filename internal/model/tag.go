package model

import (
	"github.com/haierkeys/note-storage-engine/pkg/timex"
)

// Tag is the tags table row.
type Tag struct {
	ID        string     `gorm:"column:id;primaryKey" json:"id"`
	Name      string     `gorm:"column:name;not null;index:idx_tag_name" json:"name"`
	Color     string     `gorm:"column:color" json:"color"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name
func (*Tag) TableName() string {
	return "tags"
}
