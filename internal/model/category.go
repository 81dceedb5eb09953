package model

import (
	"github.com/haierkeys/note-storage-engine/pkg/timex"
)

// Category is the categories table row. Name uniqueness is enforced
// case-insensitively by the repository before insert, so the column
// carries a plain index rather than a collation-dependent unique one.
type Category struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id"`
	Name        string     `gorm:"column:name;not null;index:idx_category_name" json:"name"`
	Description string     `gorm:"column:description" json:"description"`
	Color       string     `gorm:"column:color" json:"color"`
	Icon        string     `gorm:"column:icon" json:"icon"`
	OrderIndex  int        `gorm:"column:order_index;default:0" json:"orderIndex"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;autoCreateTime:false" json:"createdAt"`
}

// TableName returns the table name
func (*Category) TableName() string {
	return "categories"
}
