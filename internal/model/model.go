// Package model defines the relational backend's database models.
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate creates or upgrades the engine's tables. The schema is a
// single fixed version; there is no further migration tooling.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Category{},
		&Tag{},
		&Note{},
		&NoteTag{},
	)
}
