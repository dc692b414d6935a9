package models

import "gorm.io/gorm"

// AutoMigrate runs migrations for all session models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Assistant{},
		&Topic{},
		&Setting{},
	)
}
