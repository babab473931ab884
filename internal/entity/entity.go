package entity

import "gorm.io/gorm"

// AutoMigrate 自动迁移全部表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Customer{},
		&InventoryItem{},
		&Project{},
		&Quote{},
		&Invoice{},
		&TimesheetEntry{},
		&TimesheetMaterialUsed{},
		&ProjectAttachment{},
	)
}
