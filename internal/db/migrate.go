package db

import (
	"fmt"

	"github.com/portworks/craneview/internal/models"
	"gorm.io/gorm"
)

// AllModels returns every GORM model for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Profile{},
		&models.UserRole{},
		&models.WorkShift{},
		&models.LiftLog{},
		&models.DelayRecord{},
		&models.Vehicle{},
		&models.PerformanceRating{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
