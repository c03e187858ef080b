package initializers

import (
	"fmt"

	"github.com/nilamroots/nilamroots-api/models"
	"gorm.io/gorm"
)

func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Review{},
		&models.Order{},
	)
}

func SyncDatabase() error {
	if err := MigrateModels(DB); err != nil {
		return fmt.Errorf("database sync failed: %w", err)
	}
	Logger.Info("Database synced successfully.")
	return nil
}
