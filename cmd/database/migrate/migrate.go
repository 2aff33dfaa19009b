package migration

import (
	"recipe-catalog/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Recipe{}); err != nil {
		log.Errorf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}); err != nil {
		log.Errorf("Error migrating ingredient database: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
