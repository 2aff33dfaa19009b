package config

import (
	"fmt"

	"recipe-catalog/internal/utils"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the configured store and pins the pool to one connection;
// the recipe repository serializes every statement on top of it.
func ConnectDB() (*gorm.DB, error) {
	dialector, err := dialectorFromConfig()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}

func dialectorFromConfig() (gorm.Dialector, error) {
	switch driver := utils.GetConfig("DB_DRIVER"); driver {
	case "", "sqlite":
		file := utils.GetConfig("DB_FILE")
		log.Infof("Connecting to DB file '%s'", file)
		return sqlite.Open(SQLiteDSN(file)), nil
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			utils.GetConfig("DB_HOST"),
			utils.GetConfig("DB_USER"),
			utils.GetConfig("DB_PASSWORD"),
			utils.GetConfig("DB_NAME"),
			utils.GetConfig("DB_PORT"),
		)
		log.Infof("Connecting to postgres at %s:%s", utils.GetConfig("DB_HOST"), utils.GetConfig("DB_PORT"))
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// SQLiteDSN enables foreign keys so ingredients cannot reference a missing recipe.
func SQLiteDSN(file string) string {
	return "file:" + file + "?_foreign_keys=on&_busy_timeout=5000"
}
