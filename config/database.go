package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/andrewpaige1/wordcards/models"
	"github.com/andrewpaige1/wordcards/storage"
)

// Connect opens the database selected by cfg.DBDriver and migrates the
// key-value table.
func Connect(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DBURL)
	default:
		return nil, fmt.Errorf("driver %s has no database", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(&models.KVRecord{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate database: %w", err)
	}

	return db, nil
}

// OpenMedium returns the backing medium for the configured driver.
func OpenMedium(cfg *Config) (storage.Medium, error) {
	if cfg.DBDriver == DriverMemory {
		return storage.NewMemoryMedium(), nil
	}

	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	return storage.NewGormMedium(db), nil
}
