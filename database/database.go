package database

import (
	"fmt"
	"log/slog"
	"time"

	"speed-camera-registry/be/config"
	"speed-camera-registry/be/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the PostgreSQL connection and migrates the cameras table.
// TranslateError is required so unique violations surface as
// gorm.ErrDuplicatedKey.
func Initialize(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         newGormLogger(log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Camera{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database initialized", "host", cfg.Host, "dbname", cfg.DBName)
	return db, nil
}

// newGormLogger routes gorm's SQL warnings and errors through the service
// logger. Missing rows are expected on lookups and are not logged.
func newGormLogger(log *slog.Logger) logger.Interface {
	return logger.NewSlogLogger(log.With("component", "gorm"), logger.Config{
		LogLevel:                  logger.Warn,
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	})
}
