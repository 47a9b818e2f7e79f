package config

import (
	"fmt"
	"log/slog"
	"time"

	"optimasfibre-web/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the leads database. A nil DB with a nil error means
// DB_URL is unset and booking leads are not persisted.
func ConnectDB(cfg Config) (*gorm.DB, error) {
	if cfg.DBURL == "" {
		slog.Warn("DB_URL is not set, booking leads will not be stored")
		return nil, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DBURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&models.BookingLead{}); err != nil {
		return nil, fmt.Errorf("migrating booking leads: %w", err)
	}
	return db, nil
}
