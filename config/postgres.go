package config

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yoockh/coachify/internal/models"
)

func InitPostgres(c DatabaseConfig) (*gorm.DB, error) {
	if c.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}
	db, err := gorm.Open(postgres.Open(c.URL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)

	return db, nil
}

// MigratePostgres creates or updates the relational tables.
func MigratePostgres(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.ConversationLog{}, &models.SocialPost{})
}
