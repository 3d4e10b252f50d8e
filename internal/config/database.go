package config

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"alfredoptarigan/resumate/internal/logger"
	"alfredoptarigan/resumate/internal/models"
)

// InitDatabase opens the audit-log database. It returns (nil, nil) when the
// database is disabled.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	if !cfg.Database.Enabled {
		logger.Get().Info("ℹ️  Database disabled, generation audit log is a no-op")
		return nil, nil
	}

	dsn := cfg.GetDatabaseDSN()

	logLevel := gormlogger.Silent
	if cfg.Server.Env == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	logger.Get().Info("✅ Database connected successfully")

	if err := db.AutoMigrate(&models.GenerationLog{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	logger.Get().Info("✅ Database migration completed")

	return db, nil
}
