package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	adapterrepo "github.com/eslsoft/parlato/internal/adapter/repository"
	"github.com/eslsoft/parlato/internal/infrastructure/config"
)

// NewConnection opens a gorm connection for the configured driver and runs
// the schema migration for the document tables.
func NewConnection(cfg *config.Config) (*gorm.DB, func(), error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, nil, err
	}

	logLevel := gormlogger.Silent
	if cfg.Database.LogSQL {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("access sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	closeFn := func() { _ = sqlDB.Close() }

	if err := db.AutoMigrate(&adapterrepo.BrainRecord{}, &adapterrepo.GameConfigRecord{}); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("migrate schema: %w", err)
	}

	return db, closeFn, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DatabaseDriver() {
	case "postgres":
		return postgres.Open(cfg.DatabaseURL()), nil
	case "sqlite", "sqlite3":
		return sqlite.Open(cfg.DatabaseURL()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}
