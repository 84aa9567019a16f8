package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"exchangenorm/src/database/migrations"
	"exchangenorm/src/model"
)

// MainDB is the snapshot store shared by the CLI and the HTTP service.
var MainDB *gorm.DB

func dialector(config Config) (gorm.Dialector, error) {
	switch config.Driver {
	case "postgres":
		return postgres.Open(config.DatabaseURL), nil
	case "sqlite":
		return sqlite.Open(config.SQLitePath), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
}

// Open connects with config and runs the schema and data migrations.
func Open(config Config) (*gorm.DB, error) {
	d, err := dialector(config)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(d, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.LogLevel(config.GormLogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logrus.WithField("driver", config.Driver).Info("[database] connection established")
	return db, nil
}

// Migrate brings the snapshot schema up to date.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.ListingSnapshot{},
		&migrations.DataMigration{},
	); err != nil {
		return fmt.Errorf("failed to run schema migrations: %w", err)
	}
	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("failed to run data migrations: %w", err)
	}
	return nil
}

// InitMainDB opens the configured database and publishes it as MainDB.
func InitMainDB() error {
	db, err := Open(GetConfig())
	if err != nil {
		return err
	}
	MainDB = db
	return nil
}
