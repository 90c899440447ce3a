package infra

import (
	"fmt"
	"time"

	"erpvendas/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewDatabase opens a GORM connection for driver. PostgreSQL schema is owned
// by the SQL migrations (see RunMigrations); SQLite databases are created with
// AutoMigrate over the models.
//
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey
// on both drivers.
func NewDatabase(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	switch driver {
	case DriverPostgres:
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		return db, nil

	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite serialises writers; one connection keeps transactions from
		// deadlocking each other and keeps a shared in-memory database alive.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		if err := db.AutoMigrate(model.All()...); err != nil {
			return nil, fmt.Errorf("AutoMigrate: %w", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}
