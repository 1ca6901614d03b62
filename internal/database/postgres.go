package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Pool limits for the snapshot table. Every request touches a handful of rows at most.
const (
	postgresMaxOpenConns    = 10
	postgresMaxIdleConns    = 5
	postgresConnMaxLifetime = 30 * time.Minute
)

// ConnectPostgres opens the PostgreSQL database holding the key-value snapshots.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newGormLogger(stderrWriter(), logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(postgresMaxOpenConns)
	sqlDB.SetMaxIdleConns(postgresMaxIdleConns)
	sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

	return db, nil
}
