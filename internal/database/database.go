// Package database manages the SQLite connection and schema migrations.
package database

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"visionly/internal/config"
	"visionly/internal/reports"
)

// DBManager owns the gorm connection and applies the connection pool
// and WAL settings from config.
type DBManager struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
}

// NewDBManager creates a database manager; call Init before use.
func NewDBManager(cfg *config.Config, logger *slog.Logger) *DBManager {
	return &DBManager{cfg: cfg, logger: logger}
}

// Init opens the connection and applies pragmas and pool limits.
func (dm *DBManager) Init() error {
	if dir := filepath.Dir(dm.cfg.GetDatabasePath()); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("database: create storage dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dm.cfg.GetDatabasePath()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("database: open %s: %w", dm.cfg.GetDatabasePath(), err)
	}

	db.Exec("PRAGMA journal_mode = WAL")
	db.Exec("PRAGMA busy_timeout = 5000")
	db.Exec("PRAGMA foreign_keys = ON")

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database: access pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(dm.cfg.GetMaxOpenConns())
	sqlDB.SetMaxIdleConns(dm.cfg.GetMaxIdleConns())

	dm.db = db
	return nil
}

// GetConnection returns the live gorm connection, nil before Init.
func (dm *DBManager) GetConnection() *gorm.DB {
	return dm.db
}

// MigrateDatabase runs schema migrations for all persisted models.
func (dm *DBManager) MigrateDatabase() error {
	if dm.db == nil {
		return gorm.ErrInvalidDB
	}

	err := dm.db.Transaction(func(tx *gorm.DB) error {
		return tx.AutoMigrate(
			&reports.CachedReport{},
		)
	})
	if err != nil {
		dm.logger.Error("Failed to auto-migrate database", slog.Any("error", err))
		return err
	}

	if err := dm.CheckpointWAL("FULL"); err != nil {
		dm.logger.Warn("Failed to checkpoint WAL after migration", slog.Any("error", err))
	}

	dm.logger.Info("Database migration completed successfully")
	return nil
}

// CheckpointWAL forces a WAL checkpoint with the given mode.
func (dm *DBManager) CheckpointWAL(mode string) error {
	if dm.db == nil {
		return gorm.ErrInvalidDB
	}
	return dm.db.Exec("PRAGMA wal_checkpoint(" + mode + ")").Error
}

// Close shuts down the underlying connection pool.
func (dm *DBManager) Close() error {
	if dm.db == nil {
		return nil
	}
	sqlDB, err := dm.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
