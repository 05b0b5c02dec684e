package config

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-sheet-manager.com/task-sheet-manager/internal/spreadsheet"
)

func NewDatabaseClient(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	// SQLite allows one writer; a single connection keeps row shifts
	// serialized.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle failed: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// NewSQLiteTable opens the emulated sheet used when STORE_DRIVER=sqlite.
func NewSQLiteTable(cfg Config) (*spreadsheet.SQLiteTable, error) {
	db, err := NewDatabaseClient(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	return spreadsheet.NewSQLiteTable(db, cfg.SheetTitle)
}
