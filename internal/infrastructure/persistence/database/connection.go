// Package database provides the SQLite connection and schema management
// for the parish backend.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/parafia-jawornik/parafia-go/internal/infrastructure/observability/logging"
	"github.com/parafia-jawornik/parafia-go/pkg/config"
)

// DB wraps a sql.DB connection with convenience helpers
type DB struct {
	*sql.DB
	logger *logging.ChanneledLogger
}

// NewConnection opens a SQLite database at the given path
func NewConnection(path string) (*DB, error) {
	return NewConnectionWithLogger(path, nil)
}

// NewConnectionWithLogger opens a SQLite database with logging support
func NewConnectionWithLogger(path string, logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()

	// _busy_timeout avoids SQLITE_BUSY under concurrent handler writes,
	// foreign keys are off by default in SQLite
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	sqlDB.SetMaxOpenConns(config.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(config.DBMaxIdleConns)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", path, err)
	}

	if logger != nil {
		logger.Database().Info("Database connection established",
			"path", path,
			"duration", time.Since(start).String())
	}

	return &DB{DB: sqlDB, logger: logger}, nil
}

// Close closes the underlying connection
func (db *DB) Close() error {
	if db.logger != nil {
		db.logger.Database().Info("Closing database connection")
	}
	return db.DB.Close()
}
