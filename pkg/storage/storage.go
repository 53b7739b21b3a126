// Package storage wraps an embedded SQLite database with schema migration and
// transaction helpers.
package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"
)

// driverName is the database/sql name registered by modernc.org/sqlite.
const driverName = "sqlite"

// Config holds database configuration.
type Config struct {
	Path string `yaml:"path" env:"HISTORY_DB"` // file path or ":memory:"
}

// DB wraps a *sql.DB with additional utilities.
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at cfg.Path.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, goerr.New("database path is empty")
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, goerr.Wrap(err, "create database directory", goerr.V("path", cfg.Path))
		}
	}

	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return nil, goerr.Wrap(err, "open database", goerr.V("path", cfg.Path))
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "ping database", goerr.V("path", cfg.Path))
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "set WAL mode")
	}

	return &DB{DB: db, logger: slog.Default()}, nil
}

// Migrate runs the given SQL schema on the database.
func (db *DB) Migrate(ctx context.Context, schema string) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return goerr.Wrap(err, "migrate")
	}
	db.logger.Debug("database migration completed")
	return nil
}

// Transaction runs fn in a transaction, rolling back when it fails.
func (db *DB) Transaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return goerr.Wrap(err, "begin transaction")
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return goerr.Wrap(err, "rollback failed", goerr.V("rollback_error", rbErr.Error()))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return goerr.Wrap(err, "commit transaction")
	}
	return nil
}
