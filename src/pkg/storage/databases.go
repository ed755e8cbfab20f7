// Package storage provides functionality for persisting and retrieving Filmscape data.
// This file handles the general SQL database interfaces and schemas.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"filmscape/local-app/src/pkg/log"
)

// DBDriver represents the type of database driver
type DBDriver string

const (
	SQLite     DBDriver = "sqlite"
	PostgreSQL DBDriver = "postgres"
)

// Database interface defines common database operations
type Database interface {
	Open(dataSourceName string) error
	Close() error
	Begin() error
	Commit() error
	Rollback() error
	Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	InitSchema() error
	Driver() DBDriver
}

// NewDatabase creates a new Database instance based on the specified driver
func NewDatabase(driver DBDriver, logger *log.Logger) (Database, error) {
	switch driver {
	case SQLite:
		return &SQLiteDatabase{BaseDatabase: BaseDatabase{logger: logger, driver: SQLite}}, nil
	case PostgreSQL:
		return &PostgresDatabase{BaseDatabase: BaseDatabase{logger: logger, driver: PostgreSQL}}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// validateDBDriver maps a configured store type onto a SQL driver
func validateDBDriver(storeType string) (DBDriver, error) {
	switch DBDriver(storeType) {
	case SQLite, PostgreSQL:
		return DBDriver(storeType), nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", storeType)
	}
}

// BaseDatabase provides a base implementation of some Database methods.
// Queries are written with '?' placeholders and rebound for the driver.
type BaseDatabase struct {
	db     *sqlx.DB
	tx     *sqlx.Tx
	driver DBDriver
	logger *log.Logger
}

// Driver returns the SQL dialect of the database
func (b *BaseDatabase) Driver() DBDriver {
	return b.driver
}

// Begin starts a new transaction
func (b *BaseDatabase) Begin() error {
	if b.tx != nil {
		return fmt.Errorf("transaction already active")
	}
	tx, err := b.db.Beginx()
	if err != nil {
		b.logger.Error(context.Background(), "Failed to begin transaction", log.Fields{"error": err})
		return err
	}
	b.tx = tx
	b.logger.Debug(context.Background(), "Transaction started", nil)
	return nil
}

// Commit commits the current transaction
func (b *BaseDatabase) Commit() error {
	if b.tx == nil {
		b.logger.Error(context.Background(), "No active transaction to commit", nil)
		return fmt.Errorf("no active transaction")
	}
	err := b.tx.Commit()
	b.tx = nil
	if err != nil {
		b.logger.Error(context.Background(), "Failed to commit transaction", log.Fields{"error": err})
		return err
	}
	b.logger.Debug(context.Background(), "Transaction committed", nil)
	return nil
}

// Rollback rolls back the current transaction
func (b *BaseDatabase) Rollback() error {
	if b.tx == nil {
		b.logger.Error(context.Background(), "No active transaction to rollback", nil)
		return fmt.Errorf("no active transaction")
	}
	err := b.tx.Rollback()
	b.tx = nil
	if err != nil {
		b.logger.Error(context.Background(), "Failed to rollback transaction", log.Fields{"error": err})
		return err
	}
	b.logger.Info(context.Background(), "Transaction rolled back", nil)
	return nil
}

// Exec executes a query without returning any rows
func (b *BaseDatabase) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	query = b.db.Rebind(query)
	b.logger.Debug(ctx, "Executing query", log.Fields{"query": query, "args": args})
	if b.tx != nil {
		return b.tx.ExecContext(ctx, query, args...)
	}
	return b.db.ExecContext(ctx, query, args...)
}

// Select runs a query and scans every row into dest, a pointer to a slice
func (b *BaseDatabase) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	query = b.db.Rebind(query)
	b.logger.Debug(ctx, "Querying", log.Fields{"query": query, "args": args})
	if b.tx != nil {
		return b.tx.SelectContext(ctx, dest, query, args...)
	}
	return b.db.SelectContext(ctx, dest, query, args...)
}

// InitSchema initializes the database schema
func (b *BaseDatabase) InitSchema() error {
	ctx := context.Background()
	b.logger.Info(ctx, "Initializing database schema", log.Fields{"driver": b.driver})

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password TEXT NOT NULL,
			seq INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_films (
			username TEXT NOT NULL REFERENCES users(username) ON DELETE CASCADE,
			list TEXT NOT NULL,
			seq INTEGER NOT NULL,
			film_index INTEGER NOT NULL,
			PRIMARY KEY (username, film_index)
		)`,
	}
	for _, stmt := range statements {
		if _, err := b.Exec(ctx, stmt); err != nil {
			b.logger.Error(ctx, "Failed to create tables", log.Fields{"error": err})
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	b.logger.Info(ctx, "Database schema initialized successfully", nil)
	return nil
}

// Close closes the connection
func (b *BaseDatabase) Close() error {
	b.logger.Info(context.Background(), "Closing database", log.Fields{"driver": b.driver})
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			b.logger.Error(context.Background(), "Failed to close database", log.Fields{"error": err})
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
