package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"filmscape/local-app/src/pkg/log"
)

// PostgresDatabase implements the Database interface for PostgreSQL
type PostgresDatabase struct {
	BaseDatabase
}

// Open connects to PostgreSQL using a lib/pq connection string or URL
func (p *PostgresDatabase) Open(dataSourceName string) error {
	ctx := context.Background()
	p.logger.Info(ctx, "Opening PostgreSQL database", nil)

	db, err := sqlx.Open("postgres", dataSourceName)
	if err != nil {
		p.logger.Error(ctx, "Failed to open PostgreSQL database", log.Fields{"error": err})
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		p.logger.Error(ctx, "Failed to verify database connection", log.Fields{"error": err})
		return fmt.Errorf("failed to verify database connection: %w", err)
	}

	p.db = db
	p.logger.Info(ctx, "PostgreSQL database opened successfully", nil)
	return nil
}
