package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

type postgresClient struct {
	db *sql.DB
}

func (c *postgresClient) Dialect() string { return ClientPostgres }

// GetAllTables returns schema-qualified base tables in schemas.
func (c *postgresClient) GetAllTables(ctx context.Context, schemas []string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT table_schema || '.' || table_name
		FROM information_schema.tables
		WHERE table_type = 'BASE TABLE'
		  AND table_schema = ANY($1)
		ORDER BY table_schema, table_name`, schemas)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	return scanNames(rows)
}

func (c *postgresClient) Truncate(ctx context.Context, table string, cascade bool) error {
	query := "TRUNCATE TABLE " + quotePostgres(table) + " RESTART IDENTITY"
	if cascade {
		query += " CASCADE"
	}
	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	return nil
}

// quotePostgres quotes a possibly schema-qualified name. SQLite accepts the
// same double-quoted form.
func quotePostgres(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}
