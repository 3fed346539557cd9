package db

import (
	"context"
	"database/sql"
	"fmt"
)

type sqliteClient struct {
	db *sql.DB
}

func (c *sqliteClient) Dialect() string { return ClientSQLite }

// GetAllTables ignores schemas: a SQLite file has a single namespace.
func (c *sqliteClient) GetAllTables(ctx context.Context, _ []string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	return scanNames(rows)
}

// Truncate deletes every row and resets the AUTOINCREMENT counter. SQLite
// has no cascading truncate; declared ON DELETE actions still apply.
func (c *sqliteClient) Truncate(ctx context.Context, table string, _ bool) error {
	_, name := splitQualified(table)
	if _, err := c.db.ExecContext(ctx, "DELETE FROM "+quotePostgres(name)); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}

	var hasSequence int
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'",
	).Scan(&hasSequence)
	if err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	if hasSequence == 0 {
		return nil
	}

	if _, err := c.db.ExecContext(ctx, "DELETE FROM sqlite_sequence WHERE name = ?", name); err != nil {
		return fmt.Errorf("reset sequence for %s: %w", table, err)
	}
	return nil
}
