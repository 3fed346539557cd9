package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type mysqlClient struct {
	db *sql.DB
}

func (c *mysqlClient) Dialect() string { return ClientMySQL }

// GetAllTables lists base tables of the connected database. MySQL has no
// schema layer below the database, so schemas are ignored.
func (c *mysqlClient) GetAllTables(ctx context.Context, _ []string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	return scanNames(rows)
}

// Truncate runs TRUNCATE TABLE. With cascade, foreign key checks are
// disabled on the same session for the duration of the statement.
func (c *mysqlClient) Truncate(ctx context.Context, table string, cascade bool) error {
	_, name := splitQualified(table)
	query := "TRUNCATE TABLE " + quoteMySQL(name)
	if !cascade {
		if _, err := c.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
		return nil
	}

	conn, err := c.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	_, truncErr := conn.ExecContext(ctx, query)
	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err != nil && truncErr == nil {
		return fmt.Errorf("restore foreign key checks after %s: %w", table, err)
	}
	if truncErr != nil {
		return fmt.Errorf("truncate %s: %w", table, truncErr)
	}
	return nil
}

func quoteMySQL(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
