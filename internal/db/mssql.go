package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// mssqlDefaultSchema replaces "public", which SQL Server does not have.
const mssqlDefaultSchema = "dbo"

type mssqlClient struct {
	db *sql.DB
}

func (c *mssqlClient) Dialect() string { return ClientSQLServer }

func (c *mssqlClient) GetAllTables(ctx context.Context, schemas []string) ([]string, error) {
	var tables []string
	for _, schema := range schemas {
		if schema == "public" {
			schema = mssqlDefaultSchema
		}
		rows, err := c.db.QueryContext(ctx, `
			SELECT TABLE_SCHEMA + '.' + TABLE_NAME
			FROM INFORMATION_SCHEMA.TABLES
			WHERE TABLE_TYPE = 'BASE TABLE' AND TABLE_SCHEMA = @schema
			ORDER BY TABLE_NAME`, sql.Named("schema", schema))
		if err != nil {
			return nil, fmt.Errorf("query tables in %s: %w", schema, err)
		}
		names, err := scanNames(rows)
		if err != nil {
			return nil, err
		}
		tables = append(tables, names...)
	}
	return tables, nil
}

// Truncate uses TRUNCATE TABLE, which SQL Server refuses on tables
// referenced by foreign keys; with cascade it falls back to DELETE.
func (c *mssqlClient) Truncate(ctx context.Context, table string, cascade bool) error {
	query := "TRUNCATE TABLE " + quoteMSSQL(table)
	if cascade {
		query = "DELETE FROM " + quoteMSSQL(table)
	}
	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("truncate %s: %w", table, err)
	}
	return nil
}

func quoteMSSQL(table string) string {
	parts := strings.Split(table, ".")
	for i, part := range parts {
		parts[i] = "[" + strings.ReplaceAll(part, "]", "]]") + "]"
	}
	return strings.Join(parts, ".")
}
