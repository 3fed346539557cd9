// Package db manages named database connections and the per-dialect
// clients used to list and truncate tables.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/abelorian/lucid/internal/config"
	"github.com/abelorian/lucid/internal/ports/secondary"
)

// Normalized client names.
const (
	ClientPostgres  = "postgres"
	ClientMySQL     = "mysql"
	ClientSQLite    = "sqlite"
	ClientSQLServer = "sqlserver"
)

// NormalizeClient maps client aliases onto the names above.
func NormalizeClient(client string) string {
	switch strings.ToLower(strings.TrimSpace(client)) {
	case "postgresql", "pg", "pgsql", "postgres":
		return ClientPostgres
	case "mysql", "mysql2", "mariadb":
		return ClientMySQL
	case "sqlite", "sqlite3", "better-sqlite3":
		return ClientSQLite
	case "mssql", "sqlserver":
		return ClientSQLServer
	default:
		return strings.ToLower(client)
	}
}

// driverName returns the database/sql driver registered for a client.
func driverName(client string) (string, error) {
	switch client {
	case ClientPostgres:
		return "pgx", nil
	case ClientMySQL:
		return "mysql", nil
	case ClientSQLite:
		return "sqlite3", nil
	case ClientSQLServer:
		return "sqlserver", nil
	default:
		return "", fmt.Errorf("unsupported database client %q", client)
	}
}

// Registry implements secondary.ConnectionRegistry. Connections are opened
// lazily on first use and kept until CloseAll.
type Registry struct {
	mu      sync.Mutex
	primary string
	configs map[string]config.ConnectionConfig
	open    map[string]*sql.DB
	clients map[string]secondary.QueryClient
	logger  *zap.Logger
}

var _ secondary.ConnectionRegistry = (*Registry)(nil)

// NewRegistry creates a registry over the configured connections.
func NewRegistry(primary string, conns map[string]config.ConnectionConfig, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	configs := make(map[string]config.ConnectionConfig, len(conns))
	for name, c := range conns {
		configs[name] = c
	}
	return &Registry{
		primary: primary,
		configs: configs,
		open:    make(map[string]*sql.DB),
		clients: make(map[string]secondary.QueryClient),
		logger:  logger,
	}
}

// PrimaryConnectionName returns the connection used when none is named.
func (r *Registry) PrimaryConnectionName() string {
	return r.primary
}

// Has reports whether name is configured.
func (r *Registry) Has(name string) bool {
	_, ok := r.configs[name]
	return ok
}

// Names returns the configured connection names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connection returns the client for name, opening the pool if needed.
func (r *Registry) Connection(name string) (secondary.QueryClient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[name]; ok {
		return client, nil
	}

	cfg, ok := r.configs[name]
	if !ok {
		return nil, fmt.Errorf("connection %q is not configured", name)
	}

	dialect := NormalizeClient(cfg.Client)
	driver, err := driverName(dialect)
	if err != nil {
		return nil, fmt.Errorf("connection %q: %w", name, err)
	}

	database, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection %q: %w", name, err)
	}
	if dialect == ClientSQLite {
		// one writer at a time
		database.SetMaxOpenConns(1)
	}

	client := newClient(dialect, database)
	r.open[name] = database
	r.clients[name] = client
	r.logger.Debug("opened connection", zap.String("connection", name), zap.String("client", dialect))
	return client, nil
}

// CloseAll closes every open pool. With force, close failures are logged
// instead of returned so teardown never fails a finished run.
func (r *Registry) CloseAll(force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, database := range r.open {
		if err := database.Close(); err != nil {
			if force {
				r.logger.Warn("failed to close connection", zap.String("connection", name), zap.Error(err))
				continue
			}
			errs = append(errs, fmt.Errorf("close %q: %w", name, err))
		}
		r.logger.Debug("closed connection", zap.String("connection", name))
	}

	r.open = make(map[string]*sql.DB)
	r.clients = make(map[string]secondary.QueryClient)
	return errors.Join(errs...)
}

func newClient(dialect string, database *sql.DB) secondary.QueryClient {
	switch dialect {
	case ClientPostgres:
		return &postgresClient{db: database}
	case ClientMySQL:
		return &mysqlClient{db: database}
	case ClientSQLServer:
		return &mssqlClient{db: database}
	default:
		return &sqliteClient{db: database}
	}
}

// splitQualified splits "schema.table" into its parts; a bare name has an
// empty schema.
func splitQualified(table string) (schema, name string) {
	if i := strings.LastIndex(table, "."); i >= 0 {
		return table[:i], table[i+1:]
	}
	return "", table
}

func scanNames(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}
	return names, nil
}
