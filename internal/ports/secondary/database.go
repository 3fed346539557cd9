// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ConnectionRegistry defines the secondary port for named database connections.
// The registry is owned by the caller; consumers only read from it.
type ConnectionRegistry interface {
	// PrimaryConnectionName returns the connection used when none is named.
	PrimaryConnectionName() string

	// Has reports whether a connection with the given name is configured.
	Has(name string) bool

	// Connection returns a client for the named connection.
	Connection(name string) (QueryClient, error)

	// Names returns every configured connection name.
	Names() []string

	// CloseAll releases every managed connection.
	CloseAll(force bool) error
}

// QueryClient defines the operations run against a single connection.
type QueryClient interface {
	// Dialect returns the normalized client name (postgres, mysql, sqlite, sqlserver).
	Dialect() string

	// GetAllTables returns table names in the given schema namespaces.
	GetAllTables(ctx context.Context, schemas []string) ([]string, error)

	// Truncate removes every row of table. With cascade, rows referencing
	// the table are removed as well where the engine supports it.
	Truncate(ctx context.Context, table string, cascade bool) error
}
