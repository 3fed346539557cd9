package app

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/abelorian/lucid/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.ConnectionRegistry = (*mockRegistry)(nil)
	_ secondary.QueryClient        = (*mockClient)(nil)
	_ secondary.Prompter           = (*mockPrompter)(nil)
	_ secondary.CommandRunner      = (*mockRunner)(nil)
)

// mockRegistry implements secondary.ConnectionRegistry for testing.
type mockRegistry struct {
	primary     string
	clients     map[string]*mockClient
	closeCalls  []bool
	connections []string
}

func newMockRegistry(primary string) *mockRegistry {
	return &mockRegistry{
		primary: primary,
		clients: make(map[string]*mockClient),
	}
}

func (m *mockRegistry) withClient(name string, c *mockClient) *mockRegistry {
	m.clients[name] = c
	return m
}

func (m *mockRegistry) PrimaryConnectionName() string { return m.primary }

func (m *mockRegistry) Has(name string) bool {
	_, ok := m.clients[name]
	return ok
}

func (m *mockRegistry) Connection(name string) (secondary.QueryClient, error) {
	m.connections = append(m.connections, name)
	c, ok := m.clients[name]
	if !ok {
		return nil, errors.New("connection not configured")
	}
	return c, nil
}

func (m *mockRegistry) Names() []string {
	names := make([]string, 0, len(m.clients))
	for name := range m.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *mockRegistry) CloseAll(force bool) error {
	m.closeCalls = append(m.closeCalls, force)
	return nil
}

// mockClient implements secondary.QueryClient for testing.
type mockClient struct {
	mu        sync.Mutex
	tables    []string
	tablesErr error
	failOn    map[string]error
	schemas   []string
	truncated []string
	cascades  []bool
}

func newMockClient(tables ...string) *mockClient {
	return &mockClient{tables: tables, failOn: make(map[string]error)}
}

func (m *mockClient) Dialect() string { return "postgres" }

func (m *mockClient) GetAllTables(ctx context.Context, schemas []string) ([]string, error) {
	m.schemas = schemas
	if m.tablesErr != nil {
		return nil, m.tablesErr
	}
	return m.tables, nil
}

func (m *mockClient) Truncate(ctx context.Context, table string, cascade bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failOn[table]; ok {
		return err
	}
	m.truncated = append(m.truncated, table)
	m.cascades = append(m.cascades, cascade)
	return nil
}

func (m *mockClient) truncatedSorted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]string(nil), m.truncated...)
	sort.Strings(out)
	return out
}

// mockPrompter implements secondary.Prompter for testing.
type mockPrompter struct {
	answer    bool
	err       error
	questions []string
}

func (m *mockPrompter) Confirm(question string) (bool, error) {
	m.questions = append(m.questions, question)
	return m.answer, m.err
}

// mockRunner implements secondary.CommandRunner for testing.
type mockRunner struct {
	specs  []secondary.CommandSpec
	failOn map[string]error
}

func newMockRunner() *mockRunner {
	return &mockRunner{failOn: make(map[string]error)}
}

func (m *mockRunner) Run(ctx context.Context, spec secondary.CommandSpec) error {
	m.specs = append(m.specs, spec)
	if len(spec.Args) > 0 {
		if err, ok := m.failOn[spec.Args[0]]; ok {
			return err
		}
	}
	return nil
}
