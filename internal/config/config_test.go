package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, dir, cfg.App.Root)
	assert.False(t, cfg.InProduction())
	assert.Equal(t, "sqlite", cfg.Database.Connection)
	assert.Equal(t, []string{"public"}, cfg.Database.Schemas)
	assert.Equal(t, []string{"adonis_schema", "adonis_schema_versions"}, cfg.Database.ExcludeTables)
	assert.Equal(t, "app/models", cfg.Directories[DirModels])
	assert.Equal(t, "database/migrations", cfg.Directories[DirMigrations])
	assert.Equal(t, "app/controllers", cfg.Directories[DirControllers])
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
app:
  environment: production
directories:
  models: internal/models
database:
  connection: pg
  connections:
    pg:
      client: postgresql
      dsn: postgres://localhost/app
    local:
      client: sqlite3
      dsn: file:app.db
`)

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.True(t, cfg.InProduction())
	assert.Equal(t, "internal/models", cfg.Directories[DirModels])
	assert.Equal(t, "database/migrations", cfg.Directories[DirMigrations])
	assert.Equal(t, "pg", cfg.Database.Connection)
	require.Len(t, cfg.Database.Connections, 2)
	assert.Equal(t, "postgresql", cfg.Database.Connections["pg"].Client)
	assert.Equal(t, "file:app.db", cfg.Database.Connections["local"].DSN)
}

func TestLoad_RecordsFileUsed(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "app:\n  environment: test\n")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)

	other := t.TempDir()
	cfg, err = Load(other, path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_RelativeRootResolvesAgainstConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "app:\n  root: backend\n")
	want := filepath.Join(dir, "backend")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, want, cfg.App.Root)

	// A dependent generator runs inside the app root and finds the same file.
	cfg, err = Load(want, path)
	require.NoError(t, err)
	assert.Equal(t, want, cfg.App.Root)
}

func TestLoad_RelativeRootWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LUCID_APP_ROOT", "backend")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backend"), cfg.App.Root)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "app:\n  environment: development\n")
	t.Setenv("LUCID_APP_ENVIRONMENT", "prod")

	cfg, err := Load(dir, "")
	require.NoError(t, err)
	assert.True(t, cfg.InProduction())
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing client", "database:\n  connections:\n    pg:\n      dsn: postgres://x\n"},
		{"missing dsn", "database:\n  connections:\n    pg:\n      client: postgres\n"},
		{"empty primary", "database:\n  connection: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, err := Load(dir, "")
			assert.Error(t, err)
		})
	}
}

func TestInProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"PRODUCTION", true},
		{" prod ", true},
		{"development", false},
		{"test", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := &Config{App: AppConfig{Environment: tt.env}}
			assert.Equal(t, tt.want, cfg.InProduction())
		})
	}
}
