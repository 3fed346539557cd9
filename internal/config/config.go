// Package config loads lucid.yaml and LUCID_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the project root when no explicit path is given.
const FileName = "lucid.yaml"

// EnvPrefix prefixes every environment override (LUCID_APP_ENVIRONMENT, ...).
const EnvPrefix = "LUCID"

// PathEnv names an explicit config file. It is how a parent lucid process
// hands its --config to dependent generators.
const PathEnv = EnvPrefix + "_CONFIG"

// Directory kinds understood by the resolver.
const (
	DirModels      = "models"
	DirMigrations  = "migrations"
	DirControllers = "controllers"
)

// Config represents the project configuration.
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Directories map[string]string `mapstructure:"directories"`
	Database    DatabaseConfig    `mapstructure:"database"`

	// File is the absolute path of the config file that was read, empty when
	// only defaults and environment were used.
	File string `mapstructure:"-"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Environment string `mapstructure:"environment"` // development, test, production
	Root        string `mapstructure:"root"`        // project root, relative to the config file
	Executable  string `mapstructure:"executable"`  // binary used for dependent generators
}

// DatabaseConfig holds the named connections.
type DatabaseConfig struct {
	Connection    string                      `mapstructure:"connection"` // primary connection name
	Connections   map[string]ConnectionConfig `mapstructure:"connections"`
	Schemas       []string                    `mapstructure:"schemas"`        // namespaces scanned by db-truncate
	ExcludeTables []string                    `mapstructure:"exclude_tables"` // never truncated
}

// ConnectionConfig describes one named connection.
type ConnectionConfig struct {
	Client string `mapstructure:"client"` // postgres, mysql, sqlite, sqlserver (aliases accepted)
	DSN    string `mapstructure:"dsn"`
}

// InProduction reports whether the environment is production-like.
func (c *Config) InProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.App.Environment)) {
	case "production", "prod":
		return true
	default:
		return false
	}
}

// Load reads configuration. If path is empty, FileName is looked up in dir
// and a missing file is not an error; an explicit path must exist.
// A relative app.root is resolved against the config file's directory, or
// dir when no file was read, so the returned Root is always absolute.
func Load(dir, path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	base := dir
	if used := v.ConfigFileUsed(); used != "" {
		abs, err := filepath.Abs(used)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
		cfg.File = abs
		base = filepath.Dir(abs)
	}
	if !filepath.IsAbs(cfg.App.Root) {
		root, err := filepath.Abs(filepath.Join(base, cfg.App.Root))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve app.root: %w", err)
		}
		cfg.App.Root = root
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.root", dir)
	v.SetDefault("app.executable", "")
	v.SetDefault("directories."+DirModels, "app/models")
	v.SetDefault("directories."+DirMigrations, "database/migrations")
	v.SetDefault("directories."+DirControllers, "app/controllers")
	v.SetDefault("database.connection", "sqlite")
	v.SetDefault("database.schemas", []string{"public"})
	v.SetDefault("database.exclude_tables", []string{"adonis_schema", "adonis_schema_versions"})
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Database.Connection) == "" {
		return fmt.Errorf("database.connection must name the primary connection")
	}
	for name, conn := range cfg.Database.Connections {
		if conn.Client == "" {
			return fmt.Errorf("database.connections.%s.client is required", name)
		}
		if conn.DSN == "" {
			return fmt.Errorf("database.connections.%s.dsn is required", name)
		}
	}
	return nil
}

// WorkingDir returns the current directory, used as the default project root.
func WorkingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return dir, nil
}
