// Package wire provides dependency injection for the lucid CLI.
// It creates singleton services with lazy initialization.
package wire

import (
	"fmt"
	"io"
	"os"
	"sync"

	cliadapter "github.com/abelorian/lucid/internal/adapters/cli"
	"github.com/abelorian/lucid/internal/adapters/filesystem"
	"github.com/abelorian/lucid/internal/adapters/prompt"
	"github.com/abelorian/lucid/internal/app"
	"github.com/abelorian/lucid/internal/config"
	"github.com/abelorian/lucid/internal/db"
	"github.com/abelorian/lucid/internal/logger"
	"github.com/abelorian/lucid/internal/ports/primary"
	"github.com/abelorian/lucid/internal/scaffold"
	"github.com/abelorian/lucid/internal/subcommand"
	"github.com/abelorian/lucid/internal/ui"
)

// Options are the global flags that shape wiring.
type Options struct {
	ConfigPath     string
	Verbose        bool
	NonInteractive bool
}

var (
	opts            Options
	cfg             *config.Config
	log             = logger.Nop()
	printer         = ui.New(os.Stdout, os.Stderr)
	scaffoldService primary.ModelScaffolder
	truncateService primary.Truncator
	initErr         error
	once            sync.Once
)

// Configure records global options. It must be called before any service
// accessor; later calls have no effect once services are built.
func Configure(o Options) {
	opts = o
	level := "warn"
	if o.Verbose {
		level = "debug"
	}
	log = logger.New(logger.Options{Level: level, Output: os.Stderr})
}

// Printer returns the shared operator output printer.
func Printer() *ui.Printer {
	return printer
}

// Logger returns the shared logger.
func Logger() *logger.Logger {
	return log
}

// ScaffoldAdapter returns a new ScaffoldAdapter writing to stdout.
func ScaffoldAdapter() (*cliadapter.ScaffoldAdapter, error) {
	return ScaffoldAdapterWithOutput(os.Stdout, os.Stderr)
}

// ScaffoldAdapterWithOutput returns a new ScaffoldAdapter writing to the given output.
func ScaffoldAdapterWithOutput(out, errOut io.Writer) (*cliadapter.ScaffoldAdapter, error) {
	once.Do(initServices)
	if initErr != nil {
		return nil, initErr
	}
	return cliadapter.NewScaffoldAdapter(scaffoldService, ui.New(out, errOut), cfg.App.Root), nil
}

// TruncateAdapter returns a new TruncateAdapter writing to stdout.
func TruncateAdapter() (*cliadapter.TruncateAdapter, error) {
	return TruncateAdapterWithOutput(os.Stdout, os.Stderr)
}

// TruncateAdapterWithOutput returns a new TruncateAdapter writing to the given output.
func TruncateAdapterWithOutput(out, errOut io.Writer) (*cliadapter.TruncateAdapter, error) {
	once.Do(initServices)
	if initErr != nil {
		return nil, initErr
	}
	return cliadapter.NewTruncateAdapter(truncateService, ui.New(out, errOut)), nil
}

// Shutdown flushes the logger.
func Shutdown() {
	_ = log.Sync()
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	root, err := config.WorkingDir()
	if err != nil {
		initErr = err
		return
	}

	cfg, err = config.Load(root, opts.ConfigPath)
	if err != nil {
		initErr = err
		return
	}
	log.With(
		"environment", cfg.App.Environment,
		"root", cfg.App.Root,
		"connection", cfg.Database.Connection,
	).Debug("loaded config")

	executable := cfg.App.Executable
	if executable == "" {
		executable, err = os.Executable()
		if err != nil {
			initErr = fmt.Errorf("failed to locate lucid executable: %w", err)
			return
		}
	}

	subEnv := childEnv(cfg)

	// Secondary adapters
	prompter := prompt.NewTerminalPrompter(opts.NonInteractive)
	resolver := filesystem.NewNamespaceResolver(cfg.App.Root, cfg.Directories)
	generator := scaffold.NewGenerator(
		scaffold.WithResolver(resolver),
		scaffold.WithLogger(log.Logger),
	)
	runner := subcommand.NewRunner(os.Stdout, log.Logger)
	registry := db.NewRegistry(cfg.Database.Connection, cfg.Database.Connections, log.Logger)

	// Services (primary ports implementation)
	scaffoldService = app.NewScaffoldService(generator, runner, prompter, log.Logger, app.ScaffoldConfig{
		AppRoot:    cfg.App.Root,
		Executable: executable,
		Env:        subEnv,
	})
	truncateService = app.NewTruncateService(registry, prompter, log.Logger, app.TruncateConfig{
		InProduction:  cfg.InProduction(),
		Schemas:       cfg.Database.Schemas,
		ExcludeTables: cfg.Database.ExcludeTables,
	})
}

// childEnv points dependent generators at the config file this process read,
// since they run inside the app root rather than the current directory.
func childEnv(c *config.Config) map[string]string {
	env := map[string]string{}
	if c.File != "" {
		env[config.PathEnv] = c.File
	}
	return env
}
