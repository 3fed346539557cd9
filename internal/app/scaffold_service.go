package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/abelorian/lucid/internal/config"
	"github.com/abelorian/lucid/internal/naming"
	"github.com/abelorian/lucid/internal/ports/primary"
	"github.com/abelorian/lucid/internal/ports/secondary"
	"github.com/abelorian/lucid/internal/scaffold"
	"github.com/abelorian/lucid/internal/templates"
)

// Fallback directories used when the resolver has nothing configured.
const (
	DefaultModelsDir      = "app/models"
	DefaultMigrationsDir  = "database/migrations"
	DefaultControllersDir = "app/controllers"
)

// Dependent generator commands run by make-model.
const (
	CommandMakeMigration  = "make-migration"
	CommandMakeController = "make-controller"
)

// ScaffoldConfig holds the settings the generators read.
type ScaffoldConfig struct {
	AppRoot    string
	Executable string            // binary invoked for dependent generators
	Env        map[string]string // extra environment for dependent generators
}

// ScaffoldService implements the ModelScaffolder interface.
type ScaffoldService struct {
	generator  *scaffold.Generator
	runner     secondary.CommandRunner
	prompter   secondary.Prompter
	logger     *zap.Logger
	appRoot    string
	executable string
	env        map[string]string
	now        func() time.Time
}

var _ primary.ModelScaffolder = (*ScaffoldService)(nil)

// NewScaffoldService creates a new ScaffoldService with injected dependencies.
func NewScaffoldService(
	generator *scaffold.Generator,
	runner secondary.CommandRunner,
	prompter secondary.Prompter,
	logger *zap.Logger,
	cfg ScaffoldConfig,
) *ScaffoldService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScaffoldService{
		generator:  generator,
		runner:     runner,
		prompter:   prompter,
		logger:     logger,
		appRoot:    cfg.AppRoot,
		executable: cfg.Executable,
		env:        cfg.Env,
		now:        time.Now,
	}
}

// MakeModel writes the model file, then runs make-migration and
// make-controller as separate processes, one after the other. A failed
// step stops the ones after it.
func (s *ScaffoldService) MakeModel(ctx context.Context, req primary.MakeModelRequest) (*primary.MakeModelResult, error) {
	file, err := s.generatorFor(req.Force).Generate(scaffold.GenerationRequest{
		Identifier:   req.Name,
		Pattern:      naming.Pattern{Casing: naming.Snake, Plurality: naming.Singular},
		Extension:    ".go",
		TemplatePath: templates.StubModel,
		Namespace:    config.DirModels,
		FallbackDir:  DefaultModelsDir,
		AppRoot:      s.appRoot,
	})
	if err != nil {
		return nil, err
	}

	result := &primary.MakeModelResult{Model: toGeneratedFile(file)}
	if req.OnModelWritten != nil {
		req.OnModelWritten(result.Model)
	}

	if req.Migration {
		if err := s.runGenerator(ctx, CommandMakeMigration, req.Name); err != nil {
			return result, err
		}
		result.Steps = append(result.Steps, CommandMakeMigration)
	}

	if req.Controller {
		if err := s.runGenerator(ctx, CommandMakeController, req.Name, "--resource"); err != nil {
			return result, err
		}
		result.Steps = append(result.Steps, CommandMakeController)
	}

	return result, nil
}

// MakeMigration writes <unix-timestamp>_<table>.sql into the migrations directory.
func (s *ScaffoldService) MakeMigration(ctx context.Context, req primary.MakeMigrationRequest) (*primary.GeneratedFile, error) {
	table := req.Table
	if table == "" {
		var err error
		table, err = naming.Transform(req.Name, naming.Pattern{Casing: naming.Snake, Plurality: naming.Plural})
		if err != nil {
			return nil, err
		}
	}

	prefix := fmt.Sprintf("%d_", s.now().Unix())
	file, err := s.generator.Generate(scaffold.GenerationRequest{
		Identifier:   req.Name,
		Pattern:      naming.Pattern{Casing: naming.Snake, Plurality: naming.Plural},
		Prefix:       prefix,
		Extension:    ".sql",
		TemplatePath: templates.StubMigration,
		Namespace:    config.DirMigrations,
		FallbackDir:  DefaultMigrationsDir,
		AppRoot:      s.appRoot,
		Variables: map[string]string{
			"tableName":     table,
			"migrationName": prefix + table,
		},
	})
	if err != nil {
		return nil, err
	}
	return toGeneratedFile(file), nil
}

// MakeController writes <plural>_controller.go into the controllers directory.
func (s *ScaffoldService) MakeController(ctx context.Context, req primary.MakeControllerRequest) (*primary.GeneratedFile, error) {
	stub := templates.StubController
	if req.Resource {
		stub = templates.StubControllerResource
	}

	file, err := s.generator.Generate(scaffold.GenerationRequest{
		Identifier:   req.Name,
		Pattern:      naming.Pattern{Casing: naming.Snake, Plurality: naming.Plural},
		Suffix:       "_controller",
		Extension:    ".go",
		TemplatePath: stub,
		Namespace:    config.DirControllers,
		FallbackDir:  DefaultControllersDir,
		AppRoot:      s.appRoot,
	})
	if err != nil {
		return nil, err
	}
	return toGeneratedFile(file), nil
}

// generatorFor returns the generator to use for a model write. Without
// force, replacing an existing file needs confirmation.
func (s *ScaffoldService) generatorFor(force bool) *scaffold.Generator {
	if force || s.prompter == nil {
		return s.generator
	}
	return s.generator.With(scaffold.WithOverwrite(s.confirmOverwrite))
}

func (s *ScaffoldService) confirmOverwrite(path string) (bool, error) {
	display := path
	if rel, err := filepath.Rel(s.appRoot, path); err == nil && s.appRoot != "" {
		display = rel
	}
	ok, err := s.prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite it?", display))
	if err != nil {
		s.logger.Debug("overwrite prompt failed", zap.String("path", path), zap.Error(err))
		return false, nil
	}
	return ok, nil
}

func (s *ScaffoldService) runGenerator(ctx context.Context, command string, args ...string) error {
	spec := secondary.CommandSpec{
		Executable: s.executable,
		Args:       append([]string{command}, args...),
		Env:        s.env,
		Dir:        s.appRoot,
	}
	s.logger.Debug("running generator", zap.String("executable", spec.Executable), zap.Strings("args", spec.Args))
	return s.runner.Run(ctx, spec)
}

func toGeneratedFile(f *scaffold.GeneratedFile) *primary.GeneratedFile {
	return &primary.GeneratedFile{Path: f.Path, Overwritten: f.Overwritten}
}
