// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/abelorian/lucid/internal/ports/primary"
	"github.com/abelorian/lucid/internal/scaffold"
	"github.com/abelorian/lucid/internal/ui"
)

// ScaffoldAdapter translates generator commands to ModelScaffolder calls.
type ScaffoldAdapter struct {
	service primary.ModelScaffolder
	ui      *ui.Printer
	root    string
}

// NewScaffoldAdapter creates a new ScaffoldAdapter. Paths are printed
// relative to root.
func NewScaffoldAdapter(service primary.ModelScaffolder, printer *ui.Printer, root string) *ScaffoldAdapter {
	return &ScaffoldAdapter{
		service: service,
		ui:      printer,
		root:    root,
	}
}

// MakeModel generates a model and the requested dependent files. The model
// line is printed as soon as the file exists, ahead of dependent output.
func (a *ScaffoldAdapter) MakeModel(ctx context.Context, req primary.MakeModelRequest) error {
	req.OnModelWritten = a.printFile
	_, err := a.service.MakeModel(ctx, req)
	if errors.Is(err, scaffold.ErrOverwriteDeclined) {
		a.ui.Warning("%v", err)
		return nil
	}
	return err
}

// MakeMigration generates a migration file.
func (a *ScaffoldAdapter) MakeMigration(ctx context.Context, req primary.MakeMigrationRequest) error {
	file, err := a.service.MakeMigration(ctx, req)
	if err != nil {
		return err
	}
	a.printFile(file)
	return nil
}

// MakeController generates a controller file.
func (a *ScaffoldAdapter) MakeController(ctx context.Context, req primary.MakeControllerRequest) error {
	file, err := a.service.MakeController(ctx, req)
	if err != nil {
		return err
	}
	a.printFile(file)
	return nil
}

func (a *ScaffoldAdapter) printFile(file *primary.GeneratedFile) {
	action := "CREATE"
	if file.Overwritten {
		action = "OVERWRITE"
	}
	a.ui.Action(action, a.relative(file.Path))
}

func (a *ScaffoldAdapter) relative(path string) string {
	if a.root == "" || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(a.root, path); err == nil {
		return rel
	}
	return path
}
