package primary

import "context"

// ModelScaffolder defines the primary port for generating models and their
// dependent files.
type ModelScaffolder interface {
	// MakeModel writes the model file, then runs the requested dependent
	// generators in order: migration before controller.
	MakeModel(ctx context.Context, req MakeModelRequest) (*MakeModelResult, error)

	// MakeMigration writes a timestamped migration file.
	MakeMigration(ctx context.Context, req MakeMigrationRequest) (*GeneratedFile, error)

	// MakeController writes a controller file.
	MakeController(ctx context.Context, req MakeControllerRequest) (*GeneratedFile, error)
}

// MakeModelRequest contains parameters for make-model.
type MakeModelRequest struct {
	Name       string
	Migration  bool
	Controller bool
	// Force overwrites an existing model file without asking.
	Force bool
	// OnModelWritten, when set, is called after the model file is written
	// and before any dependent generator starts.
	OnModelWritten func(*GeneratedFile)
}

// MakeModelResult contains the outcome of make-model.
type MakeModelResult struct {
	Model *GeneratedFile
	// Steps lists the dependent generators that ran, in order.
	Steps []string
}

// MakeMigrationRequest contains parameters for make-migration.
type MakeMigrationRequest struct {
	Name string
	// Table overrides the table name derived from Name.
	Table string
}

// MakeControllerRequest contains parameters for make-controller.
type MakeControllerRequest struct {
	Name     string
	Resource bool
}

// GeneratedFile describes a file written by a generator.
type GeneratedFile struct {
	Path        string
	Overwritten bool
}
