package secondary

import "context"

// CommandSpec describes an external command invocation.
type CommandSpec struct {
	Executable string
	Args       []string
	// Env holds overrides layered on top of the inherited environment.
	Env map[string]string
	Dir string
}

// CommandRunner defines the secondary port for running external commands.
type CommandRunner interface {
	// Run blocks until the command exits.
	Run(ctx context.Context, spec CommandSpec) error
}
