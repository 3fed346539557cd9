// Package subcommand runs dependent CLI invocations as child processes.
package subcommand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abelorian/lucid/internal/ports/secondary"
)

// ForceColorEnv is always set on child processes so generators that format
// terminal output keep their colors when the parent pipes their streams.
const ForceColorEnv = "FORCE_COLOR"

// SubCommandFailedError is returned when a child process cannot be started
// or exits non-zero. ExitCode is -1 when the process never ran.
type SubCommandFailedError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *SubCommandFailedError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("command %q failed to start: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q exited with code %d", e.Command, e.ExitCode)
}

func (e *SubCommandFailedError) Unwrap() error {
	return e.Err
}

// Runner executes commands and forwards their output.
type Runner struct {
	out    io.Writer
	logger *zap.Logger
}

var _ secondary.CommandRunner = (*Runner)(nil)

// NewRunner creates a Runner that forwards child output to out.
// If logger is nil, a no-op logger is used.
func NewRunner(out io.Writer, logger *zap.Logger) *Runner {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{out: out, logger: logger}
}

// Run executes spec and blocks until it exits. Captured stdout and stderr are
// written to the runner's output whether or not the command succeeded.
func (r *Runner) Run(ctx context.Context, spec secondary.CommandSpec) error {
	command := strings.TrimSpace(spec.Executable + " " + strings.Join(spec.Args, " "))
	start := time.Now()

	cmd := exec.CommandContext(ctx, spec.Executable, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = BuildEnv(os.Environ(), spec.Env)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running sub-command", zap.String("command", command), zap.String("dir", spec.Dir))
	err := cmd.Run()

	r.forward(stdout.String())
	r.forward(stderr.String())

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		r.logger.Debug("sub-command failed",
			zap.String("command", command),
			zap.Int("exit_code", exitCode),
			zap.Duration("duration", time.Since(start)))
		return &SubCommandFailedError{
			Command:  command,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}

	r.logger.Debug("sub-command finished",
		zap.String("command", command),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (r *Runner) forward(s string) {
	s = strings.TrimRight(s, " \t\r\n")
	if s == "" {
		return
	}
	fmt.Fprintln(r.out, s)
}

// BuildEnv layers overrides on top of base, then forces color output.
// Entries in base whose key is overridden are dropped; every other inherited
// entry is kept.
func BuildEnv(base []string, overrides map[string]string) []string {
	merged := make(map[string]string, len(overrides)+1)
	for k, v := range overrides {
		merged[k] = v
	}
	merged[ForceColorEnv] = "true"

	env := make([]string, 0, len(base)+len(merged))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := merged[key]; ok {
			continue
		}
		env = append(env, kv)
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+merged[k])
	}
	return env
}
