// Package shell provides the process executor adapter.
package shell

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/godev/internal/core/domain"
	"go.trai.ch/godev/internal/core/ports"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	spec   ports.BuildSpec
	logger ports.Logger
}

// NewExecutor creates an Executor running builds described by spec.
func NewExecutor(spec ports.BuildSpec, logger ports.Logger) *Executor {
	return &Executor{
		spec:   spec,
		logger: logger,
	}
}

// Build runs the external build routine inside checkoutDir. The routine's
// output is streamed to the logger line by line. It is invoked exactly once;
// a non-zero exit is domain.ErrBuildFailed with the exit code attached and
// is never retried here.
func (e *Executor) Build(ctx context.Context, checkoutDir string) error {
	if len(e.spec.Command) == 0 {
		return zerr.New("no build command configured")
	}

	name := e.spec.Command[0]
	args := e.spec.Command[1:]

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // command comes from config
	cmd.Dir = filepath.Join(checkoutDir, filepath.FromSlash(e.spec.Dir))
	cmd.Stdout = &logWriter{logger: e.logger, level: "info"}
	cmd.Stderr = &logWriter{logger: e.logger, level: "error"}

	if err := cmd.Run(); err != nil {
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return domain.WithExitCode(zerr.Wrap(domain.ErrBuildFailed, err.Error()), code)
	}
	return nil
}

// Run invokes bin with args, inheriting the caller's stdio so the toolchain
// behaves as if invoked directly. The child's exit code is attached to the
// returned error for verbatim propagation.
func (e *Executor) Run(ctx context.Context, bin string, args []string, extraEnv []string) error {
	cmd := exec.CommandContext(ctx, bin, args...) //nolint:gosec // binary comes from the artifact cache
	cmd.Env = append(os.Environ(), extraEnv...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		code := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return domain.WithExitCode(zerr.With(zerr.Wrap(err, "command failed"), "bin", bin), code)
	}
	return nil
}

type logWriter struct {
	logger ports.Logger
	level  string
}

// Write splits p into lines before handing them to the logger. Partial lines
// at buffer boundaries come through as separate log entries, which is good
// enough for streaming build output.
func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Error(zerr.New(line))
		}
	}
	return len(p), nil
}
