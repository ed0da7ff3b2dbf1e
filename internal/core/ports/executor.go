package ports

import "context"

// Executor invokes external processes: the toolchain's build routine and the
// built toolchain binary itself.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Build runs the external build routine inside a checkout, streaming its
	// output to the logger. A non-zero exit yields domain.ErrBuildFailed with
	// the exit code attached.
	Build(ctx context.Context, checkoutDir string) error

	// Run invokes bin with args, inheriting the caller's stdio, with extra
	// environment entries in "KEY=VALUE" form appended. A non-zero exit is
	// returned with the child's exit code attached for verbatim propagation.
	Run(ctx context.Context, bin string, args []string, extraEnv []string) error
}
