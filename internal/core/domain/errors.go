package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrUnknownRevision is returned when a ref cannot be resolved to a commit
	// in the mirrored history.
	ErrUnknownRevision = zerr.New("unknown revision")

	// ErrMirrorUnreachable is returned when fetching from every configured
	// remote failed.
	ErrMirrorUnreachable = zerr.New("mirror unreachable: all remotes failed")

	// ErrBuildFailed is returned when the external build routine exited
	// non-zero. The exit code is attached as metadata.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNotBuilt is returned when an operation requires a binary artifact
	// that does not exist. Run "godev build <ref>" first.
	ErrNotBuilt = zerr.New("revision not built; run \"godev build <ref>\" first")

	// ErrTipNeverBuilt is returned when the tip sentinel is used before any
	// tip build succeeded.
	ErrTipNeverBuilt = zerr.New("tip never built; run \"godev build tip\" first")

	// ErrNotFound is returned when a removal target is absent.
	ErrNotFound = zerr.New("no such build")

	// ErrNoBuilds is returned by list when nothing has been built yet.
	ErrNoBuilds = zerr.New("no builds yet; run \"godev build <ref>\" first")

	// ErrTipLazyRun is returned when the tip sentinel is given to the
	// run-with-lazy-build command; a moving target makes lazy build ambiguous.
	ErrTipLazyRun = zerr.New("tip cannot be lazily built; run \"godev build tip\" then \"godev -s tip\"")
)

// exitCodeKey is the zerr metadata key carrying a child process exit code.
const exitCodeKey = "exit_code"

// WithExitCode attaches a child process exit code to err.
func WithExitCode(err error, code int) error {
	return zerr.With(err, exitCodeKey, code)
}

// ExitCode extracts a child process exit code from err. It returns 0 and
// false if no exit code is attached anywhere in the chain.
func ExitCode(err error) (int, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		zErr, ok := e.(*zerr.Error)
		if !ok {
			continue
		}
		if v, ok := zErr.Metadata()[exitCodeKey]; ok {
			if code, ok := v.(int); ok {
				return code, true
			}
		}
	}
	return 0, false
}
