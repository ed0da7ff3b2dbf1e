// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/godev/internal/core/domain"
)

// Mirror is the boundary to the local mirror of the upstream history. It is
// the sole source of truth for resolving references and materializing
// checkouts.
//
//go:generate go run go.uber.org/mock/mockgen -source=mirror.go -destination=mocks/mock_mirror.go -package=mocks
type Mirror interface {
	// EnsureCloned initializes the mirror on first use. Idempotent.
	EnsureCloned(ctx context.Context) error

	// Fetch updates the tracked branch from the configured remotes, trying
	// them in preference order. It returns domain.ErrMirrorUnreachable when
	// every remote failed.
	Fetch(ctx context.Context, branch string) error

	// ResolveCommit maps a ref (branch, tag, short or full hash) to a
	// canonical commit identifier. Refs that do not resolve, or resolve to a
	// non-commit object, yield domain.ErrUnknownRevision.
	ResolveCommit(ref string) (domain.CommitID, error)

	// Head returns the current head of the given branch in the mirror.
	Head(branch string) (domain.CommitID, error)

	// Materialize writes the commit's full tree under dest, preserving file
	// modes. dest must not already exist.
	Materialize(ctx context.Context, id domain.CommitID, dest string) error

	// Log returns summaries for the given commits ordered by commit time
	// descending. Unknown identifiers are skipped.
	Log(ids []domain.CommitID) ([]domain.Summary, error)
}
