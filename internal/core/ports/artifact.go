package ports

import (
	"go.trai.ch/godev/internal/core/domain"
)

// ArtifactStore owns the binary artifact entries, keyed by commit. Entries
// are expensive to produce and are either absent or complete, never partial.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifact.go -destination=mocks/mock_artifact.go -package=mocks
type ArtifactStore interface {
	// Has reports whether a complete entry exists: the entry's binary must be
	// present and executable. A directory without one counts as absent.
	Has(id domain.CommitID) bool

	// Get returns the entry's paths, or domain.ErrNotBuilt when absent.
	Get(id domain.CommitID) (domain.ArtifactPaths, error)

	// Put copies the binary and tool trees out of a built checkout into a new
	// entry. The entry becomes visible atomically; losing the publish race to
	// a concurrent builder is success.
	Put(id domain.CommitID, checkoutDir string) (domain.ArtifactPaths, error)

	// Remove deletes the entry, or returns domain.ErrNotFound when absent.
	Remove(id domain.CommitID) error

	// List returns the identifiers of all complete entries, or
	// domain.ErrNoBuilds when the artifacts root does not exist.
	List() ([]domain.CommitID, error)

	// RestoreInto re-links the entry's binary and tool trees into a restored
	// checkout at the same relative positions the build produced.
	RestoreInto(id domain.CommitID, checkoutDir string) error
}

// TipAlias is the single movable pointer naming the most recently built
// commit on the tracked branch. The alias target is the only source of truth.
type TipAlias interface {
	// Set atomically repoints the alias at id. Readers never observe a
	// half-updated alias.
	Set(id domain.CommitID) error

	// Resolve follows the alias, or returns domain.ErrTipNeverBuilt when it
	// was never set.
	Resolve() (domain.CommitID, error)

	// Clear unsets the alias. Clearing an unset alias is a no-op.
	Clear() error
}
