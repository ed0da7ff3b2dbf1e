// Package artifact implements the binary artifact cache and the tip alias.
// Entries are expensive to produce; the store's one job is to make them
// either absent or complete, never partial.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"go.trai.ch/godev/internal/adapters/fs"
	"go.trai.ch/godev/internal/core/domain"
	"go.trai.ch/godev/internal/core/ports"
)

// Store implements ports.ArtifactStore under a single directory with one
// subdirectory per commit. The relative layout inside an entry matches the
// layout the build routine produced inside its checkout.
type Store struct {
	dir    string
	spec   ports.BuildSpec
	logger ports.Logger
}

// NewStore creates an artifact store rooted at dir for builds described by
// spec.
func NewStore(dir string, spec ports.BuildSpec, logger ports.Logger) *Store {
	return &Store{
		dir:    filepath.Clean(dir),
		spec:   spec,
		logger: logger,
	}
}

func (s *Store) entryDir(id domain.CommitID) string {
	return filepath.Join(s.dir, id.String())
}

func (s *Store) paths(id domain.CommitID) domain.ArtifactPaths {
	root := s.entryDir(id)
	tools := make([]string, 0, len(s.spec.ToolDirs))
	for _, dir := range s.spec.ToolDirs {
		tools = append(tools, filepath.Join(root, filepath.FromSlash(dir)))
	}
	return domain.ArtifactPaths{
		Root:     root,
		Binary:   filepath.Join(root, filepath.FromSlash(s.spec.Binary)),
		ToolDirs: tools,
	}
}

// Has reports whether a complete entry exists for id. Only an executable
// binary counts: a directory left behind by an interrupted build is treated
// as absent, which is what makes rebuilding idempotent after a failure.
func (s *Store) Has(id domain.CommitID) bool {
	return fs.IsExecutable(s.paths(id).Binary)
}

// Get returns the entry's paths, or domain.ErrNotBuilt when absent.
func (s *Store) Get(id domain.CommitID) (domain.ArtifactPaths, error) {
	if !s.Has(id) {
		return domain.ArtifactPaths{}, zerr.With(zerr.Wrap(domain.ErrNotBuilt, "no artifact entry"), "commit", id.String())
	}
	return s.paths(id), nil
}

// Put copies the built binary and tool trees out of checkoutDir into a new
// entry. The copy lands in a staging directory first and is renamed into
// place, so the entry becomes visible only once complete. Losing the rename
// race to a concurrent builder is success: the winner's entry is equivalent.
func (s *Store) Put(id domain.CommitID, checkoutDir string) (domain.ArtifactPaths, error) {
	final := s.entryDir(id)
	staging := fmt.Sprintf("%s.staging-%d", final, os.Getpid())
	if err := os.RemoveAll(staging); err != nil {
		return domain.ArtifactPaths{}, zerr.Wrap(err, "failed to clear stale staging directory")
	}

	rels := append([]string{s.spec.Binary}, s.spec.ToolDirs...)
	for _, rel := range rels {
		src := filepath.Join(checkoutDir, filepath.FromSlash(rel))
		dst := filepath.Join(staging, filepath.FromSlash(rel))

		if _, err := os.Stat(src); err != nil {
			_ = os.RemoveAll(staging)
			return domain.ArtifactPaths{}, zerr.With(zerr.Wrap(err, "build output missing"), "path", src)
		}

		// CopyTree handles both a single binary and a full tool tree.
		if err := fs.CopyTree(src, dst); err != nil {
			_ = os.RemoveAll(staging)
			return domain.ArtifactPaths{}, zerr.With(zerr.Wrap(err, "failed to copy build output"), "path", src)
		}
	}

	if err := os.Rename(staging, final); err != nil {
		_ = os.RemoveAll(staging)
		if s.Has(id) {
			// A concurrent builder published first.
			return s.paths(id), nil
		}
		return domain.ArtifactPaths{}, zerr.With(zerr.Wrap(err, "failed to publish artifact entry"), "commit", id.String())
	}
	return s.paths(id), nil
}

// Remove deletes the entry for id. Removal is explicit user intent to
// reclaim space, so a missing entry is reported, not ignored.
func (s *Store) Remove(id domain.CommitID) error {
	final := s.entryDir(id)
	if _, err := os.Lstat(final); err != nil {
		if os.IsNotExist(err) {
			return zerr.With(zerr.Wrap(domain.ErrNotFound, "nothing to remove"), "commit", id.String())
		}
		return zerr.Wrap(err, "failed to inspect artifact entry")
	}
	if err := os.RemoveAll(final); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove artifact entry"), "commit", id.String())
	}
	return nil
}

// List returns the identifiers of all complete entries. The tip alias link
// and staging leftovers are not entries and are skipped.
func (s *Store) List() ([]domain.CommitID, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoBuilds
		}
		return nil, zerr.Wrap(err, "failed to read artifacts directory")
	}

	ids := make([]domain.CommitID, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.Contains(name, ".") {
			continue
		}
		id := domain.CommitID(name)
		if s.Has(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// RestoreInto re-links the entry's binary and tool trees into a restored
// checkout at the positions the build originally produced them, so running
// against a reconstructed checkout behaves identically to the original one.
func (s *Store) RestoreInto(id domain.CommitID, checkoutDir string) error {
	paths, err := s.Get(id)
	if err != nil {
		return err
	}

	rels := append([]string{s.spec.Binary}, s.spec.ToolDirs...)
	for _, rel := range rels {
		src := filepath.Join(paths.Root, filepath.FromSlash(rel))
		dst := filepath.Join(checkoutDir, filepath.FromSlash(rel))
		if err := fs.EnsureSymlink(src, dst); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to restore build output"), "path", dst)
		}
	}
	return nil
}
