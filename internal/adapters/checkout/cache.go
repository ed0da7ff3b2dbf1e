// Package checkout implements the source checkout cache. Entries are bulky
// but cheap to regenerate from the mirror, so the cache is pure disk space:
// evicting it never affects the binary artifact cache.
package checkout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"go.trai.ch/godev/internal/core/domain"
	"go.trai.ch/godev/internal/core/ports"
)

// Cache implements ports.CheckoutCache under a single directory with one
// subdirectory per commit.
type Cache struct {
	dir    string
	mirror ports.Mirror
	logger ports.Logger
	group  singleflight.Group
}

// New creates a checkout cache rooted at dir, materializing entries from the
// given mirror.
func New(dir string, mirror ports.Mirror, logger ports.Logger) *Cache {
	return &Cache{
		dir:    filepath.Clean(dir),
		mirror: mirror,
		logger: logger,
	}
}

// Ensure returns the checkout directory for id, materializing it on first
// demand. An existing directory is trusted without an integrity re-check.
// Concurrent in-process calls for the same commit collapse to one
// materialization; losing the cross-process rename race adopts the winner's
// directory.
func (c *Cache) Ensure(ctx context.Context, id domain.CommitID) (string, error) {
	path := filepath.Join(c.dir, id.String())

	v, err, _ := c.group.Do(id.String(), func() (any, error) {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		c.logger.Info("restoring source checkout for " + id.Short())
		if err := c.materialize(ctx, id, path); err != nil {
			return nil, err
		}
		return path, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// materialize writes the tree into a staging directory and renames it into
// place. The rename is the only step that makes the entry visible, so a
// half-written checkout is never observed under the final path.
func (c *Cache) materialize(ctx context.Context, id domain.CommitID, path string) error {
	if err := os.MkdirAll(c.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create checkouts directory")
	}

	staging := fmt.Sprintf("%s.staging-%d", path, os.Getpid())
	if err := os.RemoveAll(staging); err != nil {
		return zerr.Wrap(err, "failed to clear stale staging directory")
	}

	if err := c.mirror.Materialize(ctx, id, staging); err != nil {
		_ = os.RemoveAll(staging)
		return err
	}

	if err := os.Rename(staging, path); err != nil {
		_ = os.RemoveAll(staging)
		// A concurrent invocation won the race; its checkout is as good
		// as ours.
		if _, statErr := os.Stat(path); statErr == nil {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to publish checkout"), "commit", id.String())
	}
	return nil
}

// Remove deletes the checkout for id if present.
func (c *Cache) Remove(id domain.CommitID) error {
	path := filepath.Join(c.dir, id.String())
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove checkout"), "commit", id.String())
	}
	return nil
}

// EvictAll removes every checkout currently present and reports the count.
// Entries deleted externally mid-walk are tolerated.
func (c *Cache) EvictAll() (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, zerr.Wrap(err, "failed to read checkouts directory")
	}

	removed := 0
	for _, entry := range entries {
		path := filepath.Join(c.dir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return removed, zerr.With(zerr.Wrap(err, "failed to evict checkout"), "path", path)
		}
		removed++
	}
	return removed, nil
}
