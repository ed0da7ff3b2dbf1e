// Package app implements the command dispatcher for godev. Each invocation
// is stateless: every operation reads cache state fresh and relies on the
// adapters' atomic-publish guarantees to stay consistent with concurrent
// invocations against the same cache root.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/godev/internal/core/domain"
	"go.trai.ch/godev/internal/core/ports"
)

// App ties the mirror, the two caches, the tip alias and the executor into
// the user-facing operations.
type App struct {
	config    *ports.Config
	mirror    ports.Mirror
	checkouts ports.CheckoutCache
	artifacts ports.ArtifactStore
	tip       ports.TipAlias
	executor  ports.Executor
	logger    ports.Logger
	telemetry ports.Telemetry
	out       io.Writer
}

// New creates a new App instance.
func New(
	config *ports.Config,
	mirror ports.Mirror,
	checkouts ports.CheckoutCache,
	artifacts ports.ArtifactStore,
	tip ports.TipAlias,
	executor ports.Executor,
	logger ports.Logger,
	telemetry ports.Telemetry,
	out io.Writer,
) *App {
	return &App{
		config:    config,
		mirror:    mirror,
		checkouts: checkouts,
		artifacts: artifacts,
		tip:       tip,
		executor:  executor,
		logger:    logger,
		telemetry: telemetry,
		out:       out,
	}
}

// Fetch updates the tracked branch in the mirror, initializing the mirror on
// first use.
func (a *App) Fetch(ctx context.Context) error {
	if err := a.mirror.EnsureCloned(ctx); err != nil {
		return err
	}

	_, vtx := a.telemetry.Record(ctx, "fetch "+a.config.Branch)
	err := a.mirror.Fetch(ctx, a.config.Branch)
	vtx.Complete(err)
	return err
}

// Build resolves ref and ensures a binary artifact entry exists for it. The
// tip sentinel triggers a fetch first so the build targets the branch's
// current head. Whenever the built commit is the tracked branch's head, the
// tip alias is moved to it, strictly after the entry is complete.
func (a *App) Build(ctx context.Context, ref string) (domain.CommitID, error) {
	if err := a.mirror.EnsureCloned(ctx); err != nil {
		return "", err
	}

	var id domain.CommitID
	var err error
	if ref == domain.TipRef {
		if err := a.Fetch(ctx); err != nil {
			return "", err
		}
		id, err = a.mirror.Head(a.config.Branch)
	} else {
		id, err = a.mirror.ResolveCommit(ref)
	}
	if err != nil {
		return "", err
	}

	if err := a.buildCommit(ctx, id); err != nil {
		return "", err
	}

	// The alias must never point at an incomplete build, so it moves only
	// after buildCommit returned.
	if head, headErr := a.mirror.Head(a.config.Branch); headErr == nil && head == id {
		if err := a.tip.Set(id); err != nil {
			return "", err
		}
	}
	return id, nil
}

// buildCommit ensures an artifact entry for id. The existing-entry check is
// the dominant fast path; a second builder that lost a cross-process race
// lands there too and skips rebuilding.
func (a *App) buildCommit(ctx context.Context, id domain.CommitID) error {
	ctx, vtx := a.telemetry.Record(ctx, "build "+id.Short())

	if a.artifacts.Has(id) {
		a.logger.Info("already built: " + id.Short())
		vtx.Cached()
		return nil
	}

	dir, err := a.checkouts.Ensure(ctx, id)
	if err != nil {
		vtx.Complete(err)
		return err
	}

	a.logger.Info("building " + id.Short())
	if err := a.executor.Build(ctx, dir); err != nil {
		// No partial entries: a failed build leaves the artifact cache
		// untouched and the error propagates as-is.
		vtx.Complete(err)
		return err
	}

	if _, err := a.artifacts.Put(id, dir); err != nil {
		vtx.Complete(err)
		return err
	}

	vtx.Complete(nil)
	return nil
}

// Run invokes the cached binary for ref with args, restoring the source
// checkout if it was evicted. With lazy set, a missing artifact is built
// first; the tip sentinel is rejected there because lazily building a moving
// target is ambiguous.
func (a *App) Run(ctx context.Context, ref string, args []string, lazy bool) error {
	if ref == domain.TipRef && lazy {
		return domain.ErrTipLazyRun
	}

	// Restoring an evicted checkout needs the mirror even when the ref is
	// the tip alias and resolution never touches it.
	if err := a.mirror.EnsureCloned(ctx); err != nil {
		return err
	}

	var id domain.CommitID
	var err error
	if ref == domain.TipRef {
		id, err = a.tip.Resolve()
	} else {
		id, err = a.mirror.ResolveCommit(ref)
	}
	if err != nil {
		return err
	}

	if !a.artifacts.Has(id) {
		if !lazy {
			return zerr.With(zerr.Wrap(domain.ErrNotBuilt, "cannot run"), "commit", id.String())
		}
		if err := a.buildCommit(ctx, id); err != nil {
			return err
		}
	}

	// The artifact outlives its checkout; rebuild the tree and re-link the
	// build outputs into it so the binary finds its tools either way.
	dir, err := a.checkouts.Ensure(ctx, id)
	if err != nil {
		return err
	}
	if err := a.artifacts.RestoreInto(id, dir); err != nil {
		return err
	}

	bin := filepath.Join(dir, filepath.FromSlash(a.config.Build.Binary))
	return a.executor.Run(ctx, bin, args, []string{"GOROOT=" + dir})
}

// List writes all cached builds, newest first, marking the tip target.
func (a *App) List(ctx context.Context) error {
	ids, err := a.artifacts.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return domain.ErrNoBuilds
	}

	if err := a.mirror.EnsureCloned(ctx); err != nil {
		return err
	}
	summaries, err := a.mirror.Log(ids)
	if err != nil {
		return err
	}

	tipID, err := a.tip.Resolve()
	if err != nil {
		tipID = ""
	}

	for _, s := range summaries {
		marker := ""
		if s.ID == tipID {
			marker = "  (tip)"
		}
		fmt.Fprintf(a.out, "%s  %s  %s%s\n", s.ID.Short(), s.Time.Format("2006-01-02 15:04:05"), s.Subject, marker)
	}
	return nil
}

// Remove deletes the checkout (if present) and the artifact entry for ref.
// A missing artifact entry is reported: removal is explicit user intent.
func (a *App) Remove(ctx context.Context, ref string) error {
	var id domain.CommitID
	var err error
	if ref == domain.TipRef {
		id, err = a.tip.Resolve()
	} else {
		if err := a.mirror.EnsureCloned(ctx); err != nil {
			return err
		}
		id, err = a.mirror.ResolveCommit(ref)
	}
	if err != nil {
		return err
	}

	if err := a.checkouts.Remove(id); err != nil {
		return err
	}
	if err := a.artifacts.Remove(id); err != nil {
		return err
	}

	// The alias must never name an entry that no longer exists.
	if tipID, tipErr := a.tip.Resolve(); tipErr == nil && tipID == id {
		if err := a.tip.Clear(); err != nil {
			return err
		}
	}

	a.logger.Info("removed " + id.Short())
	return nil
}

// ClearSourceCache evicts every source checkout. Artifact entries and the
// tip alias are untouched; checkouts restore transparently on next use.
func (a *App) ClearSourceCache() error {
	n, err := a.checkouts.EvictAll()
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed %d source checkouts", n))
	return nil
}
