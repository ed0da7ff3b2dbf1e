// Package gitmirror implements the mirror boundary on top of go-git. The
// mirror is a single bare repository holding the upstream history; it is the
// only component that talks to the network.
package gitmirror

import (
	"context"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.trai.ch/zerr"

	"go.trai.ch/godev/internal/core/domain"
	"go.trai.ch/godev/internal/core/ports"
)

const (
	primaryRemote  = "origin"
	fallbackRemote = "fallback"
)

// Mirror implements ports.Mirror against a bare on-disk repository.
type Mirror struct {
	path    string
	remotes ports.Remotes
	logger  ports.Logger

	repo *gogit.Repository
}

// New creates a Mirror rooted at path, fetching from the given remotes in
// preference order. The repository is cloned lazily on first use.
func New(path string, remotes ports.Remotes, logger ports.Logger) *Mirror {
	return &Mirror{
		path:    filepath.Clean(path),
		remotes: remotes,
		logger:  logger,
	}
}

// EnsureCloned opens the bare mirror, initializing and fetching it on first
// use. Idempotent.
func (m *Mirror) EnsureCloned(ctx context.Context) error {
	if m.repo != nil {
		return nil
	}

	repo, err := gogit.PlainOpen(m.path)
	if err == nil {
		m.repo = repo
		return nil
	}
	if !errors.Is(err, gogit.ErrRepositoryNotExists) {
		return zerr.With(zerr.Wrap(err, "failed to open mirror"), "path", m.path)
	}

	m.logger.Info("cloning mirror, this may take a while")

	repo, err = gogit.PlainInit(m.path, true)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to initialize mirror"), "path", m.path)
	}

	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: primaryRemote,
		URLs: []string{m.remotes.Primary},
	}); err != nil {
		return zerr.Wrap(err, "failed to configure primary remote")
	}
	if m.remotes.Fallback != "" {
		if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: fallbackRemote,
			URLs: []string{m.remotes.Fallback},
		}); err != nil {
			return zerr.Wrap(err, "failed to configure fallback remote")
		}
	}

	m.repo = repo
	return m.fetchAll(ctx)
}

// Fetch updates the tracked branch, trying the primary remote first and the
// fallback only after the primary failed. Both failing is
// domain.ErrMirrorUnreachable.
func (m *Mirror) Fetch(ctx context.Context, branch string) error {
	if err := m.EnsureCloned(ctx); err != nil {
		return err
	}

	spec := gitconfig.RefSpec("+refs/heads/" + branch + ":refs/heads/" + branch)
	return m.fetch(ctx, []gitconfig.RefSpec{spec})
}

// fetchAll mirrors every upstream branch. Used for the initial clone so that
// arbitrary historical refs resolve without another round-trip.
func (m *Mirror) fetchAll(ctx context.Context) error {
	spec := gitconfig.RefSpec("+refs/heads/*:refs/heads/*")
	return m.fetch(ctx, []gitconfig.RefSpec{spec})
}

func (m *Mirror) fetch(ctx context.Context, specs []gitconfig.RefSpec) error {
	names := []string{primaryRemote}
	if m.remotes.Fallback != "" {
		names = append(names, fallbackRemote)
	}

	var firstErr error
	for _, name := range names {
		err := m.repo.FetchContext(ctx, &gogit.FetchOptions{
			RemoteName: name,
			RefSpecs:   specs,
			Force:      true,
		})
		if err == nil || errors.Is(err, gogit.NoErrAlreadyUpToDate) {
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
		m.logger.Warn("fetch from " + name + " failed: " + err.Error())
	}

	return zerr.With(zerr.Wrap(domain.ErrMirrorUnreachable, "fetch failed on all remotes"), "cause", firstErr.Error())
}

// ResolveCommit maps ref to a canonical commit identifier. Short hashes,
// branches and tags are accepted; anything that does not name a commit
// object is domain.ErrUnknownRevision.
func (m *Mirror) ResolveCommit(ref string) (domain.CommitID, error) {
	if m.repo == nil {
		return "", zerr.New("mirror not initialized")
	}

	hash, err := m.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownRevision, "resolving ref"), "ref", ref)
	}

	// ResolveRevision peels annotated tags, but a ref can still name a tree
	// or blob directly. Only commits are cache keys.
	if _, err := m.repo.CommitObject(*hash); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownRevision, "ref does not name a commit"), "ref", ref)
	}

	return domain.CommitID(hash.String()), nil
}

// Head returns the current head of branch in the mirror.
func (m *Mirror) Head(branch string) (domain.CommitID, error) {
	if m.repo == nil {
		return "", zerr.New("mirror not initialized")
	}

	ref, err := m.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownRevision, "branch head not found"), "branch", branch)
	}
	return domain.CommitID(ref.Hash().String()), nil
}

// Materialize writes the commit's tree under dest, preserving file modes and
// symlinks. dest and any missing parents are created.
func (m *Mirror) Materialize(ctx context.Context, id domain.CommitID, dest string) error {
	if m.repo == nil {
		return zerr.New("mirror not initialized")
	}

	commit, err := m.repo.CommitObject(plumbing.NewHash(id.String()))
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrUnknownRevision, "commit not in mirror"), "commit", id.String())
	}

	tree, err := commit.Tree()
	if err != nil {
		return zerr.Wrap(err, "failed to read commit tree")
	}

	if err := os.MkdirAll(dest, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create checkout directory")
	}

	// A chrooted filesystem keeps hostile tree paths inside the checkout.
	worktree := osfs.New(dest)
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return writeTreeFile(f, worktree)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to materialize checkout"), "commit", id.String())
	}
	return nil
}

func writeTreeFile(f *object.File, worktree billy.Filesystem) error {
	if err := worktree.MkdirAll(path.Dir(f.Name), domain.DirPerm); err != nil {
		return err
	}

	if f.Mode == filemode.Symlink {
		target, err := f.Contents()
		if err != nil {
			return err
		}
		return worktree.Symlink(target, f.Name)
	}

	mode, err := f.Mode.ToOSFileMode()
	if err != nil {
		return err
	}

	reader, err := f.Reader()
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	out, err := worktree.OpenFile(f.Name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, reader); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// Log returns summaries for the given commits, newest first. Identifiers
// that no longer resolve are skipped rather than failing the listing.
func (m *Mirror) Log(ids []domain.CommitID) ([]domain.Summary, error) {
	if m.repo == nil {
		return nil, zerr.New("mirror not initialized")
	}

	summaries := make([]domain.Summary, 0, len(ids))
	for _, id := range ids {
		commit, err := m.repo.CommitObject(plumbing.NewHash(id.String()))
		if err != nil {
			continue
		}
		summaries = append(summaries, domain.Summary{
			ID:      id,
			Time:    commit.Committer.When,
			Subject: firstLine(commit.Message),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Time.After(summaries[j].Time)
	})
	return summaries, nil
}

func firstLine(msg string) string {
	for i := 0; i < len(msg); i++ {
		if msg[i] == '\n' {
			return msg[:i]
		}
	}
	return msg
}
