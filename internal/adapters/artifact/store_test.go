package artifact_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/godev/internal/adapters/artifact"
	"go.trai.ch/godev/internal/core/domain"
	"go.trai.ch/godev/internal/core/ports"
)

const testCommit = domain.CommitID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func testSpec() ports.BuildSpec {
	return ports.BuildSpec{
		Dir:      "src",
		Command:  []string{"./make.bash"},
		Binary:   "bin/go",
		ToolDirs: []string{"pkg/tool"},
	}
}

// writeBuildOutputs lays out a fake checkout with the outputs the build
// routine would have produced.
func writeBuildOutputs(t *testing.T, checkout string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(checkout, "bin"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(checkout, "bin", "go"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(checkout, "pkg", "tool", "linux_amd64"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(checkout, "pkg", "tool", "linux_amd64", "compile"), []byte("#!/bin/sh\n"), 0o755))
}

func TestStore_PutThenGet(t *testing.T) {
	dir := t.TempDir()
	store := artifact.NewStore(dir, testSpec(), nopLogger{})

	checkout := t.TempDir()
	writeBuildOutputs(t, checkout)

	paths, err := store.Put(testCommit, checkout)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, testCommit.String()), paths.Root)
	assert.FileExists(t, paths.Binary)

	assert.True(t, store.Has(testCommit))

	got, err := store.Get(testCommit)
	require.NoError(t, err)
	assert.Equal(t, paths, got)

	// The staging directory must be gone after publication.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testCommit.String(), entries[0].Name())
}

func TestStore_PutMissingOutput(t *testing.T) {
	dir := t.TempDir()
	store := artifact.NewStore(dir, testSpec(), nopLogger{})

	// Checkout without build outputs.
	checkout := t.TempDir()

	_, err := store.Put(testCommit, checkout)
	require.Error(t, err)

	// A failed Put leaves no entry and no staging leftovers.
	assert.False(t, store.Has(testCommit))
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

// Two builders racing to publish the same commit must converge on a single
// complete entry: the loser's rename fails against the existing directory and
// it adopts the winner's entry instead.
func TestStore_PutAdoptsConcurrentWinner(t *testing.T) {
	dir := t.TempDir()
	store := artifact.NewStore(dir, testSpec(), nopLogger{})

	winner := t.TempDir()
	writeBuildOutputs(t, winner)
	first, err := store.Put(testCommit, winner)
	require.NoError(t, err)

	// A second builder finishes later with its own (equivalent) outputs.
	loser := t.TempDir()
	writeBuildOutputs(t, loser)
	require.NoError(t, os.WriteFile(filepath.Join(loser, "bin", "go"), []byte("#!/bin/sh\n# rebuilt\n"), 0o755))

	second, err := store.Put(testCommit, loser)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// The winner's entry is untouched and no staging directory leaks.
	data, err := os.ReadFile(first.Binary)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testCommit.String(), entries[0].Name())
}

func TestStore_HasRequiresExecutableBinary(t *testing.T) {
	dir := t.TempDir()
	store := artifact.NewStore(dir, testSpec(), nopLogger{})

	// An entry directory without the binary, as an interrupted build might
	// leave behind, counts as absent.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, testCommit.String(), "bin"), 0o750))
	assert.False(t, store.Has(testCommit))

	// A non-executable binary is not a complete entry either.
	bin := filepath.Join(dir, testCommit.String(), "bin", "go")
	require.NoError(t, os.WriteFile(bin, []byte("partial"), 0o644))
	assert.False(t, store.Has(testCommit))

	require.NoError(t, os.Chmod(bin, 0o755))
	assert.True(t, store.Has(testCommit))
}

func TestStore_GetNotBuilt(t *testing.T) {
	store := artifact.NewStore(t.TempDir(), testSpec(), nopLogger{})

	_, err := store.Get(testCommit)
	require.ErrorIs(t, err, domain.ErrNotBuilt)
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store := artifact.NewStore(dir, testSpec(), nopLogger{})

	checkout := t.TempDir()
	writeBuildOutputs(t, checkout)
	_, err := store.Put(testCommit, checkout)
	require.NoError(t, err)

	require.NoError(t, store.Remove(testCommit))
	assert.False(t, store.Has(testCommit))

	// Removing again reports the absence.
	err = store.Remove(testCommit)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_List(t *testing.T) {
	dir := t.TempDir()
	store := artifact.NewStore(dir, testSpec(), nopLogger{})

	t.Run("missing directory means no builds", func(t *testing.T) {
		empty := artifact.NewStore(filepath.Join(t.TempDir(), "absent"), testSpec(), nopLogger{})
		_, err := empty.List()
		require.ErrorIs(t, err, domain.ErrNoBuilds)
	})

	checkout := t.TempDir()
	writeBuildOutputs(t, checkout)

	other := domain.CommitID("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	for _, id := range []domain.CommitID{testCommit, other} {
		_, err := store.Put(id, checkout)
		require.NoError(t, err)
	}

	// Incomplete entries, staging leftovers and the tip alias are not builds.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "cccccccccccccccccccccccccccccccccccccccc"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dddd.staging-123"), 0o750))
	alias := artifact.NewAlias(dir)
	require.NoError(t, alias.Set(testCommit))

	ids, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.CommitID{testCommit, other}, ids)
}

func TestStore_RestoreInto(t *testing.T) {
	dir := t.TempDir()
	store := artifact.NewStore(dir, testSpec(), nopLogger{})

	checkout := t.TempDir()
	writeBuildOutputs(t, checkout)
	_, err := store.Put(testCommit, checkout)
	require.NoError(t, err)

	// Fresh checkout, as after an eviction and re-materialization.
	restored := t.TempDir()
	require.NoError(t, store.RestoreInto(testCommit, restored))

	bin := filepath.Join(restored, "bin", "go")
	info, err := os.Lstat(bin)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "binary should be linked, not copied")

	data, err := os.ReadFile(bin)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(data))

	// Restoring twice is a no-op.
	require.NoError(t, store.RestoreInto(testCommit, restored))
}

func TestStore_RestoreIntoNotBuilt(t *testing.T) {
	store := artifact.NewStore(t.TempDir(), testSpec(), nopLogger{})
	err := store.RestoreInto(testCommit, t.TempDir())
	require.ErrorIs(t, err, domain.ErrNotBuilt)
}

func TestAlias(t *testing.T) {
	dir := t.TempDir()
	alias := artifact.NewAlias(dir)

	t.Run("unset alias reports never built", func(t *testing.T) {
		_, err := alias.Resolve()
		require.ErrorIs(t, err, domain.ErrTipNeverBuilt)
	})

	t.Run("set then resolve", func(t *testing.T) {
		require.NoError(t, alias.Set(testCommit))

		id, err := alias.Resolve()
		require.NoError(t, err)
		assert.Equal(t, testCommit, id)
	})

	t.Run("repointing replaces the target", func(t *testing.T) {
		other := domain.CommitID("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
		require.NoError(t, alias.Set(testCommit))
		require.NoError(t, alias.Set(other))

		id, err := alias.Resolve()
		require.NoError(t, err)
		assert.Equal(t, other, id)
	})

	t.Run("target is relative to the artifacts directory", func(t *testing.T) {
		require.NoError(t, alias.Set(testCommit))
		target, err := os.Readlink(filepath.Join(dir, domain.TipRef))
		require.NoError(t, err)
		assert.Equal(t, testCommit.String(), target)
	})

	t.Run("clear unsets the alias", func(t *testing.T) {
		require.NoError(t, alias.Set(testCommit))
		require.NoError(t, alias.Clear())

		_, err := alias.Resolve()
		require.ErrorIs(t, err, domain.ErrTipNeverBuilt)
	})

	t.Run("clearing an unset alias is a no-op", func(t *testing.T) {
		require.NoError(t, alias.Clear())
		require.NoError(t, alias.Clear())
	})
}

func TestErrorsCarryCommitMetadata(t *testing.T) {
	store := artifact.NewStore(t.TempDir(), testSpec(), nopLogger{})

	err := store.Remove(testCommit)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "no such build")
}
