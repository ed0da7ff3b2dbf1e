package app_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"go.trai.ch/godev/internal/adapters/telemetry"
	"go.trai.ch/godev/internal/app"
	"go.trai.ch/godev/internal/core/domain"
	"go.trai.ch/godev/internal/core/ports"
	"go.trai.ch/godev/internal/core/ports/mocks"
)

const (
	commitA = domain.CommitID("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	commitB = domain.CommitID("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

type fixture struct {
	mirror    *mocks.MockMirror
	checkouts *mocks.MockCheckoutCache
	artifacts *mocks.MockArtifactStore
	tip       *mocks.MockTipAlias
	executor  *mocks.MockExecutor
	out       *bytes.Buffer
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		mirror:    mocks.NewMockMirror(ctrl),
		checkouts: mocks.NewMockCheckoutCache(ctrl),
		artifacts: mocks.NewMockArtifactStore(ctrl),
		tip:       mocks.NewMockTipAlias(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		out:       &bytes.Buffer{},
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	cfg := &ports.Config{
		Branch: "master",
		Build: ports.BuildSpec{
			Dir:      "src",
			Command:  []string{"./make.bash"},
			Binary:   "bin/go",
			ToolDirs: []string{"pkg/tool"},
		},
	}

	f.app = app.New(cfg, f.mirror, f.checkouts, f.artifacts, f.tip, f.executor, logger, telemetry.NewNoOp(), f.out)
	return f
}

func TestApp_Build_NewCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.artifacts.EXPECT().Has(commitA).Return(false)
	f.checkouts.EXPECT().Ensure(gomock.Any(), commitA).Return("/tmp/checkout", nil)
	f.executor.EXPECT().Build(gomock.Any(), "/tmp/checkout").Return(nil)
	f.artifacts.EXPECT().Put(commitA, "/tmp/checkout").Return(domain.ArtifactPaths{}, nil)
	// Built commit is not the branch head, so the alias stays put.
	f.mirror.EXPECT().Head("master").Return(commitB, nil)

	id, err := f.app.Build(ctx, "deadbeef")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if id != commitA {
		t.Errorf("Build returned %q, want %q", id, commitA)
	}
}

func TestApp_Build_AlreadyBuilt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.artifacts.EXPECT().Has(commitA).Return(true)
	f.mirror.EXPECT().Head("master").Return(commitB, nil)
	// No Ensure, no Build, no Put: the existing entry short-circuits.

	if _, err := f.app.Build(ctx, "deadbeef"); err != nil {
		t.Fatalf("Build: %v", err)
	}
}

func TestApp_Build_Tip_MovesAlias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(gomock.Any()).Return(nil).Times(2)
	f.mirror.EXPECT().Fetch(gomock.Any(), "master").Return(nil)
	f.mirror.EXPECT().Head("master").Return(commitA, nil).Times(2)
	f.artifacts.EXPECT().Has(commitA).Return(false)
	f.checkouts.EXPECT().Ensure(gomock.Any(), commitA).Return("/tmp/checkout", nil)

	var putDone bool
	f.executor.EXPECT().Build(gomock.Any(), "/tmp/checkout").Return(nil)
	f.artifacts.EXPECT().Put(commitA, "/tmp/checkout").DoAndReturn(
		func(domain.CommitID, string) (domain.ArtifactPaths, error) {
			putDone = true
			return domain.ArtifactPaths{}, nil
		})
	f.tip.EXPECT().Set(commitA).DoAndReturn(func(domain.CommitID) error {
		if !putDone {
			t.Error("tip alias moved before the artifact entry was published")
		}
		return nil
	})

	id, err := f.app.Build(ctx, domain.TipRef)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if id != commitA {
		t.Errorf("Build returned %q, want %q", id, commitA)
	}
}

func TestApp_Build_FailureLeavesNoEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.artifacts.EXPECT().Has(commitA).Return(false)
	f.checkouts.EXPECT().Ensure(gomock.Any(), commitA).Return("/tmp/checkout", nil)
	f.executor.EXPECT().Build(gomock.Any(), "/tmp/checkout").
		Return(domain.WithExitCode(domain.ErrBuildFailed, 2))
	// No Put, no tip.Set: a failed build must not touch the caches.

	_, err := f.app.Build(ctx, "deadbeef")
	if !errors.Is(err, domain.ErrBuildFailed) {
		t.Fatalf("expected ErrBuildFailed, got %v", err)
	}
	if code, ok := domain.ExitCode(err); !ok || code != 2 {
		t.Errorf("exit code = %d (attached=%v), want 2", code, ok)
	}
}

func TestApp_Build_UnknownRevision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("nope").Return(domain.CommitID(""), domain.ErrUnknownRevision)

	if _, err := f.app.Build(ctx, "nope"); !errors.Is(err, domain.ErrUnknownRevision) {
		t.Fatalf("expected ErrUnknownRevision, got %v", err)
	}
}

func TestApp_Run_NotBuilt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.artifacts.EXPECT().Has(commitA).Return(false)

	err := f.app.Run(ctx, "deadbeef", []string{"version"}, false)
	if !errors.Is(err, domain.ErrNotBuilt) {
		t.Fatalf("expected ErrNotBuilt, got %v", err)
	}
}

func TestApp_Run_RestoresEvictedCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.artifacts.EXPECT().Has(commitA).Return(true)
	f.checkouts.EXPECT().Ensure(gomock.Any(), commitA).Return("/tmp/checkout", nil)
	f.artifacts.EXPECT().RestoreInto(commitA, "/tmp/checkout").Return(nil)
	f.executor.EXPECT().Run(gomock.Any(), "/tmp/checkout/bin/go", []string{"version"}, []string{"GOROOT=/tmp/checkout"}).Return(nil)

	if err := f.app.Run(ctx, "deadbeef", []string{"version"}, false); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestApp_Run_LazyBuildsFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.artifacts.EXPECT().Has(commitA).Return(false)
	f.checkouts.EXPECT().Ensure(gomock.Any(), commitA).Return("/tmp/checkout", nil).Times(2)
	f.executor.EXPECT().Build(gomock.Any(), "/tmp/checkout").Return(nil)
	f.artifacts.EXPECT().Put(commitA, "/tmp/checkout").Return(domain.ArtifactPaths{}, nil)
	f.artifacts.EXPECT().RestoreInto(commitA, "/tmp/checkout").Return(nil)
	f.executor.EXPECT().Run(gomock.Any(), "/tmp/checkout/bin/go", gomock.Nil(), []string{"GOROOT=/tmp/checkout"}).Return(nil)

	if err := f.app.Run(ctx, "deadbeef", nil, true); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestApp_Run_TipLazyRejected(t *testing.T) {
	f := newFixture(t)

	err := f.app.Run(context.Background(), domain.TipRef, nil, true)
	if !errors.Is(err, domain.ErrTipLazyRun) {
		t.Fatalf("expected ErrTipLazyRun, got %v", err)
	}
}

func TestApp_Run_TipResolvesAlias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.tip.EXPECT().Resolve().Return(commitA, nil)
	f.artifacts.EXPECT().Has(commitA).Return(true)
	f.checkouts.EXPECT().Ensure(gomock.Any(), commitA).Return("/tmp/checkout", nil)
	f.artifacts.EXPECT().RestoreInto(commitA, "/tmp/checkout").Return(nil)
	f.executor.EXPECT().Run(gomock.Any(), "/tmp/checkout/bin/go", gomock.Nil(), []string{"GOROOT=/tmp/checkout"}).Return(nil)

	if err := f.app.Run(ctx, domain.TipRef, nil, false); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

// A fresh invocation running the tip target after clear-source-cache must
// initialize the mirror before the checkout cache asks it to materialize.
func TestApp_Run_TipRestoresEvictedCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cloned := f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.tip.EXPECT().Resolve().Return(commitA, nil)
	f.artifacts.EXPECT().Has(commitA).Return(true)
	f.checkouts.EXPECT().Ensure(gomock.Any(), commitA).Return("/tmp/checkout", nil).After(cloned)
	f.artifacts.EXPECT().RestoreInto(commitA, "/tmp/checkout").Return(nil)
	f.executor.EXPECT().Run(gomock.Any(), "/tmp/checkout/bin/go", []string{"version"}, []string{"GOROOT=/tmp/checkout"}).Return(nil)

	if err := f.app.Run(ctx, domain.TipRef, []string{"version"}, false); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestApp_Run_TipNeverBuilt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.tip.EXPECT().Resolve().Return(domain.CommitID(""), domain.ErrTipNeverBuilt)

	err := f.app.Run(ctx, domain.TipRef, nil, false)
	if !errors.Is(err, domain.ErrTipNeverBuilt) {
		t.Fatalf("expected ErrTipNeverBuilt, got %v", err)
	}
}

func TestApp_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.artifacts.EXPECT().List().Return([]domain.CommitID{commitA, commitB}, nil)
	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().Log([]domain.CommitID{commitA, commitB}).Return([]domain.Summary{
		{ID: commitB, Time: time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC), Subject: "runtime: faster maps"},
		{ID: commitA, Time: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC), Subject: "cmd/go: fix cache"},
	}, nil)
	f.tip.EXPECT().Resolve().Return(commitB, nil)

	if err := f.app.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}

	got := f.out.String()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), got)
	}
	if want := commitB.Short() + "  2026-02-02 12:00:00  runtime: faster maps  (tip)"; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if strings.Contains(lines[1], "(tip)") {
		t.Errorf("non-tip entry carries the tip marker: %q", lines[1])
	}
}

func TestApp_List_Empty(t *testing.T) {
	f := newFixture(t)

	f.artifacts.EXPECT().List().Return(nil, nil)

	if err := f.app.List(context.Background()); !errors.Is(err, domain.ErrNoBuilds) {
		t.Fatalf("expected ErrNoBuilds, got %v", err)
	}
}

func TestApp_Remove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.checkouts.EXPECT().Remove(commitA).Return(nil)
	f.artifacts.EXPECT().Remove(commitA).Return(nil)
	// Removed entry is not the tip target, so the alias survives.
	f.tip.EXPECT().Resolve().Return(commitB, nil)

	if err := f.app.Remove(ctx, "deadbeef"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}

// Removing the entry the tip alias points at must also unset the alias, so a
// later "run tip" reports tip-never-built instead of chasing a missing build.
func TestApp_Remove_TipTargetClearsAlias(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.checkouts.EXPECT().Remove(commitA).Return(nil)
	f.artifacts.EXPECT().Remove(commitA).Return(nil)
	f.tip.EXPECT().Resolve().Return(commitA, nil)
	f.tip.EXPECT().Clear().Return(nil)

	if err := f.app.Remove(ctx, "deadbeef"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}

func TestApp_Remove_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.mirror.EXPECT().EnsureCloned(ctx).Return(nil)
	f.mirror.EXPECT().ResolveCommit("deadbeef").Return(commitA, nil)
	f.checkouts.EXPECT().Remove(commitA).Return(nil)
	f.artifacts.EXPECT().Remove(commitA).Return(domain.ErrNotFound)

	if err := f.app.Remove(ctx, "deadbeef"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApp_ClearSourceCache(t *testing.T) {
	f := newFixture(t)

	f.checkouts.EXPECT().EvictAll().Return(3, nil)

	if err := f.app.ClearSourceCache(); err != nil {
		t.Fatalf("ClearSourceCache: %v", err)
	}
}
