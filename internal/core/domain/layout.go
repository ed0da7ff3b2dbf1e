package domain

import (
	"os"
	"path/filepath"
)

const (
	// GodevDirName is the default cache root directory under $HOME.
	GodevDirName = ".godev"

	// MirrorDirPrefix prefixes the bare mirror directory. The full name also
	// embeds a hash of the primary remote URL.
	MirrorDirPrefix = "mirror"

	// CheckoutsDirName holds one working tree per cached commit.
	CheckoutsDirName = "checkouts"

	// ArtifactsDirName holds one built entry per cached commit, plus the tip
	// alias link.
	ArtifactsDirName = "artifacts"

	// ConfigFileName is the configuration file looked up in the cache root.
	ConfigFileName = "godev.yaml"

	// RootEnvVar overrides the cache root location.
	RootEnvVar = "GODEV_ROOT"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout is the injected on-disk layout of the cache root. Paths are
// explicit configuration so tests can run against isolated fixtures.
type Layout struct {
	// Root is the cache root directory.
	Root string
	// MirrorDir is the bare mirror of the upstream history.
	MirrorDir string
	// CheckoutsDir contains one source tree per commit.
	CheckoutsDir string
	// ArtifactsDir contains one artifact entry per commit and the tip alias.
	ArtifactsDir string
}

// NewLayout derives the standard layout under root. mirrorName is the
// hashed mirror directory name chosen by the mirror adapter.
func NewLayout(root, mirrorName string) Layout {
	return Layout{
		Root:         root,
		MirrorDir:    filepath.Join(root, mirrorName),
		CheckoutsDir: filepath.Join(root, CheckoutsDirName),
		ArtifactsDir: filepath.Join(root, ArtifactsDirName),
	}
}

// CheckoutDir returns the checkout path for one commit.
func (l Layout) CheckoutDir(id CommitID) string {
	return filepath.Join(l.CheckoutsDir, id.String())
}

// ArtifactDir returns the artifact entry path for one commit.
func (l Layout) ArtifactDir(id CommitID) string {
	return filepath.Join(l.ArtifactsDir, id.String())
}

// TipLink returns the path of the tip alias link.
func (l Layout) TipLink() string {
	return filepath.Join(l.ArtifactsDir, TipRef)
}

// DefaultRoot returns $GODEV_ROOT, or ~/.godev when unset.
func DefaultRoot() string {
	if root := os.Getenv(RootEnvVar); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return GodevDirName
	}
	return filepath.Join(home, GodevDirName)
}
