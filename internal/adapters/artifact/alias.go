package artifact

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/godev/internal/adapters/fs"
	"go.trai.ch/godev/internal/core/domain"
)

// Alias implements ports.TipAlias as a symlink inside the artifacts
// directory. The link target is the only record of what tip currently means;
// there is deliberately no separate metadata store to drift out of sync.
type Alias struct {
	link string
}

// NewAlias creates the tip alias living inside artifactsDir.
func NewAlias(artifactsDir string) *Alias {
	return &Alias{link: filepath.Join(artifactsDir, domain.TipRef)}
}

// Set atomically repoints the alias at id by renaming a fresh symlink over
// the old one. A reader either sees the previous target or the new one,
// never an absent or half-written alias.
func (a *Alias) Set(id domain.CommitID) error {
	// Relative target, so a relocated cache root keeps a working alias.
	if err := fs.ReplaceSymlink(id.String(), a.link); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to update tip alias"), "commit", id.String())
	}
	return nil
}

// Clear removes the alias so tip resolves to nothing again. Used when the
// entry it points at is removed, so the alias never names a missing build.
func (a *Alias) Clear() error {
	if err := os.Remove(a.link); err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to clear tip alias")
	}
	return nil
}

// Resolve follows the alias to the commit it names.
func (a *Alias) Resolve() (domain.CommitID, error) {
	target, err := os.Readlink(a.link)
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrTipNeverBuilt
		}
		return "", zerr.Wrap(err, "failed to read tip alias")
	}
	return domain.CommitID(filepath.Base(target)), nil
}
