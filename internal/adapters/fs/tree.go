// Package fs provides filesystem helpers shared by the cache adapters.
package fs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"go.trai.ch/godev/internal/core/domain"
)

// MirrorName returns the mirror directory name for the given primary remote
// URL. The name embeds a hash of the URL so that pointing godev at a
// different upstream yields a fresh mirror instead of mixing histories.
func MirrorName(url string) string {
	return fmt.Sprintf("%s-%016x.git", domain.MirrorDirPrefix, xxhash.Sum64String(url))
}

// CopyTree copies the tree rooted at src to dst, preserving file modes and
// symlinks. dst and missing parents are created.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return zerr.Wrap(err, "failed to walk source tree")
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return zerr.Wrap(err, "failed to relativize path")
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, domain.DirPerm)
		case d.Type()&os.ModeSymlink != 0:
			linkTarget, err := os.Readlink(path)
			if err != nil {
				return zerr.Wrap(err, "failed to read symlink")
			}
			return os.Symlink(linkTarget, target)
		default:
			return copyFile(path, target)
		}
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.Wrap(err, "failed to stat source file")
	}

	in, err := os.Open(src) //nolint:gosec // path is within a managed cache
	if err != nil {
		return zerr.Wrap(err, "failed to open source file")
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create destination directory")
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // managed cache path
	if err != nil {
		return zerr.Wrap(err, "failed to create destination file")
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.Wrap(err, "failed to copy file contents")
	}
	return out.Close()
}

// EnsureSymlink makes link point at target if link does not already exist.
// An existing path at link, regular or link, is left untouched.
func EnsureSymlink(target, link string) error {
	if _, err := os.Lstat(link); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(link), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create link parent directory")
	}
	if err := os.Symlink(target, link); err != nil && !os.IsExist(err) {
		return zerr.Wrap(err, "failed to create symlink")
	}
	return nil
}

// ReplaceSymlink atomically points link at target, replacing any previous
// link by renaming a temporary link over it.
func ReplaceSymlink(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create link parent directory")
	}

	tmp := link + ".tmp"
	_ = os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return zerr.Wrap(err, "failed to create temporary symlink")
	}
	if err := os.Rename(tmp, link); err != nil {
		_ = os.Remove(tmp)
		return zerr.Wrap(err, "failed to replace symlink")
	}
	return nil
}

// IsExecutable reports whether path is a regular file with any execute bit.
// Symlinks are followed.
func IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
