// Package config provides the configuration loader for godev.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/godev/internal/adapters/fs"
	"go.trai.ch/godev/internal/core/domain"
	"go.trai.ch/godev/internal/core/ports"
)

// Defaults applied for anything godev.yaml does not set. The tracked
// upstream is the main Go repository, fetched from the canonical host first
// and the GitHub mirror when that fails.
const (
	DefaultBranch         = "master"
	DefaultPrimaryRemote  = "https://go.googlesource.com/go"
	DefaultFallbackRemote = "https://github.com/golang/go"
	DefaultBuildDir       = "src"
	DefaultBuildCommand   = "./make.bash"
	DefaultBinary         = "bin/go"
	DefaultToolDir        = "pkg/tool"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file in the
// cache root.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader reading the standard config file name.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: domain.ConfigFileName}
}

// Load reads the configuration rooted at root. A missing file yields the
// defaults; a malformed one is an error.
func (l *FileConfigLoader) Load(root string) (*ports.Config, error) {
	var file Godevfile

	path := filepath.Join(root, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the configured root
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
		}
	case os.IsNotExist(err):
		// Defaults only.
	default:
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	cfg := &ports.Config{
		Branch: orDefault(file.Branch, DefaultBranch),
		Remotes: ports.Remotes{
			Primary:  orDefault(file.Remotes.Primary, DefaultPrimaryRemote),
			Fallback: file.Remotes.Fallback,
		},
		Build: ports.BuildSpec{
			Dir:      orDefault(file.Build.Dir, DefaultBuildDir),
			Command:  file.Build.Command,
			Binary:   orDefault(file.Build.Binary, DefaultBinary),
			ToolDirs: file.Build.Tools,
		},
	}
	if file.Remotes.Primary == "" && file.Remotes.Fallback == "" {
		cfg.Remotes.Fallback = DefaultFallbackRemote
	}
	if len(cfg.Build.Command) == 0 {
		cfg.Build.Command = []string{DefaultBuildCommand}
	}
	if len(cfg.Build.ToolDirs) == 0 && file.Build.Tools == nil {
		cfg.Build.ToolDirs = []string{DefaultToolDir}
	}

	if err := validateRelPaths(cfg); err != nil {
		return nil, err
	}

	cfg.Layout = domain.NewLayout(root, fs.MirrorName(cfg.Remotes.Primary))
	return cfg, nil
}

func validateRelPaths(cfg *ports.Config) error {
	paths := append([]string{cfg.Build.Binary}, cfg.Build.ToolDirs...)
	for _, p := range paths {
		// IsLocal also catches interior escapes like "pkg/../../x".
		if !filepath.IsLocal(filepath.FromSlash(p)) {
			return zerr.With(zerr.New("build output paths must be relative to the checkout"), "path", p)
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
