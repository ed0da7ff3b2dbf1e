package ports

import "go.trai.ch/godev/internal/core/domain"

// BuildSpec describes the external build routine and the artifacts it
// produces, all relative to the checkout root.
type BuildSpec struct {
	// Dir is the directory inside the checkout to run the build in.
	Dir string
	// Command is the build command and its arguments.
	Command []string
	// Binary is the produced toolchain binary.
	Binary string
	// ToolDirs are auxiliary tool trees the build produces.
	ToolDirs []string
}

// Remotes names the upstream remotes in fetch preference order.
type Remotes struct {
	Primary  string
	Fallback string
}

// Config is the resolved configuration for one invocation.
type Config struct {
	Layout  domain.Layout
	Branch  string
	Remotes Remotes
	Build   BuildSpec
}

// ConfigLoader resolves the configuration from the cache root.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration rooted at the given cache root, applying
	// defaults for anything the file does not set. A missing file is not an
	// error.
	Load(root string) (*Config, error)
}
