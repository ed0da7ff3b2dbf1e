package domain

// ArtifactPaths locates the pieces of one binary artifact cache entry. All
// paths are absolute. The entry preserves the relative layout the build
// routine produced inside its checkout, so tools can be re-linked into a
// restored checkout at the same relative positions.
type ArtifactPaths struct {
	// Root is the artifact entry directory for one commit.
	Root string
	// Binary is the runnable toolchain binary inside Root.
	Binary string
	// ToolDirs are auxiliary tool trees inside Root.
	ToolDirs []string
}
