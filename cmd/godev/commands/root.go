// Package commands implements the CLI commands for godev.
package commands

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"go.trai.ch/godev/internal/build"
	"go.trai.ch/godev/internal/core/domain"
)

// CLI represents the command line interface for godev.
type CLI struct {
	app     Application
	args    []string
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Fetch(ctx context.Context) error
	Build(ctx context.Context, ref string) (domain.CommitID, error)
	Run(ctx context.Context, ref string, args []string, lazy bool) error
	List(ctx context.Context) error
	Remove(ctx context.Context, ref string) error
	ClearSourceCache() error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:   "godev",
		Short: "Build, cache and run Go toolchains by commit",
		Long: `godev keeps one built Go toolchain per commit of the upstream repository.
Builds land in a per-commit artifact cache; source checkouts are disposable
and restored from the local mirror on demand.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	// Run flags live on the root so invocations read like the toolchain
	// itself: godev -s <ref> [args...]. They are dispatched before cobra sees
	// the arguments, because everything after the ref belongs to the invoked
	// binary and must not be parsed as godev flags or subcommands.
	rootCmd.Flags().StringP("run", "s", "", "Run the cached toolchain at <ref> with the remaining args")
	rootCmd.Flags().StringP("run-build", "S", "", "Like --run, but build <ref> first if it is not cached")
	rootCmd.Flags().SetInterspersed(false)

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	}

	rootCmd.AddCommand(c.newFetchCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newRmCmd())
	rootCmd.AddCommand(c.newClearSourceCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// runInvocation recognizes a leading run flag and splits the invocation into
// the ref and the arguments destined for the invoked binary. It reports false
// for anything else, including a run flag with a missing ref, which falls
// through to cobra for the usual flag error.
func runInvocation(args []string) (ref string, rest []string, lazy bool, ok bool) {
	if len(args) == 0 {
		return "", nil, false, false
	}
	switch args[0] {
	case "-s", "--run":
		if len(args) < 2 {
			return "", nil, false, false
		}
		return args[1], args[2:], false, true
	case "-S", "--run-build":
		if len(args) < 2 {
			return "", nil, false, false
		}
		return args[1], args[2:], true, true
	}
	for _, form := range []struct {
		prefix string
		lazy   bool
	}{
		{"-s=", false},
		{"--run=", false},
		{"-S=", true},
		{"--run-build=", true},
	} {
		if strings.HasPrefix(args[0], form.prefix) {
			return strings.TrimPrefix(args[0], form.prefix), args[1:], form.lazy, true
		}
	}
	return "", nil, false, false
}

// Execute runs the command line with the given context. A leading run flag
// bypasses cobra entirely: the trailing arguments may collide with godev's
// own subcommand names ("version", "build") and must reach the toolchain
// binary untouched.
func (c *CLI) Execute(ctx context.Context) error {
	args := c.args
	if args == nil {
		args = os.Args[1:]
	}

	if ref, rest, lazy, ok := runInvocation(args); ok {
		return c.app.Run(ctx, ref, rest, lazy)
	}

	c.rootCmd.SetArgs(args)
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the command line. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.args = args
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
