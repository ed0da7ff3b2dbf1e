package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <ref>",
		Short: "Build the toolchain at a revision, reusing the cache when possible",
		Long: `Build resolves <ref> to a commit and ensures a cached toolchain exists for
it. The sentinel ref "tip" fetches the tracked branch first and builds its
current head. An already-built revision is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := c.app.Build(cmd.Context(), args[0])
			return err
		},
	}
}
