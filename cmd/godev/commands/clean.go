package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newClearSourceCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-source-cache",
		Short: "Delete all source checkouts, keeping built toolchains",
		Long: `Checkouts are reconstructible from the mirror, so clearing them only
reclaims disk space. Built toolchains and the tip alias are untouched; a
later run restores whatever checkout it needs.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.app.ClearSourceCache()
		},
	}
}
