package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relflow/relflow/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print relflow version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), build.Summary())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
