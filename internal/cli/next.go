package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relflow/relflow/internal/errors"
	"github.com/relflow/relflow/internal/workflow"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the next version without releasing",
	Long: `Computes the next semantic version from conventional commits since the
last release tag and prints it. Nothing is modified.

Exit code 3 means there are no commits since the last tag.`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

func init() {
	nextCmd.Flags().Bool("tag", false, "Print the version with the configured tag prefix")
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	resolver, err := workflow.NewVersionResolver(cfg)
	if err != nil {
		return errors.Wrap(err, errors.Repository,
			"Run relflow from inside a git repository, or pass --repo.")
	}

	version, err := resolver.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	withTag, _ := cmd.Flags().GetBool("tag")
	if withTag {
		fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", cfg.TagPrefix, version)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	}
	return nil
}
