package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/relflow/relflow/internal/config"
	"github.com/relflow/relflow/internal/errors"
	"github.com/relflow/relflow/internal/output"
	"github.com/relflow/relflow/internal/release"
	"github.com/relflow/relflow/internal/semver"
	"github.com/relflow/relflow/internal/workflow"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Run the full release pipeline",
	Long: `Runs the release pipeline end to end:

  1. Resolve the next version from conventional commits since the last tag
  2. Regenerate the changelog from tag history
  3. Replace the [Unreleased] marker with the new version
  4. Commit the changelog
  5. Invoke the configured release tool

Steps run strictly in order; the first failure stops the pipeline with
nothing downstream executed.`,
	Args: cobra.NoArgs,
	RunE: runRelease,
}

func init() {
	releaseCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	releaseCmd.Flags().Bool("dry-run", false, "Show what would happen without changing anything")
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.ReleaseCmd == "" {
		return errors.NewConfigError(
			"no release command configured",
			"Set release_cmd in .relflow/config.yml, e.g.:",
			`  release_cmd: "cargo release --execute {{.Version}}"`,
			"Or export RELFLOW_RELEASE_CMD.",
		)
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		return runReleaseDryRun(cmd, cfg)
	}

	pipeline, err := workflow.NewPipeline(cfg)
	if err != nil {
		return errors.Wrap(err, errors.Repository,
			"Run relflow from inside a git repository, or pass --repo.")
	}
	pipeline.Out = cmd.OutOrStdout()

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !cfg.SkipConfirmations {
		pipeline.Confirm = func(version semver.Version) (bool, error) {
			return workflow.PromptUserToContinue(
				fmt.Sprintf("Release %s%s now?", cfg.TagPrefix, version))
		}
	}

	result, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	output.PrintReleaseOutputEnd(cmd.OutOrStdout())
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Released %s%s (changelog commit %s)\n",
		green("✓"), cfg.TagPrefix, result.Version, shortHash(result.CommitHash))
	return nil
}

// runReleaseDryRun resolves the version and prints the plan without touching
// the changelog, the repository, or the release tool.
func runReleaseDryRun(cmd *cobra.Command, cfg *config.Configuration) error {
	resolver, err := workflow.NewVersionResolver(cfg)
	if err != nil {
		return errors.Wrap(err, errors.Repository)
	}

	version, err := resolver.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	message, err := workflow.CommitMessage(cfg.CommitMessage, version)
	if err != nil {
		return err
	}

	publisher := &release.Publisher{CommandTemplate: cfg.ReleaseCmd}
	releaseCommand, err := publisher.FormatCommand(version.String())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Next version:    %s\n", version)
	fmt.Fprintf(out, "Changelog:       %s (regenerate, then stamp [Unreleased] as [%s%s])\n",
		cfg.ChangelogPath, cfg.TagPrefix, version)
	fmt.Fprintf(out, "Commit message:  %s\n", message)
	fmt.Fprintf(out, "Release command: %s\n", releaseCommand)
	if cfg.AutoConfirm {
		fmt.Fprintln(out, "Release prompt:  auto-answered with \"y\"")
	}
	fmt.Fprintln(out, "\nDry run: no changes were made.")
	return nil
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
