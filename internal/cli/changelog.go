package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relflow/relflow/internal/changelog"
	"github.com/relflow/relflow/internal/errors"
	"github.com/relflow/relflow/internal/progress"
	"github.com/relflow/relflow/internal/workflow"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Regenerate the changelog from tag history",
	Long: `Regenerates the changelog from the repository's release tags and
conventional commits. Commits since the last tag land under the
[Unreleased] marker; the marker is left in place (only 'relflow release'
substitutes it).

By default the changelog file is overwritten in place. Use --stdout to
print instead, and --format yaml for a machine-readable document.`,
	Args: cobra.NoArgs,
	RunE: runChangelog,
}

func init() {
	changelogCmd.Flags().Bool("stdout", false, "Print to stdout instead of writing the file")
	changelogCmd.Flags().String("format", "markdown", "Output format: markdown or yaml")
	rootCmd.AddCommand(changelogCmd)
}

func runChangelog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "markdown" && format != "yaml" {
		return errors.NewArgumentError(
			fmt.Sprintf("unknown changelog format %q", format),
			"Use --format markdown or --format yaml.",
		)
	}

	writer, err := workflow.NewChangelogWriter(cfg)
	if err != nil {
		return errors.Wrap(err, errors.Repository,
			"Run relflow from inside a git repository, or pass --repo.")
	}

	toStdout, _ := cmd.Flags().GetBool("stdout")
	if toStdout || format == "yaml" {
		return printChangelog(cmd, writer, format)
	}

	spin := progress.NewStepSpinner(cmd.ErrOrStderr())
	spin.Start("Regenerating " + cfg.ChangelogPath)
	if err := writer.Generate(cmd.Context()); err != nil {
		spin.Fail("Changelog generation failed")
		return err
	}
	spin.Succeed("Wrote " + writer.Path())
	return nil
}

func printChangelog(cmd *cobra.Command, writer *workflow.ChangelogWriter, format string) error {
	doc, err := writer.Document()
	if err != nil {
		return err
	}

	if format == "yaml" {
		data, err := doc.ToYAML()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	return changelog.RenderMarkdown(doc, cmd.OutOrStdout())
}
