package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/relflow/relflow/internal/config"
	"github.com/relflow/relflow/internal/errors"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize relflow configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Prints the merged configuration after applying, in increasing priority:
defaults, the user config, the project config, and RELFLOW_* environment
variables.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file locations",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default project config",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Keys mirror the config file so output can be pasted back into it.
	doc := map[string]interface{}{
		"repo_path":            cfg.RepoPath,
		"changelog_path":       cfg.ChangelogPath,
		"project":              cfg.Project,
		"tag_prefix":           cfg.TagPrefix,
		"initial_version":      cfg.InitialVersion,
		"commit_message":       cfg.CommitMessage,
		"release_cmd":          cfg.ReleaseCmd,
		"auto_confirm":         cfg.AutoConfirm,
		"release_timeout":      cfg.ReleaseTimeout,
		"allow_missing_marker": cfg.AllowMissingMarker,
		"skip_confirmations":   cfg.SkipConfirmations,
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	userPath, err := config.UserConfigPath()
	if err == nil {
		fmt.Fprintf(out, "user:    %s%s\n", userPath, existsSuffix(userPath))
	}
	projectPath := config.ProjectConfigPath()
	fmt.Fprintf(out, "project: %s%s\n", projectPath, existsSuffix(projectPath))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigPath()
	if _, err := os.Stat(path); err == nil {
		return errors.NewConfigError(
			fmt.Sprintf("config already exists at %s", path),
			"Edit the existing file, or remove it and re-run 'relflow config init'.",
		)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

func existsSuffix(path string) string {
	if _, err := os.Stat(path); err == nil {
		return ""
	}
	return " (not found)"
}
