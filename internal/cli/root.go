// Package cli implements the relflow command tree.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/relflow/relflow/internal/config"
	"github.com/relflow/relflow/internal/errors"
	"github.com/relflow/relflow/internal/git"
)

var rootCmd = &cobra.Command{
	Use:   "relflow",
	Short: "Conventional-commit release automation",
	Long: `relflow automates the release workflow for repositories using
Conventional Commits: it computes the next semantic version from commit
history, regenerates the changelog, stamps the [Unreleased] marker with the
new version, commits the changelog, and invokes your release tool.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to project config file (default: .relflow/config.yml)")
	rootCmd.PersistentFlags().String("repo", "", "Path to the git repository (default: current directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// Execute runs the root command, printing structured errors to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			errors.PrintError(cliErr)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}

// loadConfig loads configuration honoring the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	repoPath, _ := cmd.Flags().GetString("repo")
	debug, _ := cmd.Flags().GetBool("debug")

	if debug {
		git.SetDebugLogger(log.Printf)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errors.WrapWithMessage(err, errors.Configuration, "loading configuration")
	}

	if repoPath != "" {
		cfg.RepoPath = repoPath
	}

	return cfg, nil
}
