package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relflow/relflow/internal/errors"
	"github.com/relflow/relflow/internal/release"
	"github.com/relflow/relflow/internal/testutil"
	"github.com/relflow/relflow/internal/workflow"
)

// execute runs the root command with the given arguments and returns the
// combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeConfig writes a project config into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"nothing to release", workflow.ErrNothingToRelease, ExitNothingToRelease},
		{"timeout", &release.TimeoutError{}, ExitTimeout},
		{"argument error", errors.NewArgumentError("bad flag"), ExitInvalidArguments},
		{"config error", errors.NewConfigError("bad config"), ExitInvalidArguments},
		{"repository error", errors.NewRepositoryError("not a repo"), ExitFailure},
		{"plain error", os.ErrNotExist, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "relflow")
}

func TestChangelogCommand_UnknownFormat(t *testing.T) {
	f := testutil.NewRepoFixture(t)
	f.CommitFile("main.go", "package main\n", "feat: initial")

	cfg := writeConfig(t, "tag_prefix: v\n")

	_, err := execute(t, "changelog", "--config", cfg, "--repo", f.Dir, "--format", "toml")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestChangelogCommand_StdoutKeepsMarker(t *testing.T) {
	f := testutil.NewRepoFixture(t)
	f.CommitFile("main.go", "package main\n", "feat: initial")
	f.Tag("v1.0.0")
	f.CommitFile("next.go", "package main\n", "feat: pending work")

	cfg := writeConfig(t, "project: fixture\n")

	out, err := execute(t, "changelog", "--config", cfg, "--repo", f.Dir, "--stdout", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "## [Unreleased]")
	assert.Contains(t, out, "## [v1.0.0] - ")
	assert.Contains(t, out, "pending work")
}

func TestReleaseCommand_RequiresReleaseCmd(t *testing.T) {
	f := testutil.NewRepoFixture(t)
	f.CommitFile("main.go", "package main\n", "feat: initial")

	cfg := writeConfig(t, "tag_prefix: v\n")

	_, err := execute(t, "release", "--config", cfg, "--repo", f.Dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no release command configured")
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestReleaseCommand_DryRun(t *testing.T) {
	f := testutil.NewRepoFixture(t)
	f.CommitFile("main.go", "package main\n", "feat: initial")
	f.Tag("v1.0.0")
	f.CommitFile("feature.go", "package main\n", "feat: new feature")

	cfg := writeConfig(t, `release_cmd: "printf '%s' {{.Version}}"`+"\n")

	out, err := execute(t, "release", "--config", cfg, "--repo", f.Dir, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "1.1.0")
	assert.Contains(t, out, "docs: 1.1.0 CHANGELOG.md")
	assert.Contains(t, out, "printf '%s' 1.1.0")
	assert.Contains(t, out, "Dry run: no changes were made.")

	// nothing was written or committed
	assert.NoFileExists(t, filepath.Join(f.Dir, "CHANGELOG.md"))
}

func TestNextCommand(t *testing.T) {
	f := testutil.NewRepoFixture(t)
	f.CommitFile("main.go", "package main\n", "feat: initial")
	f.Tag("v1.2.3")
	f.CommitFile("fix.go", "package main\n", "fix: small bug")

	out, err := execute(t, "next", "--config", writeConfig(t, "tag_prefix: v\n"), "--repo", f.Dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.4")
}

func TestNextCommand_NothingToRelease(t *testing.T) {
	f := testutil.NewRepoFixture(t)
	f.CommitFile("main.go", "package main\n", "feat: initial")
	f.Tag("v1.0.0")

	_, err := execute(t, "next", "--config", writeConfig(t, "tag_prefix: v\n"), "--repo", f.Dir)
	require.Error(t, err)
	assert.Equal(t, ExitNothingToRelease, ExitCode(err))
}
