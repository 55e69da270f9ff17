package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "nonexistent.yml"),
		SkipWarnings:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "CHANGELOG.md", cfg.ChangelogPath)
	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "0.1.0", cfg.InitialVersion)
	assert.Equal(t, "docs: {{.Version}} CHANGELOG.md", cfg.CommitMessage)
	assert.True(t, cfg.AutoConfirm)
	assert.False(t, cfg.AllowMissingMarker)
}

func TestLoad_ProjectOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `changelog_path: docs/CHANGES.md
tag_prefix: release-
release_cmd: "cargo release --execute {{.Version}}"
auto_confirm: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.NoError(t, err)

	assert.Equal(t, "docs/CHANGES.md", cfg.ChangelogPath)
	assert.Equal(t, "release-", cfg.TagPrefix)
	assert.Equal(t, "cargo release --execute {{.Version}}", cfg.ReleaseCmd)
	assert.False(t, cfg.AutoConfirm)
	// untouched keys keep defaults
	assert.Equal(t, "0.1.0", cfg.InitialVersion)
}

func TestLoad_EnvOverridesProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("tag_prefix: release-\n"), 0644))

	t.Setenv("RELFLOW_TAG_PREFIX", "v")
	t.Setenv("RELFLOW_INITIAL_VERSION", "1.0.0")

	cfg, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.NoError(t, err)

	assert.Equal(t, "v", cfg.TagPrefix)
	assert.Equal(t, "1.0.0", cfg.InitialVersion)
}

func TestLoad_RelflowYesSkipsConfirmations(t *testing.T) {
	t.Setenv("RELFLOW_YES", "1")

	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: filepath.Join(t.TempDir(), "nonexistent.yml"),
		SkipWarnings:      true,
	})
	require.NoError(t, err)
	assert.True(t, cfg.SkipConfirmations)
}

func TestLoad_InvalidYAMLSyntax(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("tag_prefix: [unclosed\n  bad"), 0644))

	_, err := LoadWithOptions(LoadOptions{ProjectConfigPath: path, SkipWarnings: true})
	require.Error(t, err)
}

func TestValidateConfigValues(t *testing.T) {
	valid := Configuration{
		ChangelogPath:  "CHANGELOG.md",
		InitialVersion: "0.1.0",
		CommitMessage:  "docs: {{.Version}} CHANGELOG.md",
	}
	require.NoError(t, ValidateConfigValues(&valid, "config"))

	tests := []struct {
		name   string
		mutate func(*Configuration)
		field  string
	}{
		{"empty changelog path", func(c *Configuration) { c.ChangelogPath = "" }, "changelog_path"},
		{"bad initial version", func(c *Configuration) { c.InitialVersion = "one" }, "initial_version"},
		{"commit message without placeholder", func(c *Configuration) { c.CommitMessage = "docs: changelog" }, "commit_message"},
		{"release cmd without placeholder", func(c *Configuration) { c.ReleaseCmd = "cargo release" }, "release_cmd"},
		{"negative timeout", func(c *Configuration) { c.ReleaseTimeout = -1 }, "release_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := ValidateConfigValues(&cfg, "config")
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateYAMLSyntax_MissingFileIsValid(t *testing.T) {
	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(t.TempDir(), "missing.yml")))
}
