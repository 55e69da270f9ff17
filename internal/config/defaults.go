package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# Relflow Configuration
# See 'relflow config -h' for commands

# Repository settings
repo_path: ""                         # Git repository path (empty = current directory)
changelog_path: CHANGELOG.md          # Changelog file, relative to the repository root
project: ""                           # Project name in the changelog header (empty = repo dir name)
tag_prefix: v                         # Prefix expected on release tags

# Version settings
initial_version: 0.1.0                # First release when no release tags exist yet

# Commit settings
commit_message: "docs: {{.Version}} CHANGELOG.md"

# Release tool settings
release_cmd: ""                       # External release invocation, e.g. "cargo release --execute {{.Version}}"
auto_confirm: true                    # Feed "y" to the release tool's confirmation prompt
release_timeout: 0                    # Release tool timeout in seconds (0 = no timeout)

# Behavior
allow_missing_marker: false           # Treat a missing [Unreleased] marker as a no-op instead of an error
skip_confirmations: false             # Skip relflow's own confirmation prompt before publishing
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"repo_path":       "",
		"changelog_path":  "CHANGELOG.md",
		"project":         "",
		"tag_prefix":      "v",
		"initial_version": "0.1.0",
		// commit_message: matches the message format the workflow has always
		// produced, e.g. "docs: 1.4.0 CHANGELOG.md".
		"commit_message": "docs: {{.Version}} CHANGELOG.md",
		"release_cmd":    "",
		// auto_confirm: answer the release tool's prompt affirmatively.
		// Operators whose tool has a --no-confirm flag should put it in
		// release_cmd and turn this off.
		"auto_confirm":         true,
		"release_timeout":      0,
		"allow_missing_marker": false,
		"skip_confirmations":   false,
	}
}
