package config

// Configuration represents the relflow CLI tool configuration.
type Configuration struct {
	// RepoPath is the git repository to operate on. Empty means the
	// current working directory (the repository root is detected by
	// walking up the directory tree).
	// Can be set via RELFLOW_REPO_PATH env var or the --repo flag.
	RepoPath string `koanf:"repo_path"`

	// ChangelogPath is the changelog file, relative to the repository
	// root unless absolute.
	ChangelogPath string `koanf:"changelog_path" validate:"required"`

	// Project is the project name rendered into the changelog header.
	// Empty means the repository directory name is used.
	Project string `koanf:"project"`

	// TagPrefix is stripped from tags when parsing versions and is the
	// prefix expected on release tags (default "v").
	TagPrefix string `koanf:"tag_prefix"`

	// InitialVersion is released when the repository has no release tags yet.
	InitialVersion string `koanf:"initial_version" validate:"required"`

	// CommitMessage is the template for the changelog commit message.
	// {{.Version}} expands to the resolved version.
	CommitMessage string `koanf:"commit_message" validate:"required"`

	// ReleaseCmd is the external release tool invocation, run through the
	// shell with {{.Version}} expanded. Required for 'relflow release'.
	// Example: "cargo release --execute {{.Version}}"
	ReleaseCmd string `koanf:"release_cmd"`

	// AutoConfirm feeds an affirmative "y" line to the release tool's
	// stdin for tools that insist on an interactive prompt. Prefer a
	// non-interactive flag in release_cmd and disable this when the tool
	// supports one.
	AutoConfirm bool `koanf:"auto_confirm"`

	// AllowMissingMarker downgrades a missing [Unreleased] marker in the
	// changelog from a hard failure to a no-op substitution.
	AllowMissingMarker bool `koanf:"allow_missing_marker"`

	// SkipConfirmations skips relflow's own confirmation prompt before
	// publishing (can also be set via RELFLOW_YES env var).
	SkipConfirmations bool `koanf:"skip_confirmations"`

	// ReleaseTimeout bounds the release tool's runtime in seconds
	// (0 = no timeout).
	ReleaseTimeout int `koanf:"release_timeout" validate:"gte=0"`
}
