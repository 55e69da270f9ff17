package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/relflow/relflow/internal/changelog"
	"github.com/relflow/relflow/internal/config"
	"github.com/relflow/relflow/internal/conventional"
	"github.com/relflow/relflow/internal/git"
	"github.com/relflow/relflow/internal/release"
	"github.com/relflow/relflow/internal/semver"
)

// NewPipeline wires the default step implementations from configuration.
// The repository is opened once and shared by all steps.
func NewPipeline(cfg *config.Configuration) (*Pipeline, error) {
	repo, err := git.Open(cfg.RepoPath)
	if err != nil {
		return nil, err
	}

	root, err := repo.Root()
	if err != nil {
		return nil, err
	}

	initial, err := semver.Parse(cfg.InitialVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing initial_version: %w", err)
	}

	changelogPath := cfg.ChangelogPath
	if !filepath.IsAbs(changelogPath) {
		changelogPath = filepath.Join(root, changelogPath)
	}

	project := cfg.Project
	if project == "" {
		project = filepath.Base(root)
	}

	return &Pipeline{
		Resolver: &gitVersionResolver{repo: repo, prefix: cfg.TagPrefix, initial: initial},
		Generator: &ChangelogWriter{
			repo:    repo,
			prefix:  cfg.TagPrefix,
			project: project,
			path:    changelogPath,
		},
		Editor:    &markerEditor{path: changelogPath, allowMissing: cfg.AllowMissingMarker},
		Committer: &changelogCommitter{repo: repo, messageTemplate: cfg.CommitMessage},
		Publisher: &toolPublisher{publisher: &release.Publisher{
			CommandTemplate: cfg.ReleaseCmd,
			Dir:             root,
			AutoConfirm:     cfg.AutoConfirm,
			Timeout:         cfg.ReleaseTimeout,
		}},
	}, nil
}

// NewVersionResolver builds a standalone version resolver from
// configuration, for use outside the full pipeline.
func NewVersionResolver(cfg *config.Configuration) (VersionResolver, error) {
	repo, err := git.Open(cfg.RepoPath)
	if err != nil {
		return nil, err
	}

	initial, err := semver.Parse(cfg.InitialVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing initial_version: %w", err)
	}

	return &gitVersionResolver{repo: repo, prefix: cfg.TagPrefix, initial: initial}, nil
}

// gitVersionResolver derives the next version from conventional-commit
// history since the latest release tag.
type gitVersionResolver struct {
	repo    *git.Repository
	prefix  string
	initial semver.Version
}

func (r *gitVersionResolver) Resolve(ctx context.Context) (semver.Version, error) {
	latest, err := r.repo.LatestReleaseTag(r.prefix)
	if errors.Is(err, git.ErrNoReleaseTags) {
		return r.initial, nil
	}
	if err != nil {
		return semver.Version{}, err
	}

	commits, err := r.repo.CommitsSince(latest.Hash)
	if err != nil {
		return semver.Version{}, err
	}

	bump := conventional.Bump(parseAll(commits))
	if bump == semver.BumpNone {
		return semver.Version{}, fmt.Errorf("%w (latest: %s)", ErrNothingToRelease, latest.Name)
	}

	return latest.Version.Bumped(bump), nil
}

// ChangelogWriter regenerates the full changelog file from tag history.
// The pending section always renders under the [Unreleased] marker.
type ChangelogWriter struct {
	repo    *git.Repository
	prefix  string
	project string
	path    string
}

// NewChangelogWriter builds a standalone changelog generator from
// configuration, for use outside the full pipeline.
func NewChangelogWriter(cfg *config.Configuration) (*ChangelogWriter, error) {
	repo, err := git.Open(cfg.RepoPath)
	if err != nil {
		return nil, err
	}

	root, err := repo.Root()
	if err != nil {
		return nil, err
	}

	changelogPath := cfg.ChangelogPath
	if !filepath.IsAbs(changelogPath) {
		changelogPath = filepath.Join(root, changelogPath)
	}

	project := cfg.Project
	if project == "" {
		project = filepath.Base(root)
	}

	return &ChangelogWriter{
		repo:    repo,
		prefix:  cfg.TagPrefix,
		project: project,
		path:    changelogPath,
	}, nil
}

// Path returns the changelog file this writer targets.
func (g *ChangelogWriter) Path() string {
	return g.path
}

// Document assembles the changelog document from the repository's tag
// history without touching the filesystem.
func (g *ChangelogWriter) Document() (*changelog.Changelog, error) {
	tags, err := g.repo.ReleaseTags(g.prefix)
	if err != nil {
		return nil, err
	}

	var history []changelog.ReleaseCommits

	from := plumbing.ZeroHash
	for _, tag := range tags {
		commits, err := g.repo.CommitsBetween(from, tag.Hash)
		if err != nil {
			return nil, err
		}
		when, err := g.repo.CommitTime(tag.Hash)
		if err != nil {
			return nil, err
		}
		history = append(history, changelog.ReleaseCommits{
			Version:  tag.Version.String(),
			Date:     when,
			Messages: messages(commits),
		})
		from = tag.Hash
	}

	pending, err := g.repo.CommitsSince(from)
	if err != nil {
		return nil, err
	}
	history = append(history, changelog.ReleaseCommits{
		Version:  "unreleased",
		Messages: messages(pending),
	})

	return changelog.Build(g.project, history), nil
}

func (g *ChangelogWriter) Generate(ctx context.Context) error {
	doc, err := g.Document()
	if err != nil {
		return err
	}

	rendered, err := changelog.RenderMarkdownString(doc)
	if err != nil {
		return err
	}

	// full overwrite, never append
	if err := os.WriteFile(g.path, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("writing changelog %s: %w", g.path, err)
	}
	return nil
}

// markerEditor stamps the resolved version over the [Unreleased] marker.
type markerEditor struct {
	path         string
	allowMissing bool
}

func (e *markerEditor) Apply(version semver.Version) error {
	return changelog.RewriteFile(e.path, version.String(), e.allowMissing)
}

// changelogCommitter stages all pending changes and commits them with the
// configured message template.
type changelogCommitter struct {
	repo            *git.Repository
	messageTemplate string
}

func (c *changelogCommitter) Commit(version semver.Version) (string, error) {
	message, err := CommitMessage(c.messageTemplate, version)
	if err != nil {
		return "", err
	}

	if err := c.repo.StageAll(); err != nil {
		return "", err
	}
	return c.repo.Commit(message)
}

// toolPublisher adapts release.Publisher to the pipeline step interface.
type toolPublisher struct {
	publisher *release.Publisher
}

func (p *toolPublisher) Publish(ctx context.Context, version semver.Version) error {
	return p.publisher.Publish(ctx, version.String())
}

// CommitMessage expands the commit message template for a version,
// e.g. "docs: {{.Version}} CHANGELOG.md" becomes "docs: 1.4.0 CHANGELOG.md".
func CommitMessage(messageTemplate string, version semver.Version) (string, error) {
	tmpl, err := template.New("commit").Parse(messageTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing commit message template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Version string }{Version: version.String()}); err != nil {
		return "", fmt.Errorf("expanding commit message template: %w", err)
	}
	return buf.String(), nil
}

func parseAll(commits []git.CommitInfo) []conventional.Commit {
	parsed := make([]conventional.Commit, 0, len(commits))
	for _, c := range commits {
		parsed = append(parsed, conventional.ParseMessage(c.Message))
	}
	return parsed
}

func messages(commits []git.CommitInfo) []string {
	msgs := make([]string, 0, len(commits))
	for _, c := range commits {
		msgs = append(msgs, c.Message)
	}
	return msgs
}
