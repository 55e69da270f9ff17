// Package workflow orchestrates the release pipeline: resolve next version,
// regenerate the changelog, substitute the [Unreleased] marker, commit, and
// invoke the release tool. Execution is strictly sequential and fail-fast;
// a failed step stops the pipeline with nothing downstream executed and no
// rollback of changes already written.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/relflow/relflow/internal/output"
	"github.com/relflow/relflow/internal/semver"
)

// ErrNothingToRelease is returned when no commits exist since the last
// release tag.
var ErrNothingToRelease = errors.New("no commits since the last release tag")

// ErrAborted is returned when the operator declines the confirmation prompt.
var ErrAborted = errors.New("release aborted by user")

// VersionResolver derives the next semantic version from commit history.
type VersionResolver interface {
	Resolve(ctx context.Context) (semver.Version, error)
}

// ChangelogGenerator regenerates the full changelog file, leaving the
// pending section under the [Unreleased] marker.
type ChangelogGenerator interface {
	Generate(ctx context.Context) error
}

// ChangelogEditor replaces the [Unreleased] marker with the resolved version.
type ChangelogEditor interface {
	Apply(version semver.Version) error
}

// Committer stages pending changes and commits the edited changelog.
type Committer interface {
	Commit(version semver.Version) (hash string, err error)
}

// Publisher invokes the external release tool for the resolved version.
type Publisher interface {
	Publish(ctx context.Context, version semver.Version) error
}

// Pipeline runs the five release steps in order. Step implementations are
// injected so tests can substitute mocks; NewPipeline wires the defaults.
type Pipeline struct {
	Resolver  VersionResolver
	Generator ChangelogGenerator
	Editor    ChangelogEditor
	Committer Committer
	Publisher Publisher

	// Confirm, when non-nil, is asked once after version resolution and
	// before any filesystem mutation. Returning false aborts the run.
	Confirm func(version semver.Version) (bool, error)

	// Out receives progress output (default os.Stdout).
	Out io.Writer
}

// Result describes a completed pipeline run.
type Result struct {
	Version    semver.Version
	CommitHash string
}

const totalSteps = 5

// Run executes the pipeline. Any step failure is returned immediately with
// the failing step named; later steps do not run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	out := p.out()

	output.PrintStepHeader(out, 1, totalSteps, "Resolving next version")
	version, err := p.Resolver.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving next version: %w", err)
	}
	output.PrintStepSuccess(out, "Next version: "+version.String())

	if p.Confirm != nil {
		ok, err := p.Confirm(version)
		if err != nil {
			return nil, fmt.Errorf("reading confirmation: %w", err)
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	output.PrintStepHeader(out, 2, totalSteps, "Generating changelog")
	if err := p.Generator.Generate(ctx); err != nil {
		return nil, fmt.Errorf("generating changelog: %w", err)
	}
	output.PrintStepSuccess(out, "Changelog regenerated")

	output.PrintStepHeader(out, 3, totalSteps, "Stamping release version")
	if err := p.Editor.Apply(version); err != nil {
		return nil, fmt.Errorf("stamping changelog version: %w", err)
	}
	output.PrintStepSuccess(out, "Marked [Unreleased] as [v"+version.String()+"]")

	output.PrintStepHeader(out, 4, totalSteps, "Committing changelog")
	hash, err := p.Committer.Commit(version)
	if err != nil {
		return nil, fmt.Errorf("committing changelog: %w", err)
	}
	output.PrintStepSuccess(out, "Created commit "+shortHash(hash))

	output.PrintStepHeader(out, 5, totalSteps, "Publishing release")
	if err := p.Publisher.Publish(ctx, version); err != nil {
		return nil, fmt.Errorf("publishing release: %w", err)
	}
	output.PrintStepSuccess(out, "Released v"+version.String())

	return &Result{Version: version, CommitHash: hash}, nil
}

func (p *Pipeline) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
