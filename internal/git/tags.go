package git

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/relflow/relflow/internal/semver"
)

// ErrNoReleaseTags is returned when the repository has no tags that parse
// as release versions.
var ErrNoReleaseTags = errors.New("no release tags found")

// Tag is a release tag resolved to its commit.
type Tag struct {
	// Name is the full tag name (e.g. "v1.4.0").
	Name string
	// Version is the parsed semantic version.
	Version semver.Version
	// Hash is the tagged commit (annotated tags are peeled).
	Hash plumbing.Hash
}

// ReleaseTags returns all tags carrying the given prefix whose suffix parses
// as a semantic version, sorted ascending by version. Tags without the prefix
// or with non-semver names are ignored.
func (r *Repository) ReleaseTags(prefix string) ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			return nil
		}

		ver, parseErr := semver.Parse(strings.TrimPrefix(name, prefix))
		if parseErr != nil {
			logDebug("[git] skipping non-semver tag %s", name)
			return nil
		}

		hash, peelErr := r.peelTag(ref)
		if peelErr != nil {
			return fmt.Errorf("resolving tag %s: %w", name, peelErr)
		}

		tags = append(tags, Tag{Name: name, Version: ver, Hash: hash})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Version.Compare(tags[j].Version) < 0
	})

	logDebug("[git] ReleaseTags: found %d release tags", len(tags))
	return tags, nil
}

// LatestReleaseTag returns the highest-versioned release tag.
// Returns ErrNoReleaseTags when none exist.
func (r *Repository) LatestReleaseTag(prefix string) (Tag, error) {
	tags, err := r.ReleaseTags(prefix)
	if err != nil {
		return Tag{}, err
	}
	if len(tags) == 0 {
		return Tag{}, ErrNoReleaseTags
	}

	latest := tags[len(tags)-1]
	logDebug("[git] LatestReleaseTag: %s", latest.Name)
	return latest, nil
}

// peelTag resolves a tag reference to the commit it points at.
// Annotated tags point at tag objects, which carry the target commit;
// lightweight tags point at the commit directly.
func (r *Repository) peelTag(ref *plumbing.Reference) (plumbing.Hash, error) {
	obj, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		return obj.Target, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	default:
		return plumbing.ZeroHash, err
	}
}
