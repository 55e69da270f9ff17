package changelog

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/relflow/relflow/internal/conventional"
)

// ReleaseCommits is the raw input for one changelog section: a version and
// the commit messages that went into it. Version "unreleased" marks the
// pending section; its Date is ignored.
type ReleaseCommits struct {
	Version  string
	Date     time.Time
	Messages []string
}

// Build assembles a Changelog from per-release commit history. History is
// given oldest release first; the result lists releases newest first with
// commits bucketed into Keep a Changelog categories. Commits whose type has
// no changelog category (chore, docs, ci, non-conforming) are dropped.
func Build(project string, history []ReleaseCommits) *Changelog {
	doc := &Changelog{Project: project}

	for i := len(history) - 1; i >= 0; i-- {
		doc.Releases = append(doc.Releases, buildRelease(history[i]))
	}

	return doc
}

// buildRelease converts one release's commit messages into a Release section.
func buildRelease(rc ReleaseCommits) Release {
	rel := Release{Version: rc.Version}
	if rc.Version != "unreleased" {
		rel.Date = rc.Date.Format("2006-01-02")
	}

	for _, msg := range rc.Messages {
		c := conventional.ParseMessage(msg)
		category := c.Category()
		if category == "" && !c.Breaking {
			continue
		}
		if category == "" {
			// breaking change on a type without a category still matters
			category = "changed"
		}
		rel.Changes.add(category, entryText(c))
	}

	return rel
}

// entryText renders a parsed commit as a changelog bullet.
func entryText(c conventional.Commit) string {
	text := c.Description
	if c.Scope != "" {
		text = fmt.Sprintf("%s: %s", c.Scope, text)
	}
	if c.Breaking {
		text = "**Breaking:** " + text
	}
	return text
}

// ToYAML marshals the changelog document for structured export.
func (c *Changelog) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling changelog to YAML: %w", err)
	}
	return data, nil
}
