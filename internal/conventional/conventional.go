// Package conventional parses Conventional Commits messages and derives the
// semantic-version bump a range of commits requires. Messages that do not
// follow the convention are kept (they still justify a patch release) but
// carry an empty type and never appear in generated changelogs.
package conventional

import (
	"regexp"
	"strings"

	"github.com/relflow/relflow/internal/semver"
)

// headerPattern matches "type(scope)!: description" headers.
var headerPattern = regexp.MustCompile(`^([a-zA-Z]+)(?:\(([^)]*)\))?(!)?:\s+(.+)$`)

// Commit is a single parsed commit message.
type Commit struct {
	// Type is the conventional commit type (e.g. "feat", "fix").
	// Empty when the message does not follow the convention.
	Type string
	// Scope is the optional scope from the header, without parentheses.
	Scope string
	// Description is the header text after the colon, or the full first
	// line for non-conforming messages.
	Description string
	// Breaking is true for "!" headers or a BREAKING CHANGE footer.
	Breaking bool
}

// ParseMessage parses a full commit message (header plus optional body).
func ParseMessage(message string) Commit {
	lines := strings.Split(strings.ReplaceAll(message, "\r\n", "\n"), "\n")
	header := strings.TrimSpace(lines[0])

	c := Commit{Description: header}

	if m := headerPattern.FindStringSubmatch(header); m != nil {
		c.Type = strings.ToLower(m[1])
		c.Scope = m[2]
		c.Breaking = m[3] == "!"
		c.Description = m[4]
	}

	for _, line := range lines[1:] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "BREAKING CHANGE:") || strings.HasPrefix(trimmed, "BREAKING-CHANGE:") {
			c.Breaking = true
		}
	}

	return c
}

// IsConventional reports whether the commit header followed the convention.
func (c Commit) IsConventional() bool {
	return c.Type != ""
}

// Bump returns the version bump a single commit requires.
func (c Commit) Bump() semver.Bump {
	switch {
	case c.Breaking:
		return semver.BumpMajor
	case c.Type == "feat":
		return semver.BumpMinor
	default:
		return semver.BumpPatch
	}
}

// Category maps the commit type to a Keep a Changelog category.
// Returns an empty string for commit types that do not surface in
// changelogs (chore, docs, test, ci, build, style and non-conforming).
func (c Commit) Category() string {
	switch c.Type {
	case "feat":
		return "added"
	case "fix":
		return "fixed"
	case "perf", "refactor":
		return "changed"
	case "revert":
		return "removed"
	case "security":
		return "security"
	default:
		return ""
	}
}

// Bump determines the overall version bump for a set of commits.
// Returns BumpNone for an empty set; otherwise the highest bump any
// single commit requires, with patch as the floor.
func Bump(commits []Commit) semver.Bump {
	if len(commits) == 0 {
		return semver.BumpNone
	}

	bump := semver.BumpPatch
	for _, c := range commits {
		if b := c.Bump(); b > bump {
			bump = b
		}
	}
	return bump
}
