// Package changelog builds, renders, and rewrites Keep a Changelog documents.
// Documents are regenerated in full from conventional-commit history; the only
// in-place mutation supported is replacing the [Unreleased] marker with a
// resolved version at release time.
package changelog

// Changelog is the root of a generated changelog document.
// Releases are ordered newest first.
type Changelog struct {
	Project  string    `yaml:"project"`
	Releases []Release `yaml:"releases"`
}

// Release is a single version section. The Version field is a bare semantic
// version (e.g. "1.4.0") or the special identifier "unreleased". Date is
// YYYY-MM-DD for released versions and empty for unreleased.
type Release struct {
	Version string  `yaml:"version"`
	Date    string  `yaml:"date,omitempty"`
	Changes Changes `yaml:"changes"`
}

// Changes groups change entries by Keep a Changelog category.
// All fields are optional; empty categories are omitted when rendering.
// Categories follow the Keep a Changelog specification:
// https://keepachangelog.com/en/1.1.0/
type Changes struct {
	Added      []string `yaml:"added,omitempty"`
	Changed    []string `yaml:"changed,omitempty"`
	Deprecated []string `yaml:"deprecated,omitempty"`
	Removed    []string `yaml:"removed,omitempty"`
	Fixed      []string `yaml:"fixed,omitempty"`
	Security   []string `yaml:"security,omitempty"`
}

// IsEmpty returns true if the Changes struct has no entries in any category.
func (c Changes) IsEmpty() bool {
	return c.Count() == 0
}

// Count returns the total number of entries across all categories.
func (c Changes) Count() int {
	return len(c.Added) +
		len(c.Changed) +
		len(c.Deprecated) +
		len(c.Removed) +
		len(c.Fixed) +
		len(c.Security)
}

// add appends an entry to the named category. Unknown categories are ignored.
func (c *Changes) add(category, text string) {
	switch category {
	case "added":
		c.Added = append(c.Added, text)
	case "changed":
		c.Changed = append(c.Changed, text)
	case "deprecated":
		c.Deprecated = append(c.Deprecated, text)
	case "removed":
		c.Removed = append(c.Removed, text)
	case "fixed":
		c.Fixed = append(c.Fixed, text)
	case "security":
		c.Security = append(c.Security, text)
	}
}

// IsUnreleased returns true if this release represents unreleased changes.
func (r Release) IsUnreleased() bool {
	return r.Version == "unreleased"
}
