// Package semver implements the minimal semantic-version handling relflow
// needs: parsing, comparison, and bumping. It is not a full semver library;
// build metadata and pre-release identifiers are carried through unchanged
// but never influence bump decisions.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// semverPattern matches MAJOR.MINOR.PATCH with optional pre-release and
// build metadata suffixes.
var semverPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([a-zA-Z0-9.-]+))?(?:\+([a-zA-Z0-9.-]+))?$`)

// Version is a parsed semantic version.
type Version struct {
	Major int
	Minor int
	Patch int
	Pre   string
	Build string
}

// Bump describes which version component a set of changes requires bumping.
type Bump int

const (
	// BumpNone means no release-worthy changes were found.
	BumpNone Bump = iota
	// BumpPatch is a backwards-compatible fix.
	BumpPatch
	// BumpMinor is a backwards-compatible feature addition.
	BumpMinor
	// BumpMajor is a breaking change.
	BumpMajor
)

// String returns a human-readable name for the bump level.
func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "none"
	}
}

// Parse parses a version string into a Version.
// A leading "v" prefix is accepted and stripped.
func Parse(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	m := semverPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("invalid semver format %q (expected: X.Y.Z)", s)
	}

	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, fmt.Errorf("parsing major component: %w", err)
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, fmt.Errorf("parsing minor component: %w", err)
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return Version{}, fmt.Errorf("parsing patch component: %w", err)
	}

	return Version{Major: major, Minor: minor, Patch: patch, Pre: m[4], Build: m[5]}, nil
}

// MustParse parses a version string and panics on error.
// Intended for tests and compile-time constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValid reports whether s parses as a semantic version.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// String renders the version without a "v" prefix (e.g. "1.4.0").
func (v Version) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		sb.WriteString("-" + v.Pre)
	}
	if v.Build != "" {
		sb.WriteString("+" + v.Build)
	}
	return sb.String()
}

// Compare returns -1, 0, or 1 if v is less than, equal to, or greater than o.
// Pre-release versions sort before the corresponding release; build metadata
// is ignored, per the semver specification.
func (v Version) Compare(o Version) int {
	if c := compareInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, o.Patch); c != 0 {
		return c
	}
	return comparePre(v.Pre, o.Pre)
}

// Bumped returns the version that results from applying the given bump.
// Bumping clears any pre-release and build metadata.
func (v Version) Bumped(b Bump) Version {
	switch b {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// comparePre compares pre-release strings. An empty pre-release (a release)
// sorts after any non-empty one.
func comparePre(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}
