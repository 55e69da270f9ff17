package changelog

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Marker is the literal placeholder the generator leaves in the changelog
// and the release pipeline rewrites.
const Marker = "[Unreleased]"

// ErrMarkerNotFound is returned by RewriteFile when the changelog contains
// no [Unreleased] marker and missing markers are not allowed.
var ErrMarkerNotFound = errors.New("changelog contains no [Unreleased] marker")

// HasMarker reports whether the content contains the [Unreleased] marker.
func HasMarker(content string) bool {
	return strings.Contains(content, Marker)
}

// SubstituteVersion replaces every occurrence of the [Unreleased] marker with
// "[v<version>]". When the marker is absent the content is returned unchanged.
func SubstituteVersion(content, version string) string {
	return strings.ReplaceAll(content, Marker, "[v"+version+"]")
}

// RewriteFile rewrites the changelog at path, replacing the [Unreleased]
// marker with the given version. A missing marker is an error unless
// allowMissing is set, in which case the file is left byte-identical.
func RewriteFile(path, version string, allowMissing bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading changelog %s: %w", path, err)
	}

	content := string(data)
	if !HasMarker(content) {
		if allowMissing {
			return nil
		}
		return fmt.Errorf("%s: %w", path, ErrMarkerNotFound)
	}

	rewritten := SubstituteVersion(content, version)
	if err := os.WriteFile(path, []byte(rewritten), 0644); err != nil {
		return fmt.Errorf("writing changelog %s: %w", path, err)
	}

	return nil
}
