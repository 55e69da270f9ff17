package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown generates a Keep a Changelog formatted markdown document.
// The pending section renders under the literal header "## [Unreleased]";
// released sections render as "## [vX.Y.Z] - YYYY-MM-DD".
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if err := renderHeader(c, w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i, r := range c.Releases {
		if err := renderRelease(&r, w, i == 0); err != nil {
			return fmt.Errorf("rendering version %s: %w", r.Version, err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderHeader writes the standard Keep a Changelog header.
func renderHeader(c *Changelog, w io.Writer) error {
	header := `# Changelog

All notable changes to ` + c.Project + ` will be documented in this file.

The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),
and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).

`
	_, err := w.Write([]byte(header))
	return err
}

// renderRelease writes a single version section with all its changes.
func renderRelease(r *Release, w io.Writer, isFirst bool) error {
	if !isFirst {
		if _, err := w.Write([]byte("\n")); err != nil {
			return err
		}
	}
	if _, err := w.Write([]byte(formatReleaseHeader(r) + "\n")); err != nil {
		return err
	}

	return renderChanges(&r.Changes, w)
}

// formatReleaseHeader formats the version header line.
func formatReleaseHeader(r *Release) string {
	if r.IsUnreleased() {
		return "## " + Marker
	}
	return fmt.Sprintf("## [v%s] - %s", r.Version, r.Date)
}

// renderChanges writes all non-empty change categories in standard order.
func renderChanges(c *Changes, w io.Writer) error {
	categories := []struct {
		name    string
		entries []string
	}{
		{"Added", c.Added},
		{"Changed", c.Changed},
		{"Deprecated", c.Deprecated},
		{"Removed", c.Removed},
		{"Fixed", c.Fixed},
		{"Security", c.Security},
	}

	for _, cat := range categories {
		if len(cat.entries) > 0 {
			if err := renderCategory(cat.name, cat.entries, w); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderCategory writes a single category section with its entries.
func renderCategory(name string, entries []string, w io.Writer) error {
	if _, err := w.Write([]byte("\n### " + name + "\n")); err != nil {
		return err
	}

	for _, entry := range entries {
		if _, err := w.Write([]byte("- " + entry + "\n")); err != nil {
			return err
		}
	}

	return nil
}
