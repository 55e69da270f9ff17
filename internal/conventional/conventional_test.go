package conventional

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/relflow/relflow/internal/semver"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Commit
	}{
		{
			name:    "plain feat",
			message: "feat: add tag filtering",
			want:    Commit{Type: "feat", Description: "add tag filtering"},
		},
		{
			name:    "scoped fix",
			message: "fix(parser): handle empty scope",
			want:    Commit{Type: "fix", Scope: "parser", Description: "handle empty scope"},
		},
		{
			name:    "breaking bang",
			message: "feat(api)!: drop v1 endpoints",
			want:    Commit{Type: "feat", Scope: "api", Breaking: true, Description: "drop v1 endpoints"},
		},
		{
			name:    "breaking footer",
			message: "refactor: rework config loading\n\nBREAKING CHANGE: config keys renamed",
			want:    Commit{Type: "refactor", Breaking: true, Description: "rework config loading"},
		},
		{
			name:    "type is lowercased",
			message: "Fix: normalize case",
			want:    Commit{Type: "fix", Description: "normalize case"},
		},
		{
			name:    "non-conforming message",
			message: "updated stuff",
			want:    Commit{Description: "updated stuff"},
		},
		{
			name:    "missing space after colon is non-conforming",
			message: "feat:no space",
			want:    Commit{Description: "feat:no space"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMessage(tt.message))
		})
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     semver.Bump
	}{
		{name: "no commits", messages: nil, want: semver.BumpNone},
		{name: "chore only is patch", messages: []string{"chore: tidy"}, want: semver.BumpPatch},
		{name: "non-conforming is patch", messages: []string{"wip"}, want: semver.BumpPatch},
		{name: "fix is patch", messages: []string{"fix: off by one"}, want: semver.BumpPatch},
		{name: "feat wins over fix", messages: []string{"fix: a", "feat: b"}, want: semver.BumpMinor},
		{name: "breaking wins over feat", messages: []string{"feat: a", "fix!: b"}, want: semver.BumpMajor},
		{name: "breaking footer wins", messages: []string{"chore: a\n\nBREAKING CHANGE: x"}, want: semver.BumpMajor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commits := make([]Commit, 0, len(tt.messages))
			for _, m := range tt.messages {
				commits = append(commits, ParseMessage(m))
			}
			assert.Equal(t, tt.want, Bump(commits))
		})
	}
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "added", ParseMessage("feat: x").Category())
	assert.Equal(t, "fixed", ParseMessage("fix: x").Category())
	assert.Equal(t, "changed", ParseMessage("perf: x").Category())
	assert.Equal(t, "changed", ParseMessage("refactor: x").Category())
	assert.Equal(t, "removed", ParseMessage("revert: x").Category())
	assert.Equal(t, "", ParseMessage("chore: x").Category())
	assert.Equal(t, "", ParseMessage("random text").Category())
}
