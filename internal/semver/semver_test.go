package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{name: "plain", input: "1.4.0", want: Version{Major: 1, Minor: 4}},
		{name: "v prefix stripped", input: "v2.0.3", want: Version{Major: 2, Patch: 3}},
		{name: "pre-release", input: "1.0.0-rc.1", want: Version{Major: 1, Pre: "rc.1"}},
		{name: "build metadata", input: "1.0.0+20260824", want: Version{Major: 1, Build: "20260824"}},
		{name: "whitespace trimmed", input: " 0.1.0\n", want: Version{Minor: 1}},
		{name: "missing patch", input: "1.2", wantErr: true},
		{name: "not a version", input: "latest", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	for _, s := range []string{"1.4.0", "0.0.1", "2.0.0-rc.1", "1.0.0+abc", "3.1.4-beta+exp.sha.5114f85"} {
		v := MustParse(s)
		assert.Equal(t, s, v.String())
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"1.2.0", "1.1.9", 1},
		{"1.1.1", "1.1.2", -1},
		{"1.0.0-rc.1", "1.0.0", -1},
		{"1.0.0", "1.0.0-rc.1", 1},
		{"1.0.0+a", "1.0.0+b", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MustParse(tt.a).Compare(MustParse(tt.b)), "%s vs %s", tt.a, tt.b)
	}
}

func TestBumped(t *testing.T) {
	base := MustParse("1.4.2-rc.1")

	assert.Equal(t, "2.0.0", base.Bumped(BumpMajor).String())
	assert.Equal(t, "1.5.0", base.Bumped(BumpMinor).String())
	assert.Equal(t, "1.4.3", base.Bumped(BumpPatch).String())
	// BumpNone keeps the numbers but drops pre-release/build suffixes
	assert.Equal(t, "1.4.2", base.Bumped(BumpNone).String())
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("v1.2.3"))
	assert.False(t, IsValid("1.2"))
}
