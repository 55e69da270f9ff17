package workflow

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relflow/relflow/internal/semver"
)

// mockSteps records the order in which pipeline steps run and lets tests
// inject a failure at any step.
type mockSteps struct {
	calls   []string
	version semver.Version

	resolveErr error
	generErr   error
	editErr    error
	commitErr  error
	publishErr error
}

func (m *mockSteps) Resolve(ctx context.Context) (semver.Version, error) {
	m.calls = append(m.calls, "resolve")
	return m.version, m.resolveErr
}

func (m *mockSteps) Generate(ctx context.Context) error {
	m.calls = append(m.calls, "generate")
	return m.generErr
}

func (m *mockSteps) Apply(version semver.Version) error {
	m.calls = append(m.calls, "edit")
	return m.editErr
}

func (m *mockSteps) Commit(version semver.Version) (string, error) {
	m.calls = append(m.calls, "commit")
	return "abcdef1234567890", m.commitErr
}

func (m *mockSteps) Publish(ctx context.Context, version semver.Version) error {
	m.calls = append(m.calls, "publish")
	return m.publishErr
}

func newMockPipeline(m *mockSteps) *Pipeline {
	return &Pipeline{
		Resolver:  m,
		Generator: m,
		Editor:    m,
		Committer: m,
		Publisher: m,
		Out:       &bytes.Buffer{},
	}
}

func TestPipeline_RunsStepsInOrder(t *testing.T) {
	m := &mockSteps{version: semver.MustParse("1.2.0")}

	result, err := newMockPipeline(m).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"resolve", "generate", "edit", "commit", "publish"}, m.calls)
	assert.Equal(t, "1.2.0", result.Version.String())
	assert.Equal(t, "abcdef1234567890", result.CommitHash)
}

func TestPipeline_ResolverFailureRunsNothingElse(t *testing.T) {
	m := &mockSteps{resolveErr: errors.New("no commit history")}

	_, err := newMockPipeline(m).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving next version")
	assert.Equal(t, []string{"resolve"}, m.calls)
}

func TestPipeline_GeneratorFailureStopsPipeline(t *testing.T) {
	m := &mockSteps{version: semver.MustParse("1.2.0"), generErr: errors.New("disk full")}

	_, err := newMockPipeline(m).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"resolve", "generate"}, m.calls)
}

func TestPipeline_CommitFailurePreventsPublish(t *testing.T) {
	m := &mockSteps{version: semver.MustParse("1.2.0"), commitErr: errors.New("nothing to commit")}

	_, err := newMockPipeline(m).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "committing changelog")
	assert.NotContains(t, m.calls, "publish")
}

func TestPipeline_ConfirmDeclinedAborts(t *testing.T) {
	m := &mockSteps{version: semver.MustParse("1.2.0")}
	p := newMockPipeline(m)
	p.Confirm = func(v semver.Version) (bool, error) {
		assert.Equal(t, "1.2.0", v.String())
		return false, nil
	}

	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, ErrAborted)
	assert.Equal(t, []string{"resolve"}, m.calls)
}

func TestCommitMessage(t *testing.T) {
	msg, err := CommitMessage("docs: {{.Version}} CHANGELOG.md", semver.MustParse("2.0.0"))
	require.NoError(t, err)
	assert.Equal(t, "docs: 2.0.0 CHANGELOG.md", msg)
}

func TestCommitMessage_BadTemplate(t *testing.T) {
	_, err := CommitMessage("docs: {{.Version", semver.MustParse("2.0.0"))
	require.Error(t, err)
}

func TestPromptUserToContinue(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"anything\n", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		got, err := promptUserToContinue("Release version 1.2.0?", bytes.NewBufferString(tt.input), &out)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, out.String(), "Release version 1.2.0? [y/N]: ")
	}
}
