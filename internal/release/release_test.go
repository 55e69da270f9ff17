package release

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("publisher tests need a POSIX shell")
	}
}

func TestFormatCommand(t *testing.T) {
	p := &Publisher{CommandTemplate: "cargo release --execute {{.Version}}"}

	cmd, err := p.FormatCommand("1.2.0")
	require.NoError(t, err)
	assert.Equal(t, "cargo release --execute 1.2.0", cmd)
}

func TestFormatCommand_BadTemplate(t *testing.T) {
	p := &Publisher{CommandTemplate: "release {{.Version"}

	_, err := p.FormatCommand("1.2.0")
	require.Error(t, err)
}

func TestPublish_PassesVersionArgument(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	p := &Publisher{
		CommandTemplate: "printf '%s' {{.Version}} > published.txt",
		Dir:             dir,
	}

	require.NoError(t, p.Publish(context.Background(), "1.2.0"))

	data, err := os.ReadFile(filepath.Join(dir, "published.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", string(data))
}

func TestPublish_AutoConfirmFeedsAffirmativeAnswer(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	p := &Publisher{
		CommandTemplate: "cat > answer-{{.Version}}.txt",
		Dir:             dir,
		AutoConfirm:     true,
	}

	require.NoError(t, p.Publish(context.Background(), "1.2.0"))

	data, err := os.ReadFile(filepath.Join(dir, "answer-1.2.0.txt"))
	require.NoError(t, err)
	assert.Equal(t, "y\n", string(data))
}

func TestPublish_NonZeroExitFails(t *testing.T) {
	requireShell(t)

	p := &Publisher{CommandTemplate: "exit 3 # {{.Version}}", Dir: t.TempDir()}

	err := p.Publish(context.Background(), "1.2.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release command failed")
}

func TestPublish_EmptyCommand(t *testing.T) {
	p := &Publisher{}

	err := p.Publish(context.Background(), "1.2.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no release command configured")
}

func TestPublish_Timeout(t *testing.T) {
	requireShell(t)

	var out bytes.Buffer
	p := &Publisher{
		CommandTemplate: "sleep 5 # {{.Version}}",
		Dir:             t.TempDir(),
		Timeout:         1,
		Stdout:          &out,
		Stderr:          &out,
	}

	err := p.Publish(context.Background(), "1.2.0")
	require.Error(t, err)
	var timeoutErr *TimeoutError
	assert.ErrorAs(t, err, &timeoutErr)
}

func TestPublish_OutputCaptured(t *testing.T) {
	requireShell(t)

	var out bytes.Buffer
	p := &Publisher{
		CommandTemplate: "echo releasing {{.Version}}",
		Dir:             t.TempDir(),
		Stdout:          &out,
		Stderr:          &out,
	}

	require.NoError(t, p.Publish(context.Background(), "1.2.0"))
	assert.Contains(t, out.String(), "releasing 1.2.0")
}
