// Package release invokes the external release tool that tags and publishes
// a version. The command is a shell template with a {{.Version}} placeholder,
// run non-interactively; for tools that insist on a confirmation prompt an
// affirmative answer can be fed on stdin.
package release

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"text/template"
	"time"
)

// Publisher runs the configured release command.
type Publisher struct {
	// CommandTemplate is the shell command with a {{.Version}} placeholder,
	// e.g. "cargo release --execute {{.Version}}".
	CommandTemplate string
	// Dir is the working directory for the command (the repository root).
	Dir string
	// AutoConfirm feeds "y\n" to the command's stdin for tools that
	// prompt for confirmation. Prefer a force flag in CommandTemplate
	// when the tool has one.
	AutoConfirm bool
	// Timeout in seconds (0 = no timeout).
	Timeout int
	// Stdout and Stderr receive the tool's output (default os.Stdout/os.Stderr).
	Stdout io.Writer
	Stderr io.Writer
}

// templateVars holds the variables available in CommandTemplate.
type templateVars struct {
	Version string
}

// TimeoutError indicates the release tool exceeded its allowed runtime.
type TimeoutError struct {
	Timeout time.Duration
	Command string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("release command timed out after %s: %s", e.Timeout, e.Command)
}

// FormatCommand returns the expanded command for display and error messages.
func (p *Publisher) FormatCommand(version string) (string, error) {
	return expandTemplate(p.CommandTemplate, templateVars{Version: version})
}

// Publish runs the release command for the given version.
// This is the irreversible step of the pipeline; any non-zero exit is fatal.
func (p *Publisher) Publish(ctx context.Context, version string) error {
	if strings.TrimSpace(p.CommandTemplate) == "" {
		return fmt.Errorf("no release command configured")
	}

	cmdStr, err := p.FormatCommand(version)
	if err != nil {
		return err
	}

	ctx, cancel := p.withTimeout(ctx)
	if cancel != nil {
		defer cancel()
	}

	// Run via shell so templates may carry flags, env prefixes, or pipes.
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdStr)
	cmd.Dir = p.Dir
	cmd.Env = os.Environ()
	cmd.Stdout = p.stdout()
	cmd.Stderr = p.stderr()
	if p.AutoConfirm {
		cmd.Stdin = strings.NewReader("y\n")
	}

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return &TimeoutError{Timeout: time.Duration(p.Timeout) * time.Second, Command: cmdStr}
	}
	if err != nil {
		return fmt.Errorf("release command failed: %w", err)
	}
	return nil
}

// withTimeout wraps ctx with the configured timeout, if any.
func (p *Publisher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout > 0 {
		return context.WithTimeout(ctx, time.Duration(p.Timeout)*time.Second)
	}
	return ctx, nil
}

func (p *Publisher) stdout() io.Writer {
	if p.Stdout != nil {
		return p.Stdout
	}
	return os.Stdout
}

func (p *Publisher) stderr() io.Writer {
	if p.Stderr != nil {
		return p.Stderr
	}
	return os.Stderr
}

// expandTemplate expands a {{.Version}}-style command template.
func expandTemplate(cmdTemplate string, vars templateVars) (string, error) {
	tmpl, err := template.New("cmd").Parse(cmdTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing release command template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("expanding release command template: %w", err)
	}

	return buf.String(), nil
}
