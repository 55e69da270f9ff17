package cli

import (
	stderrors "errors"

	"github.com/relflow/relflow/internal/errors"
	"github.com/relflow/relflow/internal/release"
	"github.com/relflow/relflow/internal/workflow"
)

// Exit codes for the relflow CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitFailure indicates a pipeline or runtime failure.
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments or configuration.
	ExitInvalidArguments = 2

	// ExitNothingToRelease indicates no commits exist since the last release tag.
	ExitNothingToRelease = 3

	// ExitTimeout indicates the release tool timed out.
	ExitTimeout = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if stderrors.Is(err, workflow.ErrNothingToRelease) {
		return ExitNothingToRelease
	}

	var timeoutErr *release.TimeoutError
	if stderrors.As(err, &timeoutErr) {
		return ExitTimeout
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errors.Argument, errors.Configuration:
			return ExitInvalidArguments
		}
	}

	return ExitFailure
}
