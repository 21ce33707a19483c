package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	apperrors "github.com/ariel-frischer/appcore/internal/errors"
)

// Exit codes for the appcore CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates the command failed at runtime
	ExitFailure = 1

	// ExitConfigurationInvalid indicates configuration could not be acquired or edited
	ExitConfigurationInvalid = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitMissingDependencies indicates required files or dependencies are missing
	ExitMissingDependencies = 4

	// ExitTimeout indicates command execution timed out
	ExitTimeout = 5
)

// ExitError carries the exit code for an error that has already been
// reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return ExitTimeout
	}
	switch apperrors.Classify(err).Category {
	case apperrors.Argument:
		return ExitInvalidArguments
	case apperrors.Configuration:
		return ExitConfigurationInvalid
	case apperrors.Prerequisite:
		return ExitMissingDependencies
	default:
		return ExitFailure
	}
}
