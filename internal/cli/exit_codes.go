package cli

import (
	"errors"
	"fmt"

	mkerrors "github.com/mkchlog/mkchlog/internal/errors"
)

// Exit codes for the mkchlog CLI
// These codes let git hooks and CI pipelines distinguish failure classes
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a git or other runtime failure
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitConfigError indicates a missing or invalid configuration file
	ExitConfigError = 3

	// ExitValidationFailed indicates commits failed changelog validation
	ExitValidationFailed = 4
)

// ExitError carries a process exit code through the cobra error path for
// commands that have already printed their own diagnostics.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewExitError returns an error that maps to the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if cliErr := mkerrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case mkerrors.Argument:
			return ExitInvalidArguments
		case mkerrors.Configuration:
			return ExitConfigError
		case mkerrors.Validation:
			return ExitValidationFailed
		}
	}
	return ExitFailure
}
