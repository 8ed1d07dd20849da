package errors

import (
	"fmt"
)

// ResolutionError is returned when a classpath entry cannot be opened or one
// of its class files cannot be decoded. It aborts the whole run.
type ResolutionError struct {
	Entry string
	Err   error
}

// Implement the error interface for ResolutionError
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve classpath entry %q: %v", e.Entry, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// NewResolutionError wraps err for the given classpath entry.
func NewResolutionError(entry string, err error) error {
	return &ResolutionError{
		Entry: entry,
		Err:   err,
	}
}

// Exit codes reported by the command line.
const (
	ExitCodeOK              = 0
	ExitCodeFailure         = 1
	ExitCodeInvalidArgs     = 2
	ExitCodeResolutionError = 3
)

// CommandError represents a failed command together with the process exit code.
type CommandError struct {
	ExitCode    int
	CommonError string
	Err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError instance for err with the given exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Err:         err,
	}
}
