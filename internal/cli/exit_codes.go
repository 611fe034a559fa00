package cli

import "fmt"

// Exit codes for the shiplog CLI. They support programmatic composition
// and CI integration.
const (
	// ExitSuccess indicates successful command execution.
	ExitSuccess = 0

	// ExitRuntime indicates a failure during command execution.
	ExitRuntime = 1

	// ExitInvalidArguments indicates invalid command arguments or
	// configuration.
	ExitInvalidArguments = 3

	// ExitPrerequisite indicates a missing precondition: not a git
	// repository, or no semantic version tags to work with.
	ExitPrerequisite = 4
)

// ExitError carries an explicit exit code through cobra's error path.
type ExitError struct {
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an error that maps to the given exit code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}
