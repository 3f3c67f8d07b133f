package cli

import (
	"errors"

	"github.com/yaklabco/snipscan/pkg/runner"
)

// Exit codes for snipscan.
const (
	// ExitSuccess indicates successful execution with no malformed directives.
	ExitSuccess = 0

	// ExitMalformed indicates the scan completed but found malformed directives.
	ExitMalformed = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitError carries a specific process exit code through the cobra error
// path so main can exit with it.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// CodeForError maps an error returned by command execution to a process
// exit code. Errors without an explicit code are treated as usage errors,
// which is what cobra's own flag and argument failures are.
func CodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitInvalidUsage
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
// Malformed directives always fail the run; per-file errors (unreadable or
// unparseable files) fail it only in strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasMalformed() {
		return ExitMalformed
	}

	if strict && result.HasErrors() {
		return ExitIOError
	}

	return ExitSuccess
}
