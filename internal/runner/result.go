// SPDX-License-Identifier: MPL-2.0

package runner

import "fmt"

type (
	// Result is the outcome of running one script or a whole category.
	Result struct {
		// ExitCode is the process exit status; 0 covers "nothing to do".
		ExitCode ExitCode
		// Err carries failure detail. It is set for infrastructure
		// failures (spawn errors) and for nonzero script exits, where it
		// is a *ScriptError identifying the script.
		Err error
	}

	// ScriptError identifies a script that terminated with a nonzero
	// exit code, as opposed to one that could not be started at all.
	ScriptError struct {
		// Path is the absolute path of the failing script.
		Path string
		// Code is the script's exit status.
		Code ExitCode
	}
)

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s exited with code %s", e.Path, e.Code)
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() Result {
	return Result{}
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) Result {
	return Result{ExitCode: code, Err: err}
}
