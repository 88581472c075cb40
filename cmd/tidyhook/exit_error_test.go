// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"
)

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	underlying := errors.New("tool exploded")
	exitErr := &ExitError{Code: 7, Err: underlying}

	if exitErr.Error() != "tool exploded" {
		t.Errorf("Error() = %q, want the underlying message", exitErr.Error())
	}
	if !errors.Is(exitErr, underlying) {
		t.Error("errors.Is should find the underlying error via Unwrap")
	}
}

func TestExitErrorWithoutCause(t *testing.T) {
	t.Parallel()

	exitErr := &ExitError{Code: 3}
	if exitErr.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", exitErr.Error(), "exit status 3")
	}
	if exitErr.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", exitErr.Unwrap())
	}
}
