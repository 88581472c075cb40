// SPDX-License-Identifier: MPL-2.0

// Package runner executes overlay scripts as child processes, one at a
// time. It owns the exit-code plumbing shared by the directory runner,
// the type detector and the helper chain resolver.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"tidyhook/internal/overlay"
)

type (
	// ScriptRunner runs executable scripts resolved from the overlay
	// roots. Execution is strictly sequential; every invocation blocks
	// until the child exits.
	ScriptRunner struct {
		Roots *overlay.Roots
		// Stdout, Stderr and Stdin are wired to each child. They default
		// to the process streams.
		Stdout io.Writer
		Stderr io.Writer
		Stdin  io.Reader
		// Env, when non-nil, replaces the inherited environment.
		Env []string
	}
)

// NewScriptRunner creates a runner over the given overlay roots wired to
// the process standard streams.
func NewScriptRunner(roots *overlay.Roots) *ScriptRunner {
	return &ScriptRunner{
		Roots:  roots,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
	}
}

// List returns the effective script set for a category directory.
func (sr *ScriptRunner) List(categoryDir string) []overlay.Script {
	return sr.Roots.ListCategory(categoryDir)
}

// RunAll executes every script in the category directory's effective set,
// in basename order, stopping on the first nonzero exit and returning it.
// A category present in no overlay root is a no-op success.
func (sr *ScriptRunner) RunAll(ctx context.Context, categoryDir string, args ...string) Result {
	scripts := sr.List(categoryDir)
	if len(scripts) == 0 {
		slog.Debug("no scripts to run", "category", categoryDir)
		return NewSuccessResult()
	}

	for _, script := range scripts {
		slog.Debug("running script", "path", script.Path, "root", script.Root.String())
		if res := sr.Run(ctx, script, args...); !res.ExitCode.IsSuccess() {
			return res
		}
	}
	return NewSuccessResult()
}

// Run executes a single script with the runner's streams.
func (sr *ScriptRunner) Run(ctx context.Context, script overlay.Script, args ...string) Result {
	return sr.exec(ctx, script, sr.Stdout, args...)
}

// Capture executes a single script with stdout captured and returned.
// Stderr still goes to the runner's stderr stream.
func (sr *ScriptRunner) Capture(ctx context.Context, script overlay.Script, args ...string) (string, Result) {
	var out bytes.Buffer
	res := sr.exec(ctx, script, &out, args...)
	return out.String(), res
}

// exec spawns the script as an isolated child process that inherits the
// current environment unless the runner overrides it.
func (sr *ScriptRunner) exec(ctx context.Context, script overlay.Script, stdout io.Writer, args ...string) Result {
	cmd := exec.CommandContext(ctx, script.Path, args...)
	cmd.Env = sr.Env
	if cmd.Env == nil {
		cmd.Env = os.Environ()
	}
	cmd.Stdout = stdout
	cmd.Stderr = sr.Stderr
	cmd.Stdin = sr.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := ExitCode(exitErr.ExitCode())
			return NewErrorResult(code, &ScriptError{Path: script.Path, Code: code})
		}
		return NewErrorResult(1, fmt.Errorf("failed to execute %s: %w", script.Path, err))
	}
	return NewSuccessResult()
}
