// SPDX-License-Identifier: MPL-2.0

package helper

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"tidyhook/internal/overlay"
	"tidyhook/internal/runner"
)

// CommonDir is the shared-command subdirectory consulted when a category
// has no type-specific entry for a command.
const CommonDir = "_common"

type (
	// Command is one named tool invocation. The availability probe is a
	// capability query that must not mutate anything; Run is the acting
	// invocation against a file.
	Command interface {
		// Name returns the configured command name.
		Name() string
		// IsAvailable reports whether the command can run. Probe failures
		// are indistinguishable from absence.
		IsAvailable(ctx context.Context) bool
		// Run invokes the command with its options, the target file and
		// any extra arguments, in that order.
		Run(ctx context.Context, file string, opts, extra []string) runner.Result
	}

	// CommandResolver resolves a command name for a file type to a
	// runnable Command. Production resolution goes through the overlay;
	// tests substitute fakes.
	CommandResolver interface {
		Resolve(typ, name string) (Command, error)
	}

	// overlayCommands resolves commands under category/<type>/<name>,
	// falling back to category/_common/<name>.
	overlayCommands struct {
		roots    *overlay.Roots
		category string
		stdout   io.Writer
		stderr   io.Writer
		extraEnv []string
	}

	// execCommand shells out to a resolved overlay script.
	execCommand struct {
		name     string
		script   overlay.Script
		stdout   io.Writer
		stderr   io.Writer
		extraEnv []string
	}
)

// Resolve implements CommandResolver over the overlay roots.
func (oc *overlayCommands) Resolve(typ, name string) (Command, error) {
	script, err := oc.roots.Resolve(filepath.Join(oc.category, typ, name))
	if errors.Is(err, overlay.ErrNotFound) {
		script, err = oc.roots.Resolve(filepath.Join(oc.category, CommonDir, name))
	}
	if err != nil {
		return nil, err
	}
	return &execCommand{
		name:     name,
		script:   script,
		stdout:   oc.stdout,
		stderr:   oc.stderr,
		extraEnv: oc.extraEnv,
	}, nil
}

// Name returns the configured command name.
func (c *execCommand) Name() string { return c.name }

// IsAvailable probes the command by invoking it with no file argument and
// discarding its output. Any nonzero exit or spawn failure marks the
// command unavailable.
func (c *execCommand) IsAvailable(ctx context.Context) bool {
	cmd := exec.CommandContext(ctx, c.script.Path)
	cmd.Env = c.env()
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

// Run invokes the command against the file.
func (c *execCommand) Run(ctx context.Context, file string, opts, extra []string) runner.Result {
	args := make([]string, 0, len(opts)+1+len(extra))
	args = append(args, opts...)
	args = append(args, file)
	args = append(args, extra...)

	cmd := exec.CommandContext(ctx, c.script.Path, args...)
	cmd.Env = c.env()
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := runner.ExitCode(exitErr.ExitCode())
			return runner.NewErrorResult(code, &runner.ScriptError{Path: c.script.Path, Code: code})
		}
		return runner.NewErrorResult(1, err)
	}
	return runner.NewSuccessResult()
}

func (c *execCommand) env() []string {
	return append(os.Environ(), c.extraEnv...)
}
