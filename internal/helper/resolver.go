// SPDX-License-Identifier: MPL-2.0

// Package helper selects and executes configured tool chains against a
// file. Selection is two-phase: a read-only probe confirms every command
// of a candidate chain before the commit phase runs any of them, because
// commit-phase commands mutate the file in place and a half-run chain has
// no rollback.
package helper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"tidyhook/internal/cleanup"
	"tidyhook/internal/config"
	"tidyhook/internal/detect"
	"tidyhook/internal/fingerprint"
	"tidyhook/internal/overlay"
	"tidyhook/internal/runner"
)

// ScratchEnvVar names the environment variable through which commit-phase
// commands receive the shared scratch directory.
const ScratchEnvVar = "TIDYHOOK_SCRATCH"

type (
	// TypeDetector yields a file's type token. Satisfied by
	// *detect.Detector; tests substitute fakes.
	TypeDetector interface {
		Detect(ctx context.Context, file string) (string, error)
	}

	// Resolver runs configured helper chains. Execution is strictly
	// sequential at every level; callers must not run two resolvers over
	// the same file concurrently.
	Resolver struct {
		Config   *config.Config
		Roots    *overlay.Roots
		Detector TypeDetector
		Stdout   io.Writer
		Stderr   io.Writer
		// TempDir is the preferred parent for the scratch directory;
		// empty means the system default.
		TempDir string

		// NewCommands overrides command resolution for a category.
		// Nil means overlay resolution; tests inject fakes here.
		NewCommands func(category string) CommandResolver

		scratchOnce sync.Once
		scratchDir  string
	}

	// ChainError identifies the command that failed during the commit
	// phase. The exit code propagates unchanged to the caller.
	ChainError struct {
		Command string
		File    string
		Code    runner.ExitCode
		Err     error
	}
)

// Error implements the error interface.
func (e *ChainError) Error() string {
	return fmt.Sprintf("helper '%s' failed on %s with exit code %s", e.Command, e.File, e.Code)
}

// Unwrap returns the underlying execution error.
func (e *ChainError) Unwrap() error { return e.Err }

// NewResolver creates a Resolver wired to the process standard streams.
func NewResolver(cfg *config.Config, roots *overlay.Roots, det TypeDetector) *Resolver {
	return &Resolver{
		Config:   cfg,
		Roots:    roots,
		Detector: det,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		TempDir:  cfg.TempDir,
	}
}

// RunHelpers detects the file's type, selects the first fully-available
// configured chain for (prefix, type) under the category directory, and
// executes it against the file. Nothing configured, an unrecognized file
// and no available chain are all no-op successes; only a command failing
// during the commit phase is a failure, and its exit code propagates
// unchanged.
func (r *Resolver) RunHelpers(ctx context.Context, prefix, category, file string, extra ...string) runner.Result {
	typ, err := r.Detector.Detect(ctx, file)
	if err != nil {
		if errors.Is(err, detect.ErrUnknownType) {
			slog.Debug("skipping helpers for unrecognized file", "file", file)
			return runner.NewSuccessResult()
		}
		return runner.NewErrorResult(1, err)
	}

	chains := ParseChains(r.Config.Chains(prefix, typ))
	if len(chains) == 0 {
		slog.Debug("no helper chains configured", "prefix", prefix, "type", typ)
		return runner.NewSuccessResult()
	}

	commands := r.commands(category)

	selected, ok := r.selectChain(ctx, commands, typ, chains)
	if !ok {
		slog.Debug("no fully available helper chain",
			"prefix", prefix, "type", typ, "candidates", len(chains))
		return runner.NewSuccessResult()
	}
	slog.Debug("selected helper chain", "prefix", prefix, "type", typ, "chain", selected.String())

	return r.commit(ctx, commands, prefix, typ, selected, file, extra)
}

// selectChain is the probe phase. It scans candidate chains in configured
// order and returns the first whose commands all resolve and probe
// available; a chain with any missing command is skipped whole, so no
// chain is ever partially executed.
func (r *Resolver) selectChain(ctx context.Context, commands CommandResolver, typ string, chains []Chain) (Chain, bool) {
	for _, chain := range chains {
		if r.chainAvailable(ctx, commands, typ, chain) {
			return chain, true
		}
	}
	return Chain{}, false
}

// chainAvailable probes every command of the chain. Resolution failure
// and probe failure both mark a command missing; neither is surfaced.
func (r *Resolver) chainAvailable(ctx context.Context, commands CommandResolver, typ string, chain Chain) bool {
	for _, name := range chain.Commands {
		cmd, err := commands.Resolve(typ, name)
		if err != nil {
			slog.Debug("helper command not resolvable", "command", name, "type", typ)
			return false
		}
		if !cmd.IsAvailable(ctx) {
			slog.Debug("helper command failed availability probe", "command", name, "type", typ)
			return false
		}
	}
	return true
}

// commit re-resolves each command of the selected chain exactly as the
// probe phase did, attaches its configured options, and runs it against
// the file, aborting on the first nonzero exit.
func (r *Resolver) commit(ctx context.Context, commands CommandResolver, prefix, typ string, chain Chain, file string, extra []string) runner.Result {
	before, fpErr := fingerprint.File(file)
	if fpErr != nil {
		slog.Debug("pre-run fingerprint unavailable", "file", file, "error", fpErr)
	}

	for _, name := range chain.Commands {
		cmd, err := commands.Resolve(typ, name)
		if err != nil {
			// The probe saw this command; the filesystem changed under us.
			return runner.NewErrorResult(1,
				fmt.Errorf("helper '%s' disappeared between probe and commit: %w", name, err))
		}

		opts, err := SplitOptions(r.Config.Options(prefix, typ, name))
		if err != nil {
			return runner.NewErrorResult(1, err)
		}

		if res := cmd.Run(ctx, file, opts, extra); !res.ExitCode.IsSuccess() {
			return runner.NewErrorResult(res.ExitCode, &ChainError{
				Command: name,
				File:    file,
				Code:    res.ExitCode,
				Err:     res.Err,
			})
		}
	}

	if fpErr == nil {
		if after, err := fingerprint.File(file); err == nil && fingerprint.Changed(before, after) {
			slog.Info("file rewritten by helper chain", "file", file, "chain", chain.String())
		}
	}
	return runner.NewSuccessResult()
}

// commands builds the command resolver for a category, honoring the test
// seam. Overlay-backed commands share the resolver's streams and receive
// the scratch directory in their environment.
func (r *Resolver) commands(category string) CommandResolver {
	if r.NewCommands != nil {
		return r.NewCommands(category)
	}
	oc := &overlayCommands{
		roots:    r.Roots,
		category: category,
		stdout:   r.Stdout,
		stderr:   r.Stderr,
	}
	if dir := r.scratch(); dir != "" {
		oc.extraEnv = []string{ScratchEnvVar + "=" + dir}
	}
	return oc
}

// scratch lazily creates the shared scratch directory and registers its
// teardown with the cleanup registry, so abnormal termination mid-chain
// never leaks it. Creation failure degrades to "no scratch dir".
func (r *Resolver) scratch() string {
	r.scratchOnce.Do(func() {
		dir, err := os.MkdirTemp(r.TempDir, "tidyhook-scratch-*")
		if err != nil {
			slog.Warn("scratch directory unavailable", "error", err)
			return
		}
		r.scratchDir = dir
		cleanup.Register(func() {
			if err := os.RemoveAll(dir); err != nil {
				slog.Debug("scratch directory teardown failed", "dir", dir, "error", err)
			}
		})
	})
	return r.scratchDir
}
