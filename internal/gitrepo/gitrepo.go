// SPDX-License-Identifier: MPL-2.0

// Package gitrepo detects whether the current repository is mounted as a
// git submodule of a parent repository. The result is computed once at
// startup and passed down explicitly; nothing in this package memoizes.
package gitrepo

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
)

type (
	// Context describes the repository's submodule situation. The zero
	// value means "not a submodule", which is also what every git failure
	// degrades to; detection is never fatal.
	Context struct {
		// IsSubmodule is true when the repository is registered as a
		// submodule of a parent repository.
		IsSubmodule bool
		// MountPath is the submodule path relative to the parent's
		// top-level directory. Empty unless IsSubmodule.
		MountPath string
		// ParentTopLevel is the parent repository's top-level directory.
		// Empty unless IsSubmodule.
		ParentTopLevel string
	}

	// GitRunner runs a git command in a directory and returns its trimmed
	// stdout. Tests substitute a fake to avoid depending on a real git
	// checkout layout.
	GitRunner interface {
		Output(ctx context.Context, dir string, args ...string) (string, error)
	}

	execGit struct{}
)

// Output runs git with the given arguments, discarding stderr.
func (execGit) Output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

// Detect computes the submodule context for the repository containing dir.
func Detect(ctx context.Context, dir string) Context {
	return DetectWith(ctx, dir, execGit{})
}

// DetectWith is Detect with an explicit git runner.
//
// The algorithm: find this repository's top-level directory, find the
// top-level of the repository containing its parent directory (no parent
// repository means no submodule), then walk the parent's registered
// submodules and match their absolute paths against our top-level. The
// first match wins and yields the mount path.
func DetectWith(ctx context.Context, dir string, git GitRunner) Context {
	top, err := git.Output(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil || top == "" {
		slog.Debug("not inside a git repository", "dir", dir)
		return Context{}
	}

	parentTop, err := git.Output(ctx, filepath.Dir(top), "rev-parse", "--show-toplevel")
	if err != nil || parentTop == "" || samePath(parentTop, top) {
		return Context{}
	}

	listing, err := git.Output(ctx, parentTop,
		"config", "--file", ".gitmodules", "--get-regexp", `submodule\..*\.path`)
	if err != nil {
		return Context{}
	}

	for _, mount := range parseModulePaths(listing) {
		if samePath(filepath.Join(parentTop, mount), top) {
			slog.Debug("repository is a submodule",
				"mount", mount, "parent", parentTop)
			return Context{
				IsSubmodule:    true,
				MountPath:      mount,
				ParentTopLevel: parentTop,
			}
		}
	}
	return Context{}
}

// parseModulePaths extracts mount paths from `git config --get-regexp`
// output, one "submodule.<name>.path <value>" pair per line.
func parseModulePaths(listing string) []string {
	var mounts []string
	for _, line := range strings.Split(listing, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), " ")
		if !found || !strings.HasSuffix(key, ".path") {
			continue
		}
		mounts = append(mounts, value)
	}
	return mounts
}

// samePath compares two paths after cleaning and best-effort symlink
// resolution, so a symlinked checkout still matches its registered mount.
func samePath(a, b string) bool {
	if ra, err := filepath.EvalSymlinks(a); err == nil {
		a = ra
	}
	if rb, err := filepath.EvalSymlinks(b); err == nil {
		b = rb
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
