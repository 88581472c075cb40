// SPDX-License-Identifier: MPL-2.0

// Package overlay resolves executable scripts across the prioritized
// tidyhook directory roots (local override, main repository, submodule
// parent). The priority order is total and the same for every lookup.
package overlay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// RootLocal is the per-checkout override directory (highest priority).
	RootLocal Root = iota
	// RootMain is the repository's own tidyhook directory.
	RootMain
	// RootSubmodule is the parent repository's tidyhook directory, present
	// only when this repository is mounted as a git submodule.
	RootSubmodule
)

// ErrNotFound is returned by Resolve when no overlay root contains an
// executable match for the requested path.
var ErrNotFound = errors.New("not found in any overlay root")

type (
	// Root identifies which overlay root a script was resolved from.
	Root int

	// Script is an executable resolved to exactly one overlay root.
	Script struct {
		// Root is the overlay root the script was found in.
		Root Root
		// Rel is the path relative to the root.
		Rel string
		// Path is the absolute path of the executable.
		Path string
	}

	// Roots holds the overlay base directories in priority order.
	// Submodule is empty when the repository is not mounted as a submodule;
	// an empty root is skipped by every lookup.
	Roots struct {
		Local     string
		Main      string
		Submodule string
	}

	rootDir struct {
		root Root
		dir  string
	}
)

// String returns a human-readable root name.
func (r Root) String() string {
	switch r {
	case RootLocal:
		return "local override"
	case RootMain:
		return "main repository"
	case RootSubmodule:
		return "submodule parent"
	default:
		return "unknown"
	}
}

// ordered returns the candidate base directories in priority order,
// skipping roots that are not configured.
func (r *Roots) ordered() []rootDir {
	dirs := make([]rootDir, 0, 3)
	if r.Local != "" {
		dirs = append(dirs, rootDir{RootLocal, r.Local})
	}
	if r.Main != "" {
		dirs = append(dirs, rootDir{RootMain, r.Main})
	}
	if r.Submodule != "" {
		dirs = append(dirs, rootDir{RootSubmodule, r.Submodule})
	}
	return dirs
}

// Resolve returns the executable at rel from the first overlay root that
// contains one. It has no side effects: for a fixed filesystem state the
// result is stable. ErrNotFound is returned when no root matches.
func (r *Roots) Resolve(rel string) (Script, error) {
	for _, cand := range r.ordered() {
		path := filepath.Join(cand.dir, rel)
		if isExecutable(path) {
			return Script{Root: cand.root, Rel: rel, Path: path}, nil
		}
	}
	return Script{}, fmt.Errorf("%s: %w", rel, ErrNotFound)
}

// ListCategory builds the effective script set for a category directory:
// the union of direct, non-hidden, executable entries across all roots,
// deduplicated by basename (higher-priority root wins) and sorted by
// basename for reproducible ordering. A category that exists in no root
// yields an empty set; absence is not an error.
func (r *Roots) ListCategory(dir string) []Script {
	selected := make(map[string]Script)
	for _, cand := range r.ordered() {
		entries, err := os.ReadDir(filepath.Join(cand.dir, dir))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			if _, taken := selected[name]; taken {
				continue
			}
			path := filepath.Join(cand.dir, dir, name)
			if !isExecutable(path) {
				continue
			}
			selected[name] = Script{
				Root: cand.root,
				Rel:  filepath.Join(dir, name),
				Path: path,
			}
		}
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	scripts := make([]Script, 0, len(selected))
	for _, name := range names {
		scripts = append(scripts, selected[name])
	}
	return scripts
}

// isExecutable reports whether path is a regular file (after following
// symlinks) with at least one execute permission bit set.
func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}
