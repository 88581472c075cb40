// SPDX-License-Identifier: MPL-2.0

package overlay

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeExec creates an executable file with the given relative path under dir.
func writeExec(t *testing.T, dir, rel string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("executable permission bits are not meaningful on Windows")
	}
}

func TestResolvePriorityOrder(t *testing.T) {
	skipOnWindows(t)

	local := t.TempDir()
	main := t.TempDir()
	sub := t.TempDir()
	roots := &Roots{Local: local, Main: main, Submodule: sub}

	// Same relative path present in every root: local must win.
	writeExec(t, local, "helpers/js/jslint")
	writeExec(t, main, "helpers/js/jslint")
	writeExec(t, sub, "helpers/js/jslint")

	script, err := roots.Resolve("helpers/js/jslint")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if script.Root != RootLocal {
		t.Errorf("Resolve() root = %v, want %v", script.Root, RootLocal)
	}

	// Drop the local copy: main must win next.
	if err := os.Remove(filepath.Join(local, "helpers/js/jslint")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	script, err = roots.Resolve("helpers/js/jslint")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if script.Root != RootMain {
		t.Errorf("Resolve() root = %v, want %v", script.Root, RootMain)
	}

	// Drop main too: submodule is the last resort.
	if err := os.Remove(filepath.Join(main, "helpers/js/jslint")); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	script, err = roots.Resolve("helpers/js/jslint")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if script.Root != RootSubmodule {
		t.Errorf("Resolve() root = %v, want %v", script.Root, RootSubmodule)
	}
}

func TestResolveNotFound(t *testing.T) {
	roots := &Roots{Local: t.TempDir(), Main: t.TempDir()}

	_, err := roots.Resolve("helpers/js/missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestResolveSkipsNonExecutable(t *testing.T) {
	skipOnWindows(t)

	local := t.TempDir()
	main := t.TempDir()
	roots := &Roots{Local: local, Main: main}

	// Present in local but not executable: the executable main copy wins.
	path := filepath.Join(local, "check")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	writeExec(t, main, "check")

	script, err := roots.Resolve("check")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if script.Root != RootMain {
		t.Errorf("Resolve() root = %v, want %v", script.Root, RootMain)
	}
}

func TestResolveIgnoresMissingSubmoduleRoot(t *testing.T) {
	skipOnWindows(t)

	main := t.TempDir()
	writeExec(t, main, "check")

	roots := &Roots{Local: filepath.Join(t.TempDir(), "absent"), Main: main}
	script, err := roots.Resolve("check")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if script.Root != RootMain {
		t.Errorf("Resolve() root = %v, want %v", script.Root, RootMain)
	}
}

func TestListCategoryUnionAndOrder(t *testing.T) {
	skipOnWindows(t)

	local := t.TempDir()
	main := t.TempDir()
	sub := t.TempDir()
	roots := &Roots{Local: local, Main: main, Submodule: sub}

	writeExec(t, local, "detect.d/30-shebang")
	writeExec(t, main, "detect.d/10-extension")
	writeExec(t, main, "detect.d/30-shebang") // shadowed by local
	writeExec(t, sub, "detect.d/20-content")

	// Hidden and non-executable entries never make the set.
	if err := os.WriteFile(filepath.Join(main, "detect.d", ".hidden"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(main, "detect.d", "40-notes"), []byte("readme"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	scripts := roots.ListCategory("detect.d")
	want := []struct {
		name string
		root Root
	}{
		{"10-extension", RootMain},
		{"20-content", RootSubmodule},
		{"30-shebang", RootLocal},
	}
	if len(scripts) != len(want) {
		t.Fatalf("ListCategory() returned %d scripts, want %d", len(scripts), len(want))
	}
	for i, w := range want {
		if got := filepath.Base(scripts[i].Rel); got != w.name {
			t.Errorf("scripts[%d] name = %q, want %q", i, got, w.name)
		}
		if scripts[i].Root != w.root {
			t.Errorf("scripts[%d] root = %v, want %v", i, scripts[i].Root, w.root)
		}
	}
}

func TestListCategoryMissingEverywhere(t *testing.T) {
	roots := &Roots{Local: t.TempDir(), Main: t.TempDir()}
	if scripts := roots.ListCategory("nope.d"); len(scripts) != 0 {
		t.Errorf("ListCategory() = %v, want empty set", scripts)
	}
}

func TestListCategorySymlinkedScript(t *testing.T) {
	skipOnWindows(t)

	local := t.TempDir()
	main := t.TempDir()
	roots := &Roots{Local: local, Main: main}

	target := writeExec(t, main, "real-check")
	if err := os.MkdirAll(filepath.Join(main, "hooks.d"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(main, "hooks.d", "check")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	scripts := roots.ListCategory("hooks.d")
	if len(scripts) != 1 || filepath.Base(scripts[0].Rel) != "check" {
		t.Errorf("ListCategory() = %v, want the symlinked check script", scripts)
	}
}

func TestRootString(t *testing.T) {
	tests := []struct {
		root Root
		want string
	}{
		{RootLocal, "local override"},
		{RootMain, "main repository"},
		{RootSubmodule, "submodule parent"},
		{Root(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.root.String(); got != tt.want {
			t.Errorf("Root(%d).String() = %q, want %q", tt.root, got, tt.want)
		}
	}
}
