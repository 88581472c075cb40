// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared helpers for tests that build overlay
// directory fixtures with executable shell scripts.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// RequireUnixScripts skips tests that execute #!/bin/sh fixtures on
// platforms without them.
func RequireUnixScripts(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test fixtures are POSIX shell scripts")
	}
}

// WriteScript creates an executable shell script at dir/rel with the given
// body (the shebang line is added) and returns its absolute path.
func WriteScript(t *testing.T, dir, rel, body string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("WriteScript(%s): %v", path, err)
	}
	return path
}

// WriteFile creates a plain (non-executable) file at dir/rel.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}
