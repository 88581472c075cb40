// SPDX-License-Identifier: MPL-2.0

package fingerprint

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestFileStableForUntouchedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	first, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	second, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if Changed(first, second) {
		t.Errorf("fingerprints differ for untouched file: %q vs %q", first, second)
	}
}

func TestFileIgnoresTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	before, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}

	// Touching mtime must not change the fingerprint.
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	after, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if Changed(before, after) {
		t.Errorf("fingerprint changed after mtime-only touch: %q vs %q", before, after)
	}
}

func TestFileDetectsContentChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("before"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	before, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("after!"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	after, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}

	if !Changed(before, after) {
		t.Error("fingerprint did not change after content rewrite")
	}
}

func TestFileDetectsPermissionChange(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}

	path := filepath.Join(t.TempDir(), "a.sh")
	if err := os.WriteFile(path, []byte("echo hi"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	before, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}

	if err := os.Chmod(path, 0o755); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	after, err := File(path)
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}

	if !Changed(before, after) {
		t.Error("fingerprint did not change after chmod")
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File(filepath.Join(t.TempDir(), "ghost")); err == nil {
		t.Error("File() succeeded for a missing file")
	}
}
