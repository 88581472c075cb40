// SPDX-License-Identifier: MPL-2.0

// Package fingerprint digests a file's content and metadata so mutating
// tool wrappers can tell whether a tool actually changed the file.
// Timestamps are deliberately excluded: they are unreliable across
// filesystems and clock skew, and a formatter that rewrites identical
// bytes should not count as a change.
package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// File computes the fingerprint of the file at path: the sha256 of its
// content plus permission bits, owner:group and size, concatenated into
// one comparable string. Two fingerprints are equal iff the observable
// file state (minus timestamps) is equal.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("fingerprint %s: %w", path, err)
	}
	uid, gid := ownership(info)

	return fmt.Sprintf("%x:%04o:%d:%d:%d",
		h.Sum(nil), info.Mode().Perm(), uid, gid, size), nil
}

// Changed reports whether two fingerprints differ.
func Changed(before, after string) bool {
	return before != after
}
