// SPDX-License-Identifier: MPL-2.0

// Package detect determines a file's type token by running the detection
// scripts found in the detect.d overlay category.
package detect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tidyhook/internal/runner"
)

const (
	// CategoryDir is the overlay category holding detection scripts.
	CategoryDir = "detect.d"

	// TypeUnknown is the terminal token for files no detection script
	// claims. It is a valid value, not an error condition.
	TypeUnknown = "unknown"
)

// ErrUnknownType signals that detection completed but no script claimed
// the file. Callers use it to skip tooling for unrecognized files; it is
// distinguishable from an error that aborted detection.
var ErrUnknownType = errors.New("file type not recognized")

// Detector runs detection scripts against files.
type Detector struct {
	Runner *runner.ScriptRunner
}

// NewDetector creates a Detector over the given script runner.
func NewDetector(sr *runner.ScriptRunner) *Detector {
	return &Detector{Runner: sr}
}

// Detect runs every detection script with the file path as its argument.
// The first script that exits 0 and prints a non-empty token determines
// the type; the token is lowercased and truncated at the first whitespace.
// A nonzero exit means "not my type" and is never surfaced. When no script
// claims the file (or none exist), Detect returns (TypeUnknown,
// ErrUnknownType). Infrastructure failures that abort detection are
// returned as ordinary errors.
func (d *Detector) Detect(ctx context.Context, file string) (string, error) {
	for _, script := range d.Runner.List(CategoryDir) {
		out, res := d.Runner.Capture(ctx, script, file)
		if !res.ExitCode.IsSuccess() {
			var scriptErr *runner.ScriptError
			if errors.As(res.Err, &scriptErr) {
				continue // probe declined the file
			}
			return "", fmt.Errorf("type detection aborted: %w", res.Err)
		}

		token := normalizeToken(out)
		if token == "" {
			continue
		}
		slog.Debug("detected file type", "file", file, "type", token, "script", script.Path)
		return token, nil
	}
	return TypeUnknown, ErrUnknownType
}

// normalizeToken reduces raw detection output to a short lowercase token.
func normalizeToken(out string) string {
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
