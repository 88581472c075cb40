// SPDX-License-Identifier: MPL-2.0

// Package issue carries user-facing error context and the registry of
// known failure classes with markdown-rendered guidance.
package issue

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Id identifies a known failure class.
	Id int

	// MarkdownMsg is guidance text rendered for the terminal.
	MarkdownMsg string

	// Issue pairs a failure class with its guidance.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

const (
	// ConfigLoadFailedId covers unreadable or invalid tidyhook.toml files.
	ConfigLoadFailedId Id = iota + 1
	// NotARepositoryId covers running outside a git checkout.
	NotARepositoryId
	// DetectionAbortedId covers detection scripts that could not be run at all.
	DetectionAbortedId
	// HelperChainFailedId covers a commit-phase command exiting nonzero.
	HelperChainFailedId
	// ScriptExecutionFailedId covers directory-runner script failures.
	ScriptExecutionFailedId
)

// Id returns the issue's identifier.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the raw guidance markdown.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// Render returns the guidance rendered for the terminal.
func (i *Issue) Render() (string, error) {
	return render(string(i.mdMsg))
}

// render is swapped in tests to avoid terminal detection.
var render = func(md string) (string, error) {
	return glamour.Render(md, "auto")
}

var registry = map[Id]*Issue{
	ConfigLoadFailedId: {
		id: ConfigLoadFailedId,
		mdMsg: "## Configuration could not be loaded\n\n" +
			"Check that `tidyhook.toml` is valid TOML and that every chain\n" +
			"specifier lists plain command names. Run `tidyhook config init`\n" +
			"to write a fresh default file.",
	},
	NotARepositoryId: {
		id: NotARepositoryId,
		mdMsg: "## Not inside a git repository\n\n" +
			"Submodule detection needs a git checkout. Plain directories still\n" +
			"work, but only the local and main overlay roots are searched.",
	},
	DetectionAbortedId: {
		id: DetectionAbortedId,
		mdMsg: "## Type detection aborted\n\n" +
			"A `detect.d` script could not be started. Check execute\n" +
			"permissions and shebang lines under your overlay roots.",
	},
	HelperChainFailedId: {
		id: HelperChainFailedId,
		mdMsg: "## Helper chain failed\n\n" +
			"A committed tool exited nonzero. The file may be partially\n" +
			"transformed: review it before retrying. The failing command and\n" +
			"its exit code are printed above.",
	},
	ScriptExecutionFailedId: {
		id: ScriptExecutionFailedId,
		mdMsg: "## Script failed\n\n" +
			"A category script exited nonzero; later scripts were not run.\n" +
			"Re-run with `--verbose` to see the execution order.",
	},
}

// Lookup returns the Issue for an Id.
func Lookup(id Id) (*Issue, error) {
	issue, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown issue id %d", id)
	}
	return issue, nil
}

// AllIds returns every registered issue id in ascending order.
func AllIds() []Id {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	return ids
}
