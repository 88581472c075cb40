// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"tidyhook/internal/issue"

	"github.com/spf13/cobra"
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Explain the known failure classes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, id := range issue.AllIds() {
			renderIssueTo(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

// renderIssue prints guidance for a failure class on stderr, next to the
// error it accompanies.
func renderIssue(cmd *cobra.Command, id issue.Id) {
	renderIssueTo(cmd.ErrOrStderr(), id)
}

// renderIssueTo writes the rendered guidance, falling back to the raw
// markdown when terminal rendering fails.
func renderIssueTo(w io.Writer, id issue.Id) {
	found, err := issue.Lookup(id)
	if err != nil {
		return
	}
	out, err := found.Render()
	if err != nil {
		out = string(found.MarkdownMsg()) + "\n"
	}
	fmt.Fprint(w, out)
}
