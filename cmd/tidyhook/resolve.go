// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <relative-path>",
	Short: "Show which overlay root provides an executable",
	Long: `Searches the overlay roots in priority order (local override, main
repository, submodule parent) and prints the first executable match.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}

		script, err := app.Roots.Resolve(args[0])
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Not found: ")+args[0])
			return &ExitError{Code: 1, Err: err}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
			PathStyle.Render(script.Path),
			SubtitleStyle.Render("("+script.Root.String()+")"))
		return nil
	},
}
