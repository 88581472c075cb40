// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts <category> [args...]",
	Short: "Run every script in a category directory",
	Long: `Builds the effective script set for the category across all overlay
roots (local wins on name collisions), then runs each script in basename
order, stopping at the first failure. A category that exists nowhere is a
no-op success.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		app.Runner.Stdout = cmd.OutOrStdout()
		app.Runner.Stderr = cmd.ErrOrStderr()

		res := app.Runner.RunAll(cmd.Context(), args[0], args[1:]...)
		return exitFromResult(cmd, res)
	},
}
