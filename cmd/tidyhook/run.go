// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"tidyhook/internal/helper"
	"tidyhook/internal/issue"
	"tidyhook/internal/runner"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <prefix> <category> <file> [extra args...]",
	Short: "Run the configured helper chain for a file",
	Long: `Detects the file's type, selects the first fully-available chain
configured for (prefix, type), and executes it against the file.

Nothing configured, an unrecognized file type and no available chain all
exit 0: absence of tooling is never a failure. A tool failing mid-chain
exits with that tool's code.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		app.Resolver.Stdout = cmd.OutOrStdout()
		app.Resolver.Stderr = cmd.ErrOrStderr()

		res := app.Resolver.RunHelpers(cmd.Context(), args[0], args[1], args[2], args[3:]...)
		return exitFromResult(cmd, res)
	},
}

// exitFromResult reports a failed Result and converts it to an ExitError
// so the exit code survives cobra's RunE plumbing unchanged.
func exitFromResult(cmd *cobra.Command, res runner.Result) error {
	if res.ExitCode.IsSuccess() {
		return nil
	}

	if res.Err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+res.Err.Error())

		var chainErr *helper.ChainError
		var scriptErr *runner.ScriptError
		switch {
		case !verbose:
		case errors.As(res.Err, &chainErr):
			renderIssue(cmd, issue.HelperChainFailedId)
		case errors.As(res.Err, &scriptErr):
			renderIssue(cmd, issue.ScriptExecutionFailedId)
		}
	}
	return &ExitError{Code: res.ExitCode, Err: res.Err}
}
