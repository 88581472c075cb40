// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"tidyhook/internal/detect"
	"tidyhook/internal/issue"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Print the detected file type",
	Long: `Runs every detect.d script against the file and prints the first
type token claimed. Unrecognized files print "unknown" and still exit 0;
only a detection script that cannot be run at all is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}

		typ, err := app.Detector.Detect(cmd.Context(), args[0])
		if err != nil && !errors.Is(err, detect.ErrUnknownType) {
			fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("Error: ")+err.Error())
			if verbose {
				renderIssue(cmd, issue.DetectionAbortedId)
			}
			return &ExitError{Code: 1, Err: err}
		}

		fmt.Fprintln(cmd.OutOrStdout(), typ)
		return nil
	},
}
