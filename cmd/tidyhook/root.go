// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"tidyhook/internal/cleanup"
	"tidyhook/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// workDirFlag overrides the working-directory root
	workDirFlag string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "tidyhook",
		Short: "Overlay-based lint/format tool-chain runner",
		Long: TitleStyle.Render("tidyhook") + SubtitleStyle.Render(" - overlay-based lint/format tool-chain runner") + `

tidyhook detects a file's type and runs the first fully-available
configured chain of external lint/format tools against it. Tools are
looked up across three prioritized overlay roots: a local override
directory, the repository's own tidyhook directory, and - when the
repository is mounted as a git submodule - the parent repository's
tidyhook directory.

` + SubtitleStyle.Render("Examples:") + `
  tidyhook run LINT helpers.d src/app.js   Run the LINT chain for a file
  tidyhook detect src/app.js               Print the detected file type
  tidyhook scripts checks.d HEAD           Run every script in checks.d
  tidyhook resolve helpers.d/js/jslint     Show which overlay root wins
  tidyhook config init                     Write a default tidyhook.toml`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searched in the overlay roots)")
	rootCmd.PersistentFlags().StringVar(&workDirFlag, "workdir", "", "working-directory root (default is the current directory)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(scriptsCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(issuesCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). The cleanup registry is
// drained before the process exits, whatever the outcome.
func Execute() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
	cleanup.Drain()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig applies the --config flag and wires slog to the
// terminal logger before any command runs.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}
	initLogging(verbose)
}

// initLogging routes slog through the charm terminal handler.
func initLogging(debug bool) {
	opts := log.Options{ReportTimestamp: false}
	if debug {
		opts.Level = log.DebugLevel
	}
	slog.SetDefault(slog.New(log.NewWithOptions(os.Stderr, opts)))
}
