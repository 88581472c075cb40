// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"tidyhook/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or initialize tidyhook configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}

		data, err := toml.Marshal(app.Config)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		cmd.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default tidyhook.toml into the main overlay root",
	RunE: func(cmd *cobra.Command, _ []string) error {
		work := workDirFlag
		if work == "" {
			var err error
			if work, err = os.Getwd(); err != nil {
				return err
			}
		}

		dir := filepath.Join(work, config.DefaultConfig().MainDir)
		path := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("refusing to overwrite existing %s", path)
		}

		data, err := config.DefaultTOML()
		if err != nil {
			return fmt.Errorf("failed to render default configuration: %w", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Created ")+PathStyle.Render(path))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
