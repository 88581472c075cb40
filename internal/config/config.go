// SPDX-License-Identifier: MPL-2.0

// Package config loads tidyhook configuration. The file is TOML, searched
// in the local override root, then the main repository root, then the
// working directory itself; TIDYHOOK_* environment variables override file
// values. The chain and options tables are read-only to the engine.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, also the env prefix.
	AppName = "tidyhook"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "tidyhook"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// WorkDir is the directory whose overlay roots are searched for the
	// config file; empty means the process working directory.
	WorkDir string
}

// Load reads configuration according to opts. A missing config file is
// not an error: the defaults apply. A present but invalid file is.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("work_dir", defaults.WorkDir)
	v.SetDefault("temp_dir", defaults.TempDir)
	v.SetDefault("local_dir", defaults.LocalDir)
	v.SetDefault("main_dir", defaults.MainDir)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := opts.ConfigFilePath
	if path == "" {
		path = configFilePathOverride
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %s: %w", path, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		work := opts.WorkDir
		if work == "" {
			work = "."
		}
		v.AddConfigPath(filepath.Join(work, defaults.LocalDir))
		v.AddConfigPath(filepath.Join(work, defaults.MainDir))
		v.AddConfigPath(work)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to load configuration: %w", err)
			}
			// No file anywhere: defaults plus environment.
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DefaultTOML renders the built-in configuration as a TOML document,
// used by `tidyhook config init`.
func DefaultTOML() ([]byte, error) {
	return toml.Marshal(DefaultConfig())
}
