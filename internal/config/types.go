// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"regexp"
	"strings"
)

// commandNamePattern validates helper command names before they are used
// as path components under a category directory.
var commandNamePattern = regexp.MustCompile(`^[A-Za-z0-9._+\-]+$`)

type (
	// Config is the root tidyhook configuration.
	Config struct {
		// Verbose enables debug logging.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
		// WorkDir overrides the working-directory root; empty means the
		// process working directory.
		WorkDir string `mapstructure:"work_dir" toml:"work_dir"`
		// TempDir is the preferred location for scratch resources; empty
		// means the system default.
		TempDir string `mapstructure:"temp_dir" toml:"temp_dir"`
		// LocalDir is the name of the local override overlay root,
		// relative to the working directory.
		LocalDir string `mapstructure:"local_dir" toml:"local_dir"`
		// MainDir is the name of the main repository overlay root,
		// relative to the working directory (and, for a submodule, to the
		// parent repository's top level).
		MainDir string `mapstructure:"main_dir" toml:"main_dir"`
		// Helpers maps prefix -> file type -> helper chain configuration.
		// Key matching is case-insensitive.
		Helpers map[string]map[string]HelperConfig `mapstructure:"helpers" toml:"helpers"`
	}

	// HelperConfig configures the tool chains for one (prefix, type) pair.
	HelperConfig struct {
		// Chains is the ordered list of chain alternatives, tried left to
		// right. Each element is a whitespace-separated list of command
		// names that must all be available together.
		Chains []string `mapstructure:"chains" toml:"chains"`
		// Options maps a command name to its options string, word-split
		// POSIX-style before invocation.
		Options map[string]string `mapstructure:"options" toml:"options,omitempty"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		LocalDir: ".tidyhook.local",
		MainDir:  ".tidyhook",
		Helpers:  map[string]map[string]HelperConfig{},
	}
}

// Validate checks the nested helper configuration at load time, so bad
// chain specifiers fail fast instead of surfacing mid-run.
func (c *Config) Validate() error {
	if c.LocalDir == "" || c.MainDir == "" {
		return fmt.Errorf("local_dir and main_dir must not be empty")
	}
	for prefix, types := range c.Helpers {
		for typ, hc := range types {
			for _, chain := range hc.Chains {
				names := strings.Fields(chain)
				if len(names) == 0 {
					return fmt.Errorf("helpers.%s.%s: empty chain specifier", prefix, typ)
				}
				for _, name := range names {
					if !commandNamePattern.MatchString(name) {
						return fmt.Errorf("helpers.%s.%s: invalid command name %q", prefix, typ, name)
					}
				}
			}
			for name := range hc.Options {
				if !commandNamePattern.MatchString(name) {
					return fmt.Errorf("helpers.%s.%s: invalid options key %q", prefix, typ, name)
				}
			}
		}
	}
	return nil
}

// helperConfig finds the HelperConfig for a (prefix, type) pair with
// case-insensitive key matching, which subsumes the historical convention
// of uppercasing lookup keys.
func (c *Config) helperConfig(prefix, typ string) (HelperConfig, bool) {
	for p, types := range c.Helpers {
		if !strings.EqualFold(p, prefix) {
			continue
		}
		for ty, hc := range types {
			if strings.EqualFold(ty, typ) {
				return hc, true
			}
		}
	}
	return HelperConfig{}, false
}

// Chains returns the ordered chain alternatives configured for a
// (prefix, type) pair. An absent pair yields nil: nothing configured is a
// no-op, not a failure.
func (c *Config) Chains(prefix, typ string) []string {
	hc, ok := c.helperConfig(prefix, typ)
	if !ok {
		return nil
	}
	return hc.Chains
}

// Options returns the options string configured for a (prefix, type,
// command) tuple, or "" when none is set. Options apply only when the
// command runs against a file; the availability probe ignores them.
func (c *Config) Options(prefix, typ, command string) string {
	hc, ok := c.helperConfig(prefix, typ)
	if !ok {
		return ""
	}
	for name, opts := range hc.Options {
		if strings.EqualFold(name, command) {
			return opts
		}
	}
	return ""
}
