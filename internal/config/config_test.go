// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleConfig = `
verbose = true
temp_dir = "/tmp/tidyhook"

[helpers.LINT.js]
chains = ["jslint jsl", "eslint"]

[helpers.LINT.js.options]
jslint = "--strict --browser"

[helpers.FMT.c]
chains = ["uncrustify"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tidyhook.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadExplicitFile(t *testing.T) {
	cfg, err := Load(LoadOptions{ConfigFilePath: writeConfig(t, sampleConfig)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
	if cfg.TempDir != "/tmp/tidyhook" {
		t.Errorf("TempDir = %q, want /tmp/tidyhook", cfg.TempDir)
	}
	if cfg.LocalDir != ".tidyhook.local" || cfg.MainDir != ".tidyhook" {
		t.Errorf("overlay dir defaults not applied: %q, %q", cfg.LocalDir, cfg.MainDir)
	}

	chains := cfg.Chains("LINT", "js")
	if len(chains) != 2 || chains[0] != "jslint jsl" || chains[1] != "eslint" {
		t.Errorf("Chains(LINT, js) = %v", chains)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want default false")
	}
	if len(cfg.Chains("LINT", "js")) != 0 {
		t.Error("Chains() non-empty for default config")
	}
}

func TestLoadSearchesOverlayRoots(t *testing.T) {
	work := t.TempDir()

	// Same file name in both roots: the local override must win.
	localDir := filepath.Join(work, ".tidyhook.local")
	mainDir := filepath.Join(work, ".tidyhook")
	for dir, body := range map[string]string{
		localDir: "temp_dir = \"/from-local\"\n",
		mainDir:  "temp_dir = \"/from-main\"\n",
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "tidyhook.toml"), []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	cfg, err := Load(LoadOptions{WorkDir: work})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TempDir != "/from-local" {
		t.Errorf("TempDir = %q, want the local override value", cfg.TempDir)
	}
}

func TestLoadOverrideGlobal(t *testing.T) {
	t.Cleanup(Reset)
	SetConfigFilePathOverride(writeConfig(t, "verbose = true\n"))

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true from overridden file")
	}
}

func TestLoadRejectsInvalidChain(t *testing.T) {
	path := writeConfig(t, `
[helpers.LINT.js]
chains = ["js/lint"]
`)
	if _, err := Load(LoadOptions{ConfigFilePath: path}); err == nil {
		t.Error("Load() accepted a command name with a path separator")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := writeConfig(t, "verbose = [not toml")
	if _, err := Load(LoadOptions{ConfigFilePath: path}); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}

func TestChainsAndOptionsCaseInsensitive(t *testing.T) {
	cfg, err := Load(LoadOptions{ConfigFilePath: writeConfig(t, sampleConfig)})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.Chains("lint", "JS"); len(got) != 2 {
		t.Errorf("Chains(lint, JS) = %v, want the LINT.js chains", got)
	}
	if got := cfg.Options("lint", "JS", "JSLINT"); got != "--strict --browser" {
		t.Errorf("Options(lint, JS, JSLINT) = %q", got)
	}
	if got := cfg.Options("lint", "js", "eslint"); got != "" {
		t.Errorf("Options() = %q for a command with no options, want empty", got)
	}
}

func TestDefaultTOMLRoundTrips(t *testing.T) {
	data, err := DefaultTOML()
	if err != nil {
		t.Fatalf("DefaultTOML() error = %v", err)
	}
	for _, key := range []string{"local_dir", "main_dir"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("DefaultTOML() missing %q:\n%s", key, data)
		}
	}

	path := filepath.Join(t.TempDir(), "tidyhook.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(LoadOptions{ConfigFilePath: path}); err != nil {
		t.Errorf("Load() rejected DefaultTOML output: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
		},
		{
			name: "empty chain specifier",
			mutate: func(c *Config) {
				c.Helpers = map[string]map[string]HelperConfig{
					"lint": {"js": {Chains: []string{"  "}}},
				}
			},
			wantErr: true,
		},
		{
			name: "invalid options key",
			mutate: func(c *Config) {
				c.Helpers = map[string]map[string]HelperConfig{
					"lint": {"js": {Chains: []string{"jslint"}, Options: map[string]string{"bad name": "-x"}}},
				}
			},
			wantErr: true,
		},
		{
			name:    "empty overlay dir name",
			mutate:  func(c *Config) { c.MainDir = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
