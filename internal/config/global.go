// SPDX-License-Identifier: MPL-2.0

package config

// configFilePathOverride allows the CLI --config flag and tests to force
// a specific config file.
var configFilePathOverride string

// SetConfigFilePathOverride forces loading from a specific config file.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configFilePathOverride = ""
}
